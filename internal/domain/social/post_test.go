package social

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legallink/backend/internal/domain/shared"
)

func TestNewPost(t *testing.T) {
	authorID := uuid.New()

	t.Run("creates public post", func(t *testing.T) {
		post, err := NewPost(authorID, "Know your rights during a police stop.", "", VisibilityPublic)
		require.NoError(t, err)

		assert.Equal(t, authorID, post.AuthorID)
		assert.False(t, post.Deleted)
		assert.Nil(t, post.DeletedAt)
	})

	t.Run("rejects empty body", func(t *testing.T) {
		_, err := NewPost(authorID, "   ", "", VisibilityPublic)
		require.Error(t, err)
	})

	t.Run("rejects invalid visibility", func(t *testing.T) {
		_, err := NewPost(authorID, "body", "", "friends")
		require.Error(t, err)
	})
}

func TestPostEdit(t *testing.T) {
	authorID := uuid.New()
	post, err := NewPost(authorID, "original", "", VisibilityPublic)
	require.NoError(t, err)

	t.Run("author edits the body", func(t *testing.T) {
		require.NoError(t, post.Edit(authorID, "revised"))
		assert.Equal(t, "revised", post.Body)
	})

	t.Run("non-author cannot edit", func(t *testing.T) {
		err := post.Edit(uuid.New(), "hijacked")
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestPostSoftDelete(t *testing.T) {
	authorID := uuid.New()

	t.Run("author deletes own post", func(t *testing.T) {
		post, err := NewPost(authorID, "body", "", VisibilityPublic)
		require.NoError(t, err)

		require.NoError(t, post.SoftDelete(authorID, false))
		assert.True(t, post.Deleted)
		require.NotNil(t, post.DeletedAt)
	})

	t.Run("admin deletes any post", func(t *testing.T) {
		post, err := NewPost(authorID, "body", "", VisibilityPublic)
		require.NoError(t, err)
		require.NoError(t, post.SoftDelete(uuid.New(), true))
	})

	t.Run("others cannot delete", func(t *testing.T) {
		post, err := NewPost(authorID, "body", "", VisibilityPublic)
		require.NoError(t, err)
		assert.ErrorIs(t, post.SoftDelete(uuid.New(), false), shared.ErrForbidden)
	})

	t.Run("double delete is invalid state", func(t *testing.T) {
		post, err := NewPost(authorID, "body", "", VisibilityPublic)
		require.NoError(t, err)
		require.NoError(t, post.SoftDelete(authorID, false))
		require.Error(t, post.SoftDelete(authorID, false))
	})

	t.Run("deleted post cannot be edited", func(t *testing.T) {
		post, err := NewPost(authorID, "body", "", VisibilityPublic)
		require.NoError(t, err)
		require.NoError(t, post.SoftDelete(authorID, false))
		require.Error(t, post.Edit(authorID, "too late"))
	})
}

func TestComment(t *testing.T) {
	postID := uuid.New()
	authorID := uuid.New()

	t.Run("creates comment", func(t *testing.T) {
		comment, err := NewComment(postID, authorID, "Very helpful, thanks.")
		require.NoError(t, err)
		assert.Equal(t, postID, comment.PostID)
	})

	t.Run("rejects empty body", func(t *testing.T) {
		_, err := NewComment(postID, authorID, "")
		require.Error(t, err)
	})

	t.Run("author edits and deletes", func(t *testing.T) {
		comment, err := NewComment(postID, authorID, "first")
		require.NoError(t, err)

		require.NoError(t, comment.Edit(authorID, "second"))
		assert.Equal(t, "second", comment.Body)

		require.NoError(t, comment.SoftDelete(authorID, false))
		assert.True(t, comment.Deleted)
		require.Error(t, comment.Edit(authorID, "third"))
	})

	t.Run("non-author edit is forbidden", func(t *testing.T) {
		comment, err := NewComment(postID, authorID, "body")
		require.NoError(t, err)
		assert.ErrorIs(t, comment.Edit(uuid.New(), "nope"), shared.ErrForbidden)
	})
}

func TestReaction(t *testing.T) {
	postID := uuid.New()
	userID := uuid.New()

	t.Run("creates reaction", func(t *testing.T) {
		reaction, err := NewReaction(postID, userID, ReactionLike)
		require.NoError(t, err)
		assert.Equal(t, ReactionLike, reaction.Kind)
	})

	t.Run("switch replaces the kind", func(t *testing.T) {
		reaction, err := NewReaction(postID, userID, ReactionLike)
		require.NoError(t, err)

		require.NoError(t, reaction.Switch(ReactionInsightful))
		assert.Equal(t, ReactionInsightful, reaction.Kind)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewReaction(postID, userID, "angry")
		require.Error(t, err)

		reaction, err := NewReaction(postID, userID, ReactionSupport)
		require.NoError(t, err)
		require.Error(t, reaction.Switch("angry"))
	})
}
