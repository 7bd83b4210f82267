package social

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/domain/social"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockPostRepository is a mock implementation of social.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *social.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, post *social.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*social.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.Post), args.Error(1)
}

func (m *MockPostRepository) Feed(ctx context.Context, filter social.FeedFilter) ([]*social.Post, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*social.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Counters(ctx context.Context, postID uuid.UUID) (social.PostCounters, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(social.PostCounters), args.Error(1)
}

// MockCommentRepository is a mock implementation of social.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *social.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *social.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*social.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByPost(ctx context.Context, postID uuid.UUID, filter shared.Filter) ([]*social.Comment, int64, error) {
	args := m.Called(ctx, postID, filter)
	return args.Get(0).([]*social.Comment), args.Get(1).(int64), args.Error(2)
}

// MockReactionRepository is a mock implementation of social.ReactionRepository
type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) Save(ctx context.Context, reaction *social.Reaction) error {
	args := m.Called(ctx, reaction)
	return args.Error(0)
}

func (m *MockReactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReactionRepository) FindByPostAndUser(ctx context.Context, postID, userID uuid.UUID) (*social.Reaction, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.Reaction), args.Error(1)
}

func (m *MockReactionRepository) CountByPost(ctx context.Context, postID uuid.UUID) (map[social.ReactionKind]int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(map[social.ReactionKind]int64), args.Error(1)
}

func newService(postRepo *MockPostRepository, commentRepo *MockCommentRepository, reactionRepo *MockReactionRepository) *PostService {
	return NewPostService(postRepo, commentRepo, reactionRepo, zap.NewNop())
}

func newPublicPost(t *testing.T, authorID uuid.UUID) *social.Post {
	post, err := social.NewPost(authorID, "Know your tenancy rights before signing", "", social.VisibilityPublic)
	require.NoError(t, err)
	return post
}

func TestPostServiceCreate(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("creates a post", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("Create", ctx, mock.AnythingOfType("*social.Post")).Return(nil)

		service := newService(postRepo, new(MockCommentRepository), new(MockReactionRepository))
		response, err := service.Create(ctx, authorID, CreatePostRequest{Body: "Hello", Visibility: "public"})
		require.NoError(t, err)
		assert.Equal(t, authorID, response.AuthorID)
		assert.Equal(t, "public", response.Visibility)
	})

	t.Run("rejects bad visibility", func(t *testing.T) {
		service := newService(new(MockPostRepository), new(MockCommentRepository), new(MockReactionRepository))
		_, err := service.Create(ctx, authorID, CreatePostRequest{Body: "Hello", Visibility: "secret"})
		require.Error(t, err)
	})
}

func TestPostServiceVisibility(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("deleted posts are not found", func(t *testing.T) {
		post := newPublicPost(t, authorID)
		require.NoError(t, post.SoftDelete(authorID, false))

		postRepo := new(MockPostRepository)
		postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		service := newService(postRepo, new(MockCommentRepository), new(MockReactionRepository))
		_, err := service.GetByID(ctx, uuid.New(), post.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("client-only posts require a signed-in viewer", func(t *testing.T) {
		post, err := social.NewPost(authorID, "Members only", "", social.VisibilityClients)
		require.NoError(t, err)

		postRepo := new(MockPostRepository)
		postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		service := newService(postRepo, new(MockCommentRepository), new(MockReactionRepository))
		_, err = service.GetByID(ctx, uuid.Nil, post.ID)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("anonymous feed is public only", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("Feed", ctx, mock.MatchedBy(func(filter social.FeedFilter) bool {
			return filter.Visibility != nil && *filter.Visibility == social.VisibilityPublic
		})).Return([]*social.Post{}, int64(0), nil)

		service := newService(postRepo, new(MockCommentRepository), new(MockReactionRepository))
		result, err := service.Feed(ctx, uuid.Nil, FeedRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Total)
		postRepo.AssertExpectations(t)
	})
}

func TestPostServiceDelete(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("author deletes own post", func(t *testing.T) {
		post := newPublicPost(t, authorID)
		postRepo := new(MockPostRepository)
		postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		postRepo.On("Update", ctx, post).Return(nil)

		service := newService(postRepo, new(MockCommentRepository), new(MockReactionRepository))
		require.NoError(t, service.Delete(ctx, authorID, false, post.ID))
		assert.True(t, post.Deleted)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		post := newPublicPost(t, authorID)
		postRepo := new(MockPostRepository)
		postRepo.On("FindByID", ctx, post.ID).Return(post, nil)

		service := newService(postRepo, new(MockCommentRepository), new(MockReactionRepository))
		err := service.Delete(ctx, uuid.New(), false, post.ID)
		require.Error(t, err)
	})

	t.Run("admin deletes any post", func(t *testing.T) {
		post := newPublicPost(t, authorID)
		postRepo := new(MockPostRepository)
		postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		postRepo.On("Update", ctx, post).Return(nil)

		service := newService(postRepo, new(MockCommentRepository), new(MockReactionRepository))
		require.NoError(t, service.Delete(ctx, uuid.New(), true, post.ID))
	})
}

func TestPostServiceEditComment(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	newComment := func(t *testing.T) *social.Comment {
		comment, err := social.NewComment(uuid.New(), authorID, "original body")
		require.NoError(t, err)
		return comment
	}

	t.Run("author edits own comment", func(t *testing.T) {
		comment := newComment(t)
		commentRepo := new(MockCommentRepository)
		commentRepo.On("FindByID", ctx, comment.ID).Return(comment, nil)
		commentRepo.On("Update", ctx, comment).Return(nil)

		service := newService(new(MockPostRepository), commentRepo, new(MockReactionRepository))
		result, err := service.EditComment(ctx, authorID, comment.ID, EditCommentRequest{Body: "updated body"})
		require.NoError(t, err)
		assert.Equal(t, "updated body", result.Body)
	})

	t.Run("stranger cannot edit", func(t *testing.T) {
		comment := newComment(t)
		commentRepo := new(MockCommentRepository)
		commentRepo.On("FindByID", ctx, comment.ID).Return(comment, nil)

		service := newService(new(MockPostRepository), commentRepo, new(MockReactionRepository))
		_, err := service.EditComment(ctx, uuid.New(), comment.ID, EditCommentRequest{Body: "updated body"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("missing comment", func(t *testing.T) {
		commentRepo := new(MockCommentRepository)
		id := uuid.New()
		commentRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		service := newService(new(MockPostRepository), commentRepo, new(MockReactionRepository))
		_, err := service.EditComment(ctx, authorID, id, EditCommentRequest{Body: "updated body"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPostServiceReact(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	userID := uuid.New()

	t.Run("first reaction saves", func(t *testing.T) {
		post := newPublicPost(t, authorID)
		postRepo := new(MockPostRepository)
		postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		reactionRepo := new(MockReactionRepository)
		reactionRepo.On("FindByPostAndUser", ctx, post.ID, userID).Return(nil, shared.ErrNotFound)
		reactionRepo.On("Save", ctx, mock.AnythingOfType("*social.Reaction")).Return(nil)

		service := newService(postRepo, new(MockCommentRepository), reactionRepo)
		response, err := service.React(ctx, userID, post.ID, ReactRequest{Kind: "like"})
		require.NoError(t, err)
		assert.Equal(t, "like", response.Kind)
	})

	t.Run("same kind toggles off", func(t *testing.T) {
		post := newPublicPost(t, authorID)
		existing, err := social.NewReaction(post.ID, userID, social.ReactionLike)
		require.NoError(t, err)

		postRepo := new(MockPostRepository)
		postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		reactionRepo := new(MockReactionRepository)
		reactionRepo.On("FindByPostAndUser", ctx, post.ID, userID).Return(existing, nil)
		reactionRepo.On("Delete", ctx, existing.ID).Return(nil)

		service := newService(postRepo, new(MockCommentRepository), reactionRepo)
		response, err := service.React(ctx, userID, post.ID, ReactRequest{Kind: "like"})
		require.NoError(t, err)
		assert.Nil(t, response)
		reactionRepo.AssertExpectations(t)
	})

	t.Run("different kind switches", func(t *testing.T) {
		post := newPublicPost(t, authorID)
		existing, err := social.NewReaction(post.ID, userID, social.ReactionLike)
		require.NoError(t, err)

		postRepo := new(MockPostRepository)
		postRepo.On("FindByID", ctx, post.ID).Return(post, nil)
		reactionRepo := new(MockReactionRepository)
		reactionRepo.On("FindByPostAndUser", ctx, post.ID, userID).Return(existing, nil)
		reactionRepo.On("Save", ctx, existing).Return(nil)

		service := newService(postRepo, new(MockCommentRepository), reactionRepo)
		response, err := service.React(ctx, userID, post.ID, ReactRequest{Kind: "support"})
		require.NoError(t, err)
		assert.Equal(t, "support", response.Kind)
	})
}
