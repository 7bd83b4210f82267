package moderation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRating(t *testing.T) {
	clientID := uuid.New()
	advocateID := uuid.New()

	t.Run("creates rating with valid score", func(t *testing.T) {
		rating, err := NewRating(clientID, advocateID, 4, "Thorough and responsive.")
		require.NoError(t, err)

		assert.Equal(t, 4, rating.Score)
		assert.Equal(t, "Thorough and responsive.", rating.Comment)

		events := rating.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeRatingChanged, events[0].EventType())
	})

	t.Run("rejects score below one", func(t *testing.T) {
		_, err := NewRating(clientID, advocateID, 0, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "between 1 and 5")
	})

	t.Run("rejects score above five", func(t *testing.T) {
		_, err := NewRating(clientID, advocateID, 6, "")
		require.Error(t, err)
	})

	t.Run("comment is optional", func(t *testing.T) {
		rating, err := NewRating(clientID, advocateID, 5, "")
		require.NoError(t, err)
		assert.Empty(t, rating.Comment)
	})

	t.Run("requires both participants", func(t *testing.T) {
		_, err := NewRating(uuid.Nil, advocateID, 4, "")
		require.Error(t, err)
	})
}

func TestRatingRevise(t *testing.T) {
	rating, err := NewRating(uuid.New(), uuid.New(), 3, "okay")
	require.NoError(t, err)
	rating.ClearDomainEvents()

	t.Run("replaces score and comment", func(t *testing.T) {
		require.NoError(t, rating.Revise(5, "much better on the second matter"))
		assert.Equal(t, 5, rating.Score)
		assert.Equal(t, "much better on the second matter", rating.Comment)

		events := rating.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeRatingChanged, events[0].EventType())
	})

	t.Run("rejects invalid score", func(t *testing.T) {
		require.Error(t, rating.Revise(0, ""))
	})

	t.Run("ownership check", func(t *testing.T) {
		assert.True(t, rating.IsOwnedBy(rating.ClientID))
		assert.False(t, rating.IsOwnedBy(uuid.New()))
	})
}
