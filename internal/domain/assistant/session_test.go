package assistant

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatSession(t *testing.T) {
	t.Run("creates session for user", func(t *testing.T) {
		userID := uuid.New()
		session, err := NewChatSession(userID)
		require.NoError(t, err)

		assert.Equal(t, userID, session.UserID)
		assert.NotEqual(t, uuid.Nil, session.ID)
		assert.Empty(t, session.History)
		assert.True(t, session.IsOwnedBy(userID))
		assert.False(t, session.IsOwnedBy(uuid.New()))
	})

	t.Run("requires a user", func(t *testing.T) {
		_, err := NewChatSession(uuid.Nil)
		require.Error(t, err)
	})
}

func TestChatSessionAppend(t *testing.T) {
	session, err := NewChatSession(uuid.New())
	require.NoError(t, err)

	t.Run("appends turns in order", func(t *testing.T) {
		session.Append(RoleUser, "What are my tenant rights?")
		session.Append(RoleAssistant, "Tenant rights depend on your state...")

		require.Len(t, session.History, 2)
		assert.Equal(t, RoleUser, session.History[0].Role)
		assert.Equal(t, RoleAssistant, session.History[1].Role)
	})

	t.Run("history is bounded to the rolling window", func(t *testing.T) {
		for i := 0; i < MaxHistoryTurns+10; i++ {
			session.Append(RoleUser, fmt.Sprintf("message %d", i))
		}
		assert.Len(t, session.History, MaxHistoryTurns)
		assert.Equal(t, fmt.Sprintf("message %d", MaxHistoryTurns+9), session.History[MaxHistoryTurns-1].Content)
	})
}

func TestNewChatMessage(t *testing.T) {
	sessionID := uuid.New()
	userID := uuid.New()

	t.Run("creates user message", func(t *testing.T) {
		message, err := NewChatMessage(sessionID, userID, RoleUser, "  What is anticipatory bail?  ")
		require.NoError(t, err)
		assert.Equal(t, "What is anticipatory bail?", message.Content)
		assert.Empty(t, message.Intent)
	})

	t.Run("records classified intent", func(t *testing.T) {
		message, err := NewChatMessage(sessionID, userID, RoleUser, "find me a lawyer")
		require.NoError(t, err)
		require.NoError(t, message.SetIntent(IntentAdvocateSearch))
		assert.Equal(t, IntentAdvocateSearch, message.Intent)
	})

	t.Run("rejects unknown intent", func(t *testing.T) {
		message, err := NewChatMessage(sessionID, userID, RoleUser, "hello")
		require.NoError(t, err)
		require.Error(t, message.SetIntent("gossip"))
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := NewChatMessage(sessionID, userID, RoleUser, "   ")
		require.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewChatMessage(sessionID, userID, "system", "hi")
		require.Error(t, err)
	})

	t.Run("bounds message length", func(t *testing.T) {
		long := make([]byte, MaxMessageLength+1)
		for i := range long {
			long[i] = 'a'
		}
		_, err := NewChatMessage(sessionID, userID, RoleUser, string(long))
		require.Error(t, err)
	})
}

func TestKnowledgeEntry(t *testing.T) {
	t.Run("creates entry", func(t *testing.T) {
		entry, err := NewKnowledgeEntry("Bail", "IN", "Bail is the conditional release of an accused...", []string{"criminal", "bail"})
		require.NoError(t, err)
		assert.Equal(t, "Bail", entry.Topic)
		assert.Equal(t, "IN", entry.Jurisdiction)
	})

	t.Run("requires topic and body", func(t *testing.T) {
		_, err := NewKnowledgeEntry("", "IN", "body", nil)
		require.Error(t, err)
		_, err = NewKnowledgeEntry("Bail", "IN", "  ", nil)
		require.Error(t, err)
	})
}
