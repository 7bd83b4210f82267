package assistant

import (
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/shared"
)

// DefaultSessionTTL is how long an inactive chat session stays warm in
// the cache before history has to be reloaded from storage
const DefaultSessionTTL = 30 * time.Minute

// MaxHistoryTurns bounds the rolling history carried into each prompt
const MaxHistoryTurns = 20

// ChatSession is a user's conversation with the assistant. The session
// itself is a cache entry; the durable record is its ChatMessage rows.
type ChatSession struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	History      []Turn    `json:"history"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// Turn is one exchange in the rolling history
type Turn struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// NewChatSession starts a session for a user
func NewChatSession(userID uuid.UUID) (*ChatSession, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}

	now := time.Now()
	return &ChatSession{
		ID:           uuid.New(),
		UserID:       userID,
		CreatedAt:    now,
		LastActiveAt: now,
	}, nil
}

// Append records a turn and trims the rolling window
func (s *ChatSession) Append(role MessageRole, content string) {
	s.History = append(s.History, Turn{Role: role, Content: content})
	if len(s.History) > MaxHistoryTurns {
		s.History = s.History[len(s.History)-MaxHistoryTurns:]
	}
	s.LastActiveAt = time.Now()
}

// IsOwnedBy reports whether the session belongs to the user
func (s *ChatSession) IsOwnedBy(userID uuid.UUID) bool {
	return s.UserID == userID
}
