package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/shared"
)

// SessionStore caches active chat sessions with a TTL. Reads refresh
// the TTL; a miss means the session went cold and history must be
// rebuilt from messages.
type SessionStore interface {
	Get(ctx context.Context, id uuid.UUID) (*ChatSession, error)
	Put(ctx context.Context, session *ChatSession, ttl time.Duration) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageRepository persists the durable chat transcript
type MessageRepository interface {
	Create(ctx context.Context, message *ChatMessage) error
	FindBySession(ctx context.Context, sessionID uuid.UUID, filter shared.Filter) ([]*ChatMessage, int64, error)
	// FindRecentBySession returns the newest messages oldest-first,
	// bounded by limit. Used to rebuild a cold session's history.
	FindRecentBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*ChatMessage, error)
	FindSessionIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Retriever looks up knowledge base passages for a query. Narrow on
// purpose so a vector store can slot in behind it later.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]*KnowledgeEntry, error)
}

// KnowledgeRepository manages knowledge base entries
type KnowledgeRepository interface {
	Create(ctx context.Context, entry *KnowledgeEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*KnowledgeEntry, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*KnowledgeEntry, int64, error)
	Count(ctx context.Context) (int64, error)
}
