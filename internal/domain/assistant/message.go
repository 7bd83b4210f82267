package assistant

import (
	"strings"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/shared"
)

// MessageRole distinguishes who produced a chat message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Intent is the classified purpose of a user message
type Intent string

const (
	IntentLegalQuery     Intent = "legal_query"
	IntentAdvocateSearch Intent = "advocate_search"
	IntentAppointment    Intent = "appointment"
	IntentEmergency      Intent = "emergency"
	IntentSmalltalk      Intent = "smalltalk"
)

// IsValidIntent reports whether the value is a known intent
func IsValidIntent(i Intent) bool {
	switch i {
	case IntentLegalQuery, IntentAdvocateSearch, IntentAppointment, IntentEmergency, IntentSmalltalk:
		return true
	default:
		return false
	}
}

// MaxMessageLength bounds a single chat message
const MaxMessageLength = 4000

// ChatMessage is the durable record of one message in a session
type ChatMessage struct {
	shared.BaseEntity
	SessionID uuid.UUID
	UserID    uuid.UUID
	Role      MessageRole
	Content   string
	Intent    Intent // Set on user messages after classification
}

// NewChatMessage creates a persistent chat message
func NewChatMessage(sessionID, userID uuid.UUID, role MessageRole, content string) (*ChatMessage, error) {
	if sessionID == uuid.Nil || userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Session and user are required")
	}
	if role != RoleUser && role != RoleAssistant {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be 'user' or 'assistant'")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Content cannot be empty")
	}
	if len(content) > MaxMessageLength {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Content cannot exceed 4000 characters")
	}

	return &ChatMessage{
		BaseEntity: shared.NewBaseEntity(),
		SessionID:  sessionID,
		UserID:     userID,
		Role:       role,
		Content:    content,
	}, nil
}

// SetIntent records the classified intent on a user message
func (m *ChatMessage) SetIntent(intent Intent) error {
	if !IsValidIntent(intent) {
		return shared.NewDomainError("INVALID_INTENT", "Unknown intent: "+string(intent))
	}
	m.Intent = intent
	return nil
}
