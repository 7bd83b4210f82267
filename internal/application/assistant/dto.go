package assistant

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/legallink/backend/internal/domain/assistant"
	"github.com/legallink/backend/internal/domain/directory"
)

// Disclaimer accompanies every assistant reply
const Disclaimer = "This is general legal information, not legal advice. Consult a qualified advocate for advice on your specific situation."

// SendMessageRequest runs one assistant turn. A nil SessionID starts a
// new session.
type SendMessageRequest struct {
	SessionID *uuid.UUID `json:"session_id"`
	Content   string     `json:"content" binding:"required,min=1,max=4000"`
}

// HistoryRequest pages through a session transcript
type HistoryRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// SessionResponse represents a chat session in API responses
type SessionResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// AdvocateRecommendation is a matched advocate attached to a reply
type AdvocateRecommendation struct {
	AdvocateID      uuid.UUID       `json:"advocate_id"`
	City            string          `json:"city"`
	State           string          `json:"state"`
	Specializations []string        `json:"specializations"`
	AverageRating   decimal.Decimal `json:"average_rating"`
	Score           decimal.Decimal `json:"score"`
}

// ChatReply is the outcome of one assistant turn
type ChatReply struct {
	SessionID       uuid.UUID                `json:"session_id"`
	Intent          string                   `json:"intent"`
	Reply           string                   `json:"reply"`
	Recommendations []AdvocateRecommendation `json:"recommendations,omitempty"`
	Disclaimer      string                   `json:"disclaimer"`
}

// MessageResponse represents a transcript row in API responses
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Intent    string    `json:"intent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToSessionResponse converts a domain session to a response DTO
func ToSessionResponse(session *assistant.ChatSession) SessionResponse {
	return SessionResponse{
		ID:           session.ID,
		UserID:       session.UserID,
		CreatedAt:    session.CreatedAt,
		LastActiveAt: session.LastActiveAt,
	}
}

// ToMessageResponse converts a domain message to a response DTO
func ToMessageResponse(message *assistant.ChatMessage) MessageResponse {
	return MessageResponse{
		ID:        message.ID,
		SessionID: message.SessionID,
		Role:      string(message.Role),
		Content:   message.Content,
		Intent:    string(message.Intent),
		CreatedAt: message.CreatedAt,
	}
}

func toRecommendations(matches []directory.Match) []AdvocateRecommendation {
	if len(matches) == 0 {
		return nil
	}
	out := make([]AdvocateRecommendation, len(matches))
	for i, match := range matches {
		specializations := make([]string, len(match.Advocate.Specializations))
		for j, s := range match.Advocate.Specializations {
			specializations[j] = string(s)
		}
		out[i] = AdvocateRecommendation{
			AdvocateID:      match.Advocate.ID,
			City:            match.Advocate.City,
			State:           match.Advocate.State,
			Specializations: specializations,
			AverageRating:   match.Advocate.AverageRating,
			Score:           match.Score,
		}
	}
	return out
}
