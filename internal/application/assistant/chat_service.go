package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/assistant"
	"github.com/legallink/backend/internal/domain/directory"
	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/infrastructure/telemetry"
)

// DefaultTurnTimeout bounds one pipeline run
const DefaultTurnTimeout = 45 * time.Second

// PipelineResult is what one pipeline run produces
type PipelineResult struct {
	Intent          assistant.Intent
	Reply           string
	Recommendations []directory.Match
}

// Pipeline runs the staged guidance graph for one user message
type Pipeline interface {
	Run(ctx context.Context, session *assistant.ChatSession, message string) (*PipelineResult, error)
}

// ChatService orchestrates guidance chat: session cache, pipeline runs
// and the durable transcript
type ChatService struct {
	sessions    assistant.SessionStore
	messageRepo assistant.MessageRepository
	pipeline    Pipeline
	turnTimeout time.Duration
	logger      *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	sessions assistant.SessionStore,
	messageRepo assistant.MessageRepository,
	pipeline Pipeline,
	turnTimeout time.Duration,
	logger *zap.Logger,
) *ChatService {
	if turnTimeout <= 0 {
		turnTimeout = DefaultTurnTimeout
	}
	return &ChatService{
		sessions:    sessions,
		messageRepo: messageRepo,
		pipeline:    pipeline,
		turnTimeout: turnTimeout,
		logger:      logger,
	}
}

// StartSession opens a fresh session for the user
func (s *ChatService) StartSession(ctx context.Context, userID uuid.UUID) (*SessionResponse, error) {
	session, err := assistant.NewChatSession(userID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Put(ctx, session, assistant.DefaultSessionTTL); err != nil {
		return nil, err
	}

	s.logger.Info("Chat session started",
		zap.String("session_id", session.ID.String()),
		zap.String("user_id", userID.String()))

	response := ToSessionResponse(session)
	return &response, nil
}

// Send runs one assistant turn: classify, retrieve, respond, and
// persist both sides of the exchange. The session TTL is refreshed.
func (s *ChatService) Send(ctx context.Context, userID uuid.UUID, req SendMessageRequest) (*ChatReply, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "assistant", "send")
	defer span.End()

	session, err := s.resolveSession(ctx, userID, req.SessionID)
	if err != nil {
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrSessionID, session.ID.String())

	userMessage, err := assistant.NewChatMessage(session.ID, userID, assistant.RoleUser, req.Content)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, s.turnTimeout)
	defer cancel()

	result, err := s.pipeline.Run(runCtx, session, userMessage.Content)
	if err != nil {
		telemetry.RecordError(span, err)
		// The session stays warm so the user can retry
		s.logger.Error("Pipeline run failed",
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
		if putErr := s.sessions.Put(ctx, session, assistant.DefaultSessionTTL); putErr != nil {
			s.logger.Error("Failed to refresh session", zap.Error(putErr))
		}
		return nil, shared.NewDomainError("ASSISTANT_UNAVAILABLE", "The assistant could not process your message. Please try again")
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrIntent, string(result.Intent))
	if err := userMessage.SetIntent(result.Intent); err != nil {
		s.logger.Warn("Pipeline produced unknown intent",
			zap.String("intent", string(result.Intent)))
	}
	if err := s.messageRepo.Create(ctx, userMessage); err != nil {
		return nil, err
	}

	assistantMessage, err := assistant.NewChatMessage(session.ID, userID, assistant.RoleAssistant, result.Reply)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	session.Append(assistant.RoleUser, userMessage.Content)
	session.Append(assistant.RoleAssistant, result.Reply)
	if err := s.sessions.Put(ctx, session, assistant.DefaultSessionTTL); err != nil {
		s.logger.Error("Failed to refresh session", zap.Error(err))
	}

	return &ChatReply{
		SessionID:       session.ID,
		Intent:          string(result.Intent),
		Reply:           result.Reply,
		Recommendations: toRecommendations(result.Recommendations),
		Disclaimer:      Disclaimer,
	}, nil
}

// History pages through a session transcript, oldest first
func (s *ChatService) History(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID, req HistoryRequest) (*shared.Paginated[MessageResponse], error) {
	if err := s.authorize(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}

	messages, total, err := s.messageRepo.FindBySession(ctx, sessionID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]MessageResponse, len(messages))
	for i, message := range messages {
		items[i] = ToMessageResponse(message)
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListSessions returns the IDs of the user's past sessions
func (s *ChatService) ListSessions(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.messageRepo.FindSessionIDsByUser(ctx, userID)
}

// EndSession drops the cached session. The transcript stays. Ownership
// falls back to the transcript when the cache cannot answer.
func (s *ChatService) EndSession(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) error {
	if err := s.authorize(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, sessionID)
}

// resolveSession loads the warm session, rebuilds a cold one from the
// transcript, or starts a new one when no ID is given
func (s *ChatService) resolveSession(ctx context.Context, userID uuid.UUID, sessionID *uuid.UUID) (*assistant.ChatSession, error) {
	if sessionID == nil {
		return assistant.NewChatSession(userID)
	}

	session, err := s.sessions.Get(ctx, *sessionID)
	if err == nil && session != nil {
		if !session.IsOwnedBy(userID) {
			return nil, shared.ErrForbidden
		}
		return session, nil
	}

	// Cache miss: rebuild the rolling history from the transcript
	recent, err := s.messageRepo.FindRecentBySession(ctx, *sessionID, assistant.MaxHistoryTurns)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return nil, shared.ErrNotFound
	}
	if recent[0].UserID != userID {
		return nil, shared.ErrForbidden
	}

	session, err = assistant.NewChatSession(userID)
	if err != nil {
		return nil, err
	}
	session.ID = *sessionID
	for _, message := range recent {
		session.Append(message.Role, message.Content)
	}

	s.logger.Debug("Rebuilt cold session",
		zap.String("session_id", sessionID.String()),
		zap.Int("turns", len(recent)))

	return session, nil
}

func (s *ChatService) authorize(ctx context.Context, userID uuid.UUID, sessionID uuid.UUID) error {
	session, err := s.sessions.Get(ctx, sessionID)
	if err == nil && session != nil {
		if !session.IsOwnedBy(userID) {
			return shared.ErrForbidden
		}
		return nil
	}

	recent, err := s.messageRepo.FindRecentBySession(ctx, sessionID, 1)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		return shared.ErrNotFound
	}
	if recent[0].UserID != userID {
		return shared.ErrForbidden
	}
	return nil
}
