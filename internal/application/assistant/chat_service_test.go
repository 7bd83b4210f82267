package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/assistant"
	"github.com/legallink/backend/internal/domain/shared"
)

// =============================================================================
// Mocks
// =============================================================================

// MockSessionStore is a mock implementation of assistant.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Get(ctx context.Context, id uuid.UUID) (*assistant.ChatSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assistant.ChatSession), args.Error(1)
}

func (m *MockSessionStore) Put(ctx context.Context, session *assistant.ChatSession, ttl time.Duration) error {
	args := m.Called(ctx, session, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMessageRepository is a mock implementation of assistant.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *assistant.ChatMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) FindBySession(ctx context.Context, sessionID uuid.UUID, filter shared.Filter) ([]*assistant.ChatMessage, int64, error) {
	args := m.Called(ctx, sessionID, filter)
	return args.Get(0).([]*assistant.ChatMessage), args.Get(1).(int64), args.Error(2)
}

func (m *MockMessageRepository) FindRecentBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*assistant.ChatMessage, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assistant.ChatMessage), args.Error(1)
}

func (m *MockMessageRepository) FindSessionIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockPipeline is a mock implementation of Pipeline
type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Run(ctx context.Context, session *assistant.ChatSession, message string) (*PipelineResult, error) {
	args := m.Called(ctx, session, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PipelineResult), args.Error(1)
}

func TestChatServiceSend(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("runs a turn and persists both sides", func(t *testing.T) {
		session, err := assistant.NewChatSession(userID)
		require.NoError(t, err)

		store := new(MockSessionStore)
		store.On("Get", ctx, session.ID).Return(session, nil)
		store.On("Put", ctx, session, assistant.DefaultSessionTTL).Return(nil)

		messageRepo := new(MockMessageRepository)
		messageRepo.On("Create", ctx, mock.AnythingOfType("*assistant.ChatMessage")).Return(nil).Twice()

		pipeline := new(MockPipeline)
		pipeline.On("Run", mock.Anything, session, "What is anticipatory bail?").
			Return(&PipelineResult{Intent: assistant.IntentLegalQuery, Reply: "Anticipatory bail is..."}, nil)

		service := NewChatService(store, messageRepo, pipeline, 0, zap.NewNop())
		reply, err := service.Send(ctx, userID, SendMessageRequest{SessionID: &session.ID, Content: "What is anticipatory bail?"})
		require.NoError(t, err)

		assert.Equal(t, session.ID, reply.SessionID)
		assert.Equal(t, "legal_query", reply.Intent)
		assert.Equal(t, Disclaimer, reply.Disclaimer)
		assert.Len(t, session.History, 2)
		messageRepo.AssertExpectations(t)
	})

	t.Run("pipeline failure keeps the session warm", func(t *testing.T) {
		session, err := assistant.NewChatSession(userID)
		require.NoError(t, err)

		store := new(MockSessionStore)
		store.On("Get", ctx, session.ID).Return(session, nil)
		store.On("Put", ctx, session, assistant.DefaultSessionTTL).Return(nil)

		messageRepo := new(MockMessageRepository)

		pipeline := new(MockPipeline)
		pipeline.On("Run", mock.Anything, session, "hello").Return(nil, errors.New("ollama timeout"))

		service := NewChatService(store, messageRepo, pipeline, 0, zap.NewNop())
		_, err = service.Send(ctx, userID, SendMessageRequest{SessionID: &session.ID, Content: "hello"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not process")
		store.AssertCalled(t, "Put", ctx, session, assistant.DefaultSessionTTL)
		messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("foreign session is forbidden", func(t *testing.T) {
		session, err := assistant.NewChatSession(uuid.New())
		require.NoError(t, err)

		store := new(MockSessionStore)
		store.On("Get", ctx, session.ID).Return(session, nil)

		service := NewChatService(store, new(MockMessageRepository), new(MockPipeline), 0, zap.NewNop())
		_, err = service.Send(ctx, userID, SendMessageRequest{SessionID: &session.ID, Content: "hi"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("cold session rebuilds from the transcript", func(t *testing.T) {
		sessionID := uuid.New()
		earlier, err := assistant.NewChatMessage(sessionID, userID, assistant.RoleUser, "What is a gift deed?")
		require.NoError(t, err)

		store := new(MockSessionStore)
		store.On("Get", ctx, sessionID).Return(nil, shared.ErrNotFound)
		store.On("Put", ctx, mock.AnythingOfType("*assistant.ChatSession"), assistant.DefaultSessionTTL).Return(nil)

		messageRepo := new(MockMessageRepository)
		messageRepo.On("FindRecentBySession", ctx, sessionID, assistant.MaxHistoryTurns).
			Return([]*assistant.ChatMessage{earlier}, nil)
		messageRepo.On("Create", ctx, mock.AnythingOfType("*assistant.ChatMessage")).Return(nil).Twice()

		pipeline := new(MockPipeline)
		pipeline.On("Run", mock.Anything, mock.MatchedBy(func(session *assistant.ChatSession) bool {
			return session.ID == sessionID && len(session.History) == 1
		}), "And stamp duty?").
			Return(&PipelineResult{Intent: assistant.IntentLegalQuery, Reply: "Stamp duty depends on the state..."}, nil)

		service := NewChatService(store, messageRepo, pipeline, 0, zap.NewNop())
		reply, err := service.Send(ctx, userID, SendMessageRequest{SessionID: &sessionID, Content: "And stamp duty?"})
		require.NoError(t, err)
		assert.Equal(t, sessionID, reply.SessionID)
	})

	t.Run("rolling history is capped", func(t *testing.T) {
		session, err := assistant.NewChatSession(userID)
		require.NoError(t, err)
		for i := 0; i < assistant.MaxHistoryTurns; i++ {
			session.Append(assistant.RoleUser, "earlier")
		}

		store := new(MockSessionStore)
		store.On("Get", ctx, session.ID).Return(session, nil)
		store.On("Put", ctx, session, assistant.DefaultSessionTTL).Return(nil)

		messageRepo := new(MockMessageRepository)
		messageRepo.On("Create", ctx, mock.AnythingOfType("*assistant.ChatMessage")).Return(nil).Twice()

		pipeline := new(MockPipeline)
		pipeline.On("Run", mock.Anything, session, "latest").
			Return(&PipelineResult{Intent: assistant.IntentSmalltalk, Reply: "Hello"}, nil)

		service := NewChatService(store, messageRepo, pipeline, 0, zap.NewNop())
		_, err = service.Send(ctx, userID, SendMessageRequest{SessionID: &session.ID, Content: "latest"})
		require.NoError(t, err)
		assert.Len(t, session.History, assistant.MaxHistoryTurns)
	})
}

func TestChatServiceSessions(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("start session caches it", func(t *testing.T) {
		store := new(MockSessionStore)
		store.On("Put", ctx, mock.AnythingOfType("*assistant.ChatSession"), assistant.DefaultSessionTTL).Return(nil)

		service := NewChatService(store, new(MockMessageRepository), new(MockPipeline), 0, zap.NewNop())
		response, err := service.StartSession(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, response.UserID)
		store.AssertExpectations(t)
	})

	t.Run("end session requires ownership when warm", func(t *testing.T) {
		session, err := assistant.NewChatSession(uuid.New())
		require.NoError(t, err)

		store := new(MockSessionStore)
		store.On("Get", ctx, session.ID).Return(session, nil)

		service := NewChatService(store, new(MockMessageRepository), new(MockPipeline), 0, zap.NewNop())
		err = service.EndSession(ctx, userID, session.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("end session checks the transcript when the cache errors", func(t *testing.T) {
		sessionID := uuid.New()
		foreign, err := assistant.NewChatMessage(sessionID, uuid.New(), assistant.RoleUser, "hello")
		require.NoError(t, err)

		store := new(MockSessionStore)
		store.On("Get", ctx, sessionID).Return(nil, errors.New("redis: connection refused"))

		messageRepo := new(MockMessageRepository)
		messageRepo.On("FindRecentBySession", ctx, sessionID, 1).
			Return([]*assistant.ChatMessage{foreign}, nil)

		service := NewChatService(store, messageRepo, new(MockPipeline), 0, zap.NewNop())
		err = service.EndSession(ctx, userID, sessionID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("owner can end a cold session", func(t *testing.T) {
		sessionID := uuid.New()
		own, err := assistant.NewChatMessage(sessionID, userID, assistant.RoleUser, "hello")
		require.NoError(t, err)

		store := new(MockSessionStore)
		store.On("Get", ctx, sessionID).Return(nil, shared.ErrNotFound)
		store.On("Delete", ctx, sessionID).Return(nil)

		messageRepo := new(MockMessageRepository)
		messageRepo.On("FindRecentBySession", ctx, sessionID, 1).
			Return([]*assistant.ChatMessage{own}, nil)

		service := NewChatService(store, messageRepo, new(MockPipeline), 0, zap.NewNop())
		require.NoError(t, service.EndSession(ctx, userID, sessionID))
		store.AssertExpectations(t)
	})
}
