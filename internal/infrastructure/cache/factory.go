package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/assistant"
	"github.com/legallink/backend/internal/infrastructure/config"
)

// SessionStoreFactory creates session stores based on configuration
type SessionStoreFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SessionStoreFactoryOption is a functional option for configuring the factory
type SessionStoreFactoryOption func(*SessionStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SessionStoreFactoryOption {
	return func(f *SessionStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory
// store when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) SessionStoreFactoryOption {
	return func(f *SessionStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSessionStoreFactory creates a new factory
func NewSessionStoreFactory(cfg config.RedisConfig, ttl time.Duration, opts ...SessionStoreFactoryOption) *SessionStoreFactory {
	if ttl <= 0 {
		ttl = assistant.DefaultSessionTTL
	}
	f := &SessionStoreFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-backed session store
func (f *SessionStoreFactory) CreateRedisStore() (assistant.SessionStore, error) {
	store, err := NewRedisSessionStore(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis session store: %w", err)
	}

	return store, nil
}

// CreateInMemoryStore creates a process-local session store.
// WARNING: sessions will not survive restarts and are invisible to
// other instances.
func (f *SessionStoreFactory) CreateInMemoryStore() assistant.SessionStore {
	return NewInMemorySessionStore(f.ttl)
}

// CreateStore tries Redis first and falls back to in-memory when Redis
// is unavailable and fallback is allowed
func (f *SessionStoreFactory) CreateStore() (assistant.SessionStore, error) {
	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("using Redis session store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for chat sessions but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory session store. "+
		"Sessions will not be shared across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}
