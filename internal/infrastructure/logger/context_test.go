package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, recorded := observer.New(zap.DebugLevel)
	return zap.New(core), recorded
}

func TestWithContextRoundTrip(t *testing.T) {
	base, _ := newObservedLogger()

	ctx := WithContext(context.Background(), base)
	assert.Equal(t, base, FromContext(ctx))
}

func TestFromContextFallsBackToNop(t *testing.T) {
	assert.NotPanics(t, func() {
		FromContext(context.Background()).Info("dropped")
	})
}

func TestFromContextWrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
	assert.NotPanics(t, func() {
		FromContext(ctx).Info("dropped")
	})
}

func TestWithSessionID(t *testing.T) {
	base, recorded := newObservedLogger()

	ctx, enriched := WithSessionID(context.Background(), base, "session-456")

	assert.Equal(t, "session-456", GetSessionID(ctx))

	enriched.Info("turn started")
	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "session-456", recorded.All()[0].ContextMap()["session_id"])
}

func TestWithUserID(t *testing.T) {
	base, recorded := newObservedLogger()

	ctx, enriched := WithUserID(context.Background(), base, "user-789")

	assert.Equal(t, "user-789", GetUserID(ctx))

	enriched.Info("authenticated")
	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "user-789", recorded.All()[0].ContextMap()["user_id"])
}

func TestGettersOnEmptyContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetSessionID(ctx))
	assert.Empty(t, GetUserID(ctx))
}

func TestContextKeysAreDistinct(t *testing.T) {
	keys := []contextKey{LoggerKey, RequestIDKey, SessionIDKey, UserIDKey}
	seen := map[contextKey]struct{}{}
	for _, key := range keys {
		_, dup := seen[key]
		assert.False(t, dup, "duplicate context key %q", key)
		seen[key] = struct{}{}
	}
}

func TestContextLoggerCorrelatesFields(t *testing.T) {
	base, recorded := newObservedLogger()

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
	ctx, _ = WithSessionID(ctx, base, "session-456")
	ctx = context.WithValue(ctx, UserIDKey, "user-789")

	L(ctx).Info("assistant turn", zap.String("intent", "advocate_search"))

	require.Equal(t, 1, recorded.Len())
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "session-456", fields["session_id"])
	assert.Equal(t, "user-789", fields["user_id"])
	assert.Equal(t, "advocate_search", fields["intent"])
}

func TestContextLoggerSkipsEmptyFields(t *testing.T) {
	base, recorded := newObservedLogger()
	ctx := WithContext(context.Background(), base)

	L(ctx).Info("bare entry")

	require.Equal(t, 1, recorded.Len())
	fields := recorded.All()[0].ContextMap()
	assert.NotContains(t, fields, "request_id")
	assert.NotContains(t, fields, "session_id")
	assert.NotContains(t, fields, "user_id")
	assert.NotContains(t, fields, "trace_id")
}

func TestContextLoggerAddsTraceIDs(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	base, recorded := newObservedLogger()
	ctx := WithContext(context.Background(), base)
	ctx, span := provider.Tracer("test").Start(ctx, "assistant.turn")
	defer span.End()

	L(ctx).Info("inside span")

	require.Equal(t, 1, recorded.Len())
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
}

func TestContextLoggerWithChaining(t *testing.T) {
	base, recorded := newObservedLogger()
	ctx := WithContext(context.Background(), base)

	L(ctx).
		With(zap.String("component", "pipeline")).
		With(zap.String("stage", "retrieve")).
		Warn("knowledge store slow")

	require.Equal(t, 1, recorded.Len())
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "pipeline", fields["component"])
	assert.Equal(t, "retrieve", fields["stage"])
}

func TestContextLoggerLevels(t *testing.T) {
	base, recorded := newObservedLogger()
	ctx := WithContext(context.Background(), base)

	cl := L(ctx)
	cl.Debug("d")
	cl.Info("i")
	cl.Warn("w")
	cl.Error("e")

	require.Equal(t, 4, recorded.Len())
	entries := recorded.All()
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, zap.InfoLevel, entries[1].Level)
	assert.Equal(t, zap.WarnLevel, entries[2].Level)
	assert.Equal(t, zap.ErrorLevel, entries[3].Level)
}

func TestContextLoggerNilLoggerIsSafe(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}
	assert.NotPanics(t, func() {
		cl.Info("dropped")
	})
}

func TestContextLoggerZap(t *testing.T) {
	base, recorded := newObservedLogger()
	ctx := WithContext(context.Background(), base)
	ctx = context.WithValue(ctx, RequestIDKey, "req-zap")

	L(ctx).Zap().Info("plain zap consumer")

	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "req-zap", recorded.All()[0].ContextMap()["request_id"])
}
