package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/engagement"
	"github.com/legallink/backend/internal/domain/shared"
)

// recordingHandler captures events for assertions
type recordingHandler struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	err    error
	panics bool
}

func (h *recordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) seen() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.events...)
}

func newConfirmedEvent(t *testing.T) *engagement.AppointmentConfirmedEvent {
	t.Helper()
	start := time.Now().Add(24 * time.Hour)
	appointment, err := engagement.NewAppointment(
		uuid.New(), uuid.New(), start, start.Add(time.Hour),
		engagement.ModeVideo, "Consultation",
	)
	require.NoError(t, err)
	return engagement.NewAppointmentConfirmedEvent(appointment)
}

func startedBus(t *testing.T) (*InMemoryEventBus, context.Context) {
	t.Helper()
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()
	require.NoError(t, bus.Start(ctx))
	t.Cleanup(func() {
		_ = bus.Stop(context.Background())
	})
	return bus, ctx
}

func TestInMemoryEventBus_PublishToSubscriber(t *testing.T) {
	bus, ctx := startedBus(t)

	handler := &recordingHandler{types: []string{engagement.EventTypeAppointmentConfirmed}}
	bus.Subscribe(handler)

	event := newConfirmedEvent(t)
	require.NoError(t, bus.Publish(ctx, event))

	seen := handler.seen()
	require.Len(t, seen, 1)
	assert.Equal(t, event.EventID(), seen[0].EventID())
}

func TestInMemoryEventBus_TypeFiltering(t *testing.T) {
	bus, ctx := startedBus(t)

	confirmed := &recordingHandler{types: []string{engagement.EventTypeAppointmentConfirmed}}
	cancelled := &recordingHandler{types: []string{engagement.EventTypeAppointmentCancelled}}
	bus.Subscribe(confirmed)
	bus.Subscribe(cancelled)

	require.NoError(t, bus.Publish(ctx, newConfirmedEvent(t)))

	assert.Len(t, confirmed.seen(), 1)
	assert.Empty(t, cancelled.seen())
}

func TestInMemoryEventBus_WildcardHandler(t *testing.T) {
	bus, ctx := startedBus(t)

	wildcard := &recordingHandler{}
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(ctx, newConfirmedEvent(t), newConfirmedEvent(t)))
	assert.Len(t, wildcard.seen(), 2)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus, ctx := startedBus(t)

	failing := &recordingHandler{
		types: []string{engagement.EventTypeAppointmentConfirmed},
		err:   errors.New("downstream unavailable"),
	}
	healthy := &recordingHandler{types: []string{engagement.EventTypeAppointmentConfirmed}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(ctx, newConfirmedEvent(t)))
	assert.Len(t, healthy.seen(), 1)
}

func TestInMemoryEventBus_HandlerPanicIsContained(t *testing.T) {
	bus, ctx := startedBus(t)

	panicking := &recordingHandler{
		types:  []string{engagement.EventTypeAppointmentConfirmed},
		panics: true,
	}
	healthy := &recordingHandler{types: []string{engagement.EventTypeAppointmentConfirmed}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	assert.NotPanics(t, func() {
		_ = bus.Publish(ctx, newConfirmedEvent(t))
	})
	assert.Len(t, healthy.seen(), 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus, ctx := startedBus(t)

	handler := &recordingHandler{types: []string{engagement.EventTypeAppointmentConfirmed}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(ctx, newConfirmedEvent(t)))
	assert.Empty(t, handler.seen())
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Stop(ctx))
}

func TestInMemoryEventBus_DropsEventsWhenStopped(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	handler := &recordingHandler{types: []string{engagement.EventTypeAppointmentConfirmed}}
	bus.Subscribe(handler)

	// Never started: publishes are dropped, not delivered.
	require.NoError(t, bus.Publish(ctx, newConfirmedEvent(t)))
	assert.Empty(t, handler.seen())

	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Stop(ctx))

	require.NoError(t, bus.Publish(ctx, newConfirmedEvent(t)))
	assert.Empty(t, handler.seen())
}

func TestHandlerRegistry_GetHandlersCombinesWildcard(t *testing.T) {
	registry := NewHandlerRegistry()

	typed := &recordingHandler{types: []string{"A"}}
	wildcard := &recordingHandler{}
	registry.Register(typed, "A")
	registry.Register(wildcard)

	assert.Len(t, registry.GetHandlers("A"), 2)
	assert.Len(t, registry.GetHandlers("B"), 1)
}

func TestAppointmentNotificationHandler(t *testing.T) {
	handler := NewAppointmentNotificationHandler(zap.NewNop())

	assert.Contains(t, handler.EventTypes(), engagement.EventTypeAppointmentConfirmed)
	assert.Contains(t, handler.EventTypes(), engagement.EventTypeAppointmentReminder)

	assert.NoError(t, handler.Handle(context.Background(), newConfirmedEvent(t)))
}

func TestAuditLogHandler(t *testing.T) {
	handler := NewAuditLogHandler(zap.NewNop())

	assert.Empty(t, handler.EventTypes())
	assert.NoError(t, handler.Handle(context.Background(), newConfirmedEvent(t)))
}
