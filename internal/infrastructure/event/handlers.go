package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/engagement"
	"github.com/legallink/backend/internal/domain/shared"
)

// AuditLogHandler records every domain event to the structured log.
// Registered as a wildcard subscriber.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger}
}

// Handle writes one audit line per event
func (h *AuditLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes returns an empty slice so the handler receives all events
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)

// AppointmentNotificationHandler turns appointment lifecycle events
// into participant notifications. Delivery is currently the log; a
// mail or push channel slots in here without touching the publishers.
type AppointmentNotificationHandler struct {
	logger *zap.Logger
}

// NewAppointmentNotificationHandler creates a new notification handler
func NewAppointmentNotificationHandler(logger *zap.Logger) *AppointmentNotificationHandler {
	return &AppointmentNotificationHandler{logger: logger}
}

// EventTypes lists the appointment events that trigger notifications
func (h *AppointmentNotificationHandler) EventTypes() []string {
	return []string{
		engagement.EventTypeAppointmentRequested,
		engagement.EventTypeAppointmentConfirmed,
		engagement.EventTypeAppointmentCancelled,
		engagement.EventTypeAppointmentReminder,
	}
}

// Handle notifies the affected participants
func (h *AppointmentNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *engagement.AppointmentRequestedEvent:
		h.logger.Info("notify advocate: new appointment request",
			zap.String("appointment_id", e.AggregateID().String()),
			zap.String("advocate_id", e.AdvocateID),
			zap.Time("start_at", e.StartAt))
	case *engagement.AppointmentConfirmedEvent:
		h.logger.Info("notify client: appointment confirmed",
			zap.String("appointment_id", e.AggregateID().String()),
			zap.String("client_id", e.ClientID),
			zap.Time("start_at", e.StartAt))
	case *engagement.AppointmentCancelledEvent:
		h.logger.Info("notify participants: appointment cancelled",
			zap.String("appointment_id", e.AggregateID().String()),
			zap.String("reason", e.Reason))
	case *engagement.AppointmentReminderEvent:
		h.logger.Info("notify participants: appointment reminder",
			zap.String("appointment_id", e.AggregateID().String()),
			zap.Time("start_at", e.StartAt))
	}
	return nil
}

var _ shared.EventHandler = (*AppointmentNotificationHandler)(nil)
