package calendar

import (
	"context"

	engagementapp "github.com/legallink/backend/internal/application/engagement"
	"github.com/legallink/backend/internal/domain/engagement"
)

var _ engagementapp.CalendarGateway = (*NoopCalendarGateway)(nil)

// NoopCalendarGateway is used when calendar sync is disabled.
// Appointments still work; nothing is pushed to a calendar.
type NoopCalendarGateway struct{}

// NewNoopCalendarGateway creates a new NoopCalendarGateway
func NewNoopCalendarGateway() *NoopCalendarGateway {
	return &NoopCalendarGateway{}
}

// CreateEvent returns an empty event ID
func (g *NoopCalendarGateway) CreateEvent(ctx context.Context, appointment *engagement.Appointment) (string, error) {
	return "", nil
}

// DeleteEvent is a no-op
func (g *NoopCalendarGateway) DeleteEvent(ctx context.Context, eventID string) error {
	return nil
}
