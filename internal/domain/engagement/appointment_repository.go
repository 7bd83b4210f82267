package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/shared"
)

// AppointmentRepository defines the persistence operations for
// appointments
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *Appointment) error
	Update(ctx context.Context, appointment *Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	FindAll(ctx context.Context, filter AppointmentFilter) ([]*Appointment, int64, error)
	// FindConfirmedOverlapping returns confirmed appointments for the
	// advocate that intersect [startAt, endAt), excluding excludeID.
	FindConfirmedOverlapping(ctx context.Context, advocateID uuid.UUID, startAt, endAt time.Time, excludeID uuid.UUID) ([]*Appointment, error)
	// FindStartingBetween returns confirmed appointments whose start
	// falls inside the window. The reminder scheduler drives this.
	FindStartingBetween(ctx context.Context, from, to time.Time) ([]*Appointment, error)
	// FindPendingCalendarSync returns confirmed appointments whose
	// calendar push has not succeeded yet.
	FindPendingCalendarSync(ctx context.Context, limit int) ([]*Appointment, error)
	Count(ctx context.Context) (int64, error)
}

// AppointmentFilter narrows appointment listings
type AppointmentFilter struct {
	shared.Filter
	ClientID   *uuid.UUID
	AdvocateID *uuid.UUID
	Status     *AppointmentStatus
	From       *time.Time
	To         *time.Time
	Upcoming   bool
}
