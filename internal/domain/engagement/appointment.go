package engagement

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/shared"
)

// AppointmentMode is how the consultation takes place
type AppointmentMode string

const (
	ModeInPerson AppointmentMode = "in_person"
	ModeVideo    AppointmentMode = "video"
	ModePhone    AppointmentMode = "phone"
)

// AppointmentStatus tracks the appointment lifecycle
type AppointmentStatus string

const (
	StatusRequested AppointmentStatus = "requested"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusRejected  AppointmentStatus = "rejected"
)

// CalendarSyncState tracks whether the confirmed slot has been pushed to
// the advocate's external calendar
type CalendarSyncState string

const (
	CalendarSyncNone    CalendarSyncState = "none"
	CalendarSyncPending CalendarSyncState = "pending"
	CalendarSyncSynced  CalendarSyncState = "synced"
)

// Appointment is the aggregate root for a consultation between a client
// and an advocate.
type Appointment struct {
	shared.BaseAggregateRoot
	ClientID        uuid.UUID
	AdvocateID      uuid.UUID
	StartAt         time.Time
	EndAt           time.Time
	Mode            AppointmentMode
	Subject         string
	Notes           string
	Status          AppointmentStatus
	CancelReason    string
	CancelledBy     *uuid.UUID
	CalendarEventID string
	CalendarSync    CalendarSyncState
	ConfirmedAt     *time.Time
	CompletedAt     *time.Time
}

// NewAppointment creates an appointment request from a client
func NewAppointment(clientID, advocateID uuid.UUID, startAt, endAt time.Time, mode AppointmentMode, subject string) (*Appointment, error) {
	if clientID == uuid.Nil || advocateID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTICIPANTS", "Client and advocate are required")
	}
	if clientID == advocateID {
		return nil, shared.NewDomainError("INVALID_PARTICIPANTS", "Client and advocate must differ")
	}
	if err := validateSlot(startAt, endAt); err != nil {
		return nil, err
	}
	if err := validateMode(mode); err != nil {
		return nil, err
	}
	if err := validateSubject(subject); err != nil {
		return nil, err
	}

	appointment := &Appointment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		AdvocateID:        advocateID,
		StartAt:           startAt.UTC(),
		EndAt:             endAt.UTC(),
		Mode:              mode,
		Subject:           strings.TrimSpace(subject),
		Status:            StatusRequested,
		CalendarSync:      CalendarSyncNone,
	}

	appointment.AddDomainEvent(NewAppointmentRequestedEvent(appointment))

	return appointment, nil
}

// Confirm moves the appointment to confirmed. Only the advocate confirms;
// slot conflict checks against other confirmed appointments happen in the
// application service before calling this.
func (a *Appointment) Confirm(actorID uuid.UUID) error {
	if actorID != a.AdvocateID {
		return shared.NewDomainError("FORBIDDEN", "Only the advocate can confirm")
	}
	switch a.Status {
	case StatusRequested:
	case StatusConfirmed:
		return shared.NewDomainError("ALREADY_CONFIRMED", "Appointment is already confirmed")
	default:
		return shared.ErrInvalidState
	}

	now := time.Now()
	a.Status = StatusConfirmed
	a.ConfirmedAt = &now
	a.CalendarSync = CalendarSyncPending
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAppointmentConfirmedEvent(a))

	return nil
}

// Reject declines a requested appointment. Only reachable from requested.
func (a *Appointment) Reject(actorID uuid.UUID, reason string) error {
	if actorID != a.AdvocateID {
		return shared.NewDomainError("FORBIDDEN", "Only the advocate can reject")
	}
	if a.Status != StatusRequested {
		return shared.ErrInvalidState
	}

	a.Status = StatusRejected
	a.CancelReason = strings.TrimSpace(reason)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Cancel cancels a requested or confirmed appointment. Either participant
// may cancel, with a reason.
func (a *Appointment) Cancel(actorID uuid.UUID, reason string) error {
	if !a.IsParticipant(actorID) {
		return shared.NewDomainError("FORBIDDEN", "Only participants can cancel")
	}
	if a.Status != StatusRequested && a.Status != StatusConfirmed {
		return shared.ErrInvalidState
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancellation requires a reason")
	}

	hadCalendarEvent := a.CalendarEventID != ""

	a.Status = StatusCancelled
	a.CancelReason = strings.TrimSpace(reason)
	a.CancelledBy = &actorID
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAppointmentCancelledEvent(a, hadCalendarEvent))

	return nil
}

// Complete marks a confirmed appointment as held. Only the advocate, and
// only after the slot has ended.
func (a *Appointment) Complete(actorID uuid.UUID, now time.Time) error {
	if actorID != a.AdvocateID {
		return shared.NewDomainError("FORBIDDEN", "Only the advocate can complete")
	}
	if a.Status != StatusConfirmed {
		return shared.ErrInvalidState
	}
	if now.Before(a.EndAt) {
		return shared.NewDomainError("NOT_ENDED", "Appointment has not ended yet")
	}

	a.Status = StatusCompleted
	a.CompletedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()

	a.AddDomainEvent(NewAppointmentCompletedEvent(a))

	return nil
}

// Reschedule moves a requested or confirmed appointment to a new slot and
// resets it to requested. Any synced calendar event must be removed by
// the caller; the aggregate only clears the reference.
func (a *Appointment) Reschedule(actorID uuid.UUID, startAt, endAt time.Time) error {
	if !a.IsParticipant(actorID) {
		return shared.NewDomainError("FORBIDDEN", "Only participants can reschedule")
	}
	if a.Status != StatusRequested && a.Status != StatusConfirmed {
		return shared.ErrInvalidState
	}
	if err := validateSlot(startAt, endAt); err != nil {
		return err
	}

	hadCalendarEvent := a.CalendarEventID != ""

	a.StartAt = startAt.UTC()
	a.EndAt = endAt.UTC()
	a.Status = StatusRequested
	a.ConfirmedAt = nil
	a.CalendarEventID = ""
	a.CalendarSync = CalendarSyncNone
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAppointmentRescheduledEvent(a, hadCalendarEvent))

	return nil
}

// MarkCalendarSynced records the external calendar event reference
func (a *Appointment) MarkCalendarSynced(eventID string) error {
	if a.Status != StatusConfirmed {
		return shared.ErrInvalidState
	}
	if strings.TrimSpace(eventID) == "" {
		return shared.NewDomainError("INVALID_EVENT_ID", "Calendar event ID cannot be empty")
	}

	a.CalendarEventID = eventID
	a.CalendarSync = CalendarSyncSynced
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// ClearCalendarEvent drops the external calendar reference after the
// event has been deleted upstream
func (a *Appointment) ClearCalendarEvent() {
	a.CalendarEventID = ""
	if a.CalendarSync == CalendarSyncSynced {
		a.CalendarSync = CalendarSyncNone
	}
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// IsParticipant reports whether the user is the client or the advocate
func (a *Appointment) IsParticipant(userID uuid.UUID) bool {
	return userID == a.ClientID || userID == a.AdvocateID
}

// Overlaps reports whether two time ranges intersect
func (a *Appointment) Overlaps(startAt, endAt time.Time) bool {
	return a.StartAt.Before(endAt) && startAt.Before(a.EndAt)
}

// Validation functions

// MaxSlotDuration bounds a single consultation
const MaxSlotDuration = 8 * time.Hour

func validateSlot(startAt, endAt time.Time) error {
	if startAt.IsZero() || endAt.IsZero() {
		return shared.NewDomainError("INVALID_SLOT", "Start and end times are required")
	}
	if !startAt.Before(endAt) {
		return shared.NewDomainError("INVALID_SLOT", "Start time must be before end time")
	}
	if endAt.Sub(startAt) > MaxSlotDuration {
		return shared.NewDomainError("INVALID_SLOT", "Appointment cannot exceed 8 hours")
	}
	return nil
}

func validateMode(mode AppointmentMode) error {
	switch mode {
	case ModeInPerson, ModeVideo, ModePhone:
		return nil
	default:
		return shared.NewDomainError("INVALID_MODE", "Mode must be 'in_person', 'video' or 'phone'")
	}
}

func validateSubject(subject string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return shared.NewDomainError("INVALID_SUBJECT", "Subject cannot be empty")
	}
	if len(subject) > 500 {
		return shared.NewDomainError("INVALID_SUBJECT", "Subject cannot exceed 500 characters")
	}
	return nil
}
