package engagement

import (
	"time"

	"github.com/legallink/backend/internal/domain/shared"
)

// Aggregate type constant for Appointment
const AggregateTypeAppointment = "Appointment"

// Appointment domain event types
const (
	EventTypeAppointmentRequested   = "AppointmentRequested"
	EventTypeAppointmentConfirmed   = "AppointmentConfirmed"
	EventTypeAppointmentCancelled   = "AppointmentCancelled"
	EventTypeAppointmentCompleted   = "AppointmentCompleted"
	EventTypeAppointmentRescheduled = "AppointmentRescheduled"
	EventTypeAppointmentReminder    = "AppointmentReminder"
)

// AppointmentRequestedEvent is published when a client requests a slot
type AppointmentRequestedEvent struct {
	shared.BaseDomainEvent
	ClientID   string    `json:"client_id"`
	AdvocateID string    `json:"advocate_id"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
}

// NewAppointmentRequestedEvent creates a new AppointmentRequestedEvent
func NewAppointmentRequestedEvent(appointment *Appointment) *AppointmentRequestedEvent {
	return &AppointmentRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAppointmentRequested, AggregateTypeAppointment, appointment.ID),
		ClientID:        appointment.ClientID.String(),
		AdvocateID:      appointment.AdvocateID.String(),
		StartAt:         appointment.StartAt,
		EndAt:           appointment.EndAt,
	}
}

// AppointmentConfirmedEvent is published when the advocate confirms.
// Subscribers use it to kick off the calendar sync.
type AppointmentConfirmedEvent struct {
	shared.BaseDomainEvent
	ClientID   string    `json:"client_id"`
	AdvocateID string    `json:"advocate_id"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
}

// NewAppointmentConfirmedEvent creates a new AppointmentConfirmedEvent
func NewAppointmentConfirmedEvent(appointment *Appointment) *AppointmentConfirmedEvent {
	return &AppointmentConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAppointmentConfirmed, AggregateTypeAppointment, appointment.ID),
		ClientID:        appointment.ClientID.String(),
		AdvocateID:      appointment.AdvocateID.String(),
		StartAt:         appointment.StartAt,
		EndAt:           appointment.EndAt,
	}
}

// AppointmentCancelledEvent is published when a participant cancels
type AppointmentCancelledEvent struct {
	shared.BaseDomainEvent
	ClientID         string `json:"client_id"`
	AdvocateID       string `json:"advocate_id"`
	Reason           string `json:"reason"`
	HadCalendarEvent bool   `json:"had_calendar_event"`
}

// NewAppointmentCancelledEvent creates a new AppointmentCancelledEvent
func NewAppointmentCancelledEvent(appointment *Appointment, hadCalendarEvent bool) *AppointmentCancelledEvent {
	return &AppointmentCancelledEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeAppointmentCancelled, AggregateTypeAppointment, appointment.ID),
		ClientID:         appointment.ClientID.String(),
		AdvocateID:       appointment.AdvocateID.String(),
		Reason:           appointment.CancelReason,
		HadCalendarEvent: hadCalendarEvent,
	}
}

// AppointmentCompletedEvent is published when the advocate marks the
// consultation as held. Subscribers use it to open the rating window.
type AppointmentCompletedEvent struct {
	shared.BaseDomainEvent
	ClientID   string `json:"client_id"`
	AdvocateID string `json:"advocate_id"`
}

// NewAppointmentCompletedEvent creates a new AppointmentCompletedEvent
func NewAppointmentCompletedEvent(appointment *Appointment) *AppointmentCompletedEvent {
	return &AppointmentCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAppointmentCompleted, AggregateTypeAppointment, appointment.ID),
		ClientID:        appointment.ClientID.String(),
		AdvocateID:      appointment.AdvocateID.String(),
	}
}

// AppointmentRescheduledEvent is published when the slot moves
type AppointmentRescheduledEvent struct {
	shared.BaseDomainEvent
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	HadCalendarEvent bool      `json:"had_calendar_event"`
}

// NewAppointmentRescheduledEvent creates a new AppointmentRescheduledEvent
func NewAppointmentRescheduledEvent(appointment *Appointment, hadCalendarEvent bool) *AppointmentRescheduledEvent {
	return &AppointmentRescheduledEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeAppointmentRescheduled, AggregateTypeAppointment, appointment.ID),
		StartAt:          appointment.StartAt,
		EndAt:            appointment.EndAt,
		HadCalendarEvent: hadCalendarEvent,
	}
}

// AppointmentReminderEvent is published by the reminder scheduler for
// appointments starting within the reminder window
type AppointmentReminderEvent struct {
	shared.BaseDomainEvent
	ClientID   string    `json:"client_id"`
	AdvocateID string    `json:"advocate_id"`
	StartAt    time.Time `json:"start_at"`
}

// NewAppointmentReminderEvent creates a new AppointmentReminderEvent
func NewAppointmentReminderEvent(appointment *Appointment) *AppointmentReminderEvent {
	return &AppointmentReminderEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAppointmentReminder, AggregateTypeAppointment, appointment.ID),
		ClientID:        appointment.ClientID.String(),
		AdvocateID:      appointment.AdvocateID.String(),
		StartAt:         appointment.StartAt,
	}
}
