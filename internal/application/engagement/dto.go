package engagement

import (
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/engagement"
)

// RequestAppointmentRequest books a slot with an advocate. AdvocateID is
// the advocate's profile ID, not the user ID.
type RequestAppointmentRequest struct {
	AdvocateID uuid.UUID `json:"advocate_id" binding:"required"`
	StartAt    time.Time `json:"start_at" binding:"required"`
	EndAt      time.Time `json:"end_at" binding:"required"`
	Mode       string    `json:"mode" binding:"required,oneof=in_person video phone"`
	Subject    string    `json:"subject" binding:"required,min=1,max=200"`
	Notes      string    `json:"notes" binding:"max=2000"`
}

// RescheduleAppointmentRequest moves an appointment to a new slot
type RescheduleAppointmentRequest struct {
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
}

// CancelAppointmentRequest cancels with a reason
type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// RejectAppointmentRequest declines a requested appointment
type RejectAppointmentRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ListAppointmentsRequest narrows appointment listings
type ListAppointmentsRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status" binding:"omitempty,oneof=requested confirmed completed cancelled rejected"`
	Upcoming bool   `form:"upcoming"`
}

// AppointmentResponse represents an appointment in API responses
type AppointmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	ClientID        uuid.UUID  `json:"client_id"`
	AdvocateUserID  uuid.UUID  `json:"advocate_user_id"`
	StartAt         time.Time  `json:"start_at"`
	EndAt           time.Time  `json:"end_at"`
	Mode            string     `json:"mode"`
	Subject         string     `json:"subject"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"`
	CancelReason    string     `json:"cancel_reason,omitempty"`
	CancelledBy     *uuid.UUID `json:"cancelled_by,omitempty"`
	CalendarEventID string     `json:"calendar_event_id,omitempty"`
	CalendarSync    string     `json:"calendar_sync"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToAppointmentResponse converts a domain appointment to a response DTO
func ToAppointmentResponse(appointment *engagement.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              appointment.ID,
		ClientID:        appointment.ClientID,
		AdvocateUserID:  appointment.AdvocateID,
		StartAt:         appointment.StartAt,
		EndAt:           appointment.EndAt,
		Mode:            string(appointment.Mode),
		Subject:         appointment.Subject,
		Notes:           appointment.Notes,
		Status:          string(appointment.Status),
		CancelReason:    appointment.CancelReason,
		CancelledBy:     appointment.CancelledBy,
		CalendarEventID: appointment.CalendarEventID,
		CalendarSync:    string(appointment.CalendarSync),
		ConfirmedAt:     appointment.ConfirmedAt,
		CompletedAt:     appointment.CompletedAt,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}
}
