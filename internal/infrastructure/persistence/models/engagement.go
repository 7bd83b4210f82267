package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/engagement"
)

// AppointmentModel is the persistence model for the Appointment domain
// entity. AdvocateID references the advocate's user account, not the
// profile row.
type AppointmentModel struct {
	AggregateModel
	ClientID        uuid.UUID                    `gorm:"type:uuid;not null;index:idx_appointments_client"`
	AdvocateID      uuid.UUID                    `gorm:"type:uuid;not null;index:idx_appointments_advocate_time,priority:1"`
	StartAt         time.Time                    `gorm:"type:timestamptz;not null;index:idx_appointments_advocate_time,priority:2"`
	EndAt           time.Time                    `gorm:"type:timestamptz;not null"`
	Mode            engagement.AppointmentMode   `gorm:"type:varchar(20);not null"`
	Subject         string                       `gorm:"type:varchar(500);not null"`
	Notes           string                       `gorm:"type:text"`
	Status          engagement.AppointmentStatus `gorm:"type:varchar(20);not null;default:'requested';index"`
	CancelReason    string                       `gorm:"type:varchar(500)"`
	CancelledBy     *uuid.UUID                   `gorm:"type:uuid"`
	CalendarEventID string                       `gorm:"type:varchar(200)"`
	CalendarSync    engagement.CalendarSyncState `gorm:"type:varchar(20);not null;default:'none';index"`
	ConfirmedAt     *time.Time
	CompletedAt     *time.Time
}

// TableName returns the table name for GORM
func (AppointmentModel) TableName() string {
	return "appointments"
}

// ToDomain converts the persistence model to a domain Appointment entity.
func (m *AppointmentModel) ToDomain() *engagement.Appointment {
	return &engagement.Appointment{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ClientID:          m.ClientID,
		AdvocateID:        m.AdvocateID,
		StartAt:           m.StartAt,
		EndAt:             m.EndAt,
		Mode:              m.Mode,
		Subject:           m.Subject,
		Notes:             m.Notes,
		Status:            m.Status,
		CancelReason:      m.CancelReason,
		CancelledBy:       m.CancelledBy,
		CalendarEventID:   m.CalendarEventID,
		CalendarSync:      m.CalendarSync,
		ConfirmedAt:       m.ConfirmedAt,
		CompletedAt:       m.CompletedAt,
	}
}

// FromDomain populates the persistence model from a domain Appointment entity.
func (m *AppointmentModel) FromDomain(a *engagement.Appointment) {
	m.FromAggregateRoot(a.BaseAggregateRoot)
	m.ClientID = a.ClientID
	m.AdvocateID = a.AdvocateID
	m.StartAt = a.StartAt
	m.EndAt = a.EndAt
	m.Mode = a.Mode
	m.Subject = a.Subject
	m.Notes = a.Notes
	m.Status = a.Status
	m.CancelReason = a.CancelReason
	m.CancelledBy = a.CancelledBy
	m.CalendarEventID = a.CalendarEventID
	m.CalendarSync = a.CalendarSync
	m.ConfirmedAt = a.ConfirmedAt
	m.CompletedAt = a.CompletedAt
}

// AppointmentModelFromDomain creates a new persistence model from a domain Appointment entity.
func AppointmentModelFromDomain(a *engagement.Appointment) *AppointmentModel {
	m := &AppointmentModel{}
	m.FromDomain(a)
	return m
}
