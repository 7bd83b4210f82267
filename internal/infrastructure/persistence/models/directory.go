package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/legallink/backend/internal/domain/directory"
)

// AdvocateModel is the persistence model for the Advocate domain entity.
// Specializations and languages are stored as jsonb arrays; candidate
// queries use jsonb containment.
type AdvocateModel struct {
	AggregateModel
	UserID             uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:idx_advocates_user"`
	RegistrationNumber string                       `gorm:"type:varchar(50);not null;uniqueIndex:idx_advocates_registration"`
	Specializations    []directory.Specialization   `gorm:"type:jsonb;serializer:json;not null"`
	City               string                       `gorm:"type:varchar(100);not null;index"`
	State              string                       `gorm:"type:varchar(100);not null;index"`
	Languages          []string                     `gorm:"type:jsonb;serializer:json"`
	YearsExperience    int                          `gorm:"not null;default:0"`
	ConsultationFee    decimal.Decimal              `gorm:"type:decimal(18,4);not null;default:0"`
	Bio                string                       `gorm:"type:text"`
	Verification       directory.VerificationStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	VerificationNote   string                       `gorm:"type:text"`
	Status             directory.AdvocateStatus     `gorm:"type:varchar(20);not null;default:'active';index"`
	Available          bool                         `gorm:"not null;default:true"`
	AverageRating      decimal.Decimal              `gorm:"type:decimal(3,2);not null;default:0"`
	RatingCount        int                          `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (AdvocateModel) TableName() string {
	return "advocates"
}

// ToDomain converts the persistence model to a domain Advocate entity.
func (m *AdvocateModel) ToDomain() *directory.Advocate {
	return &directory.Advocate{
		BaseAggregateRoot:  m.ToAggregateRoot(),
		UserID:             m.UserID,
		RegistrationNumber: m.RegistrationNumber,
		Specializations:    m.Specializations,
		City:               m.City,
		State:              m.State,
		Languages:          m.Languages,
		YearsExperience:    m.YearsExperience,
		ConsultationFee:    m.ConsultationFee,
		Bio:                m.Bio,
		Verification:       m.Verification,
		VerificationNote:   m.VerificationNote,
		Status:             m.Status,
		Available:          m.Available,
		AverageRating:      m.AverageRating,
		RatingCount:        m.RatingCount,
	}
}

// FromDomain populates the persistence model from a domain Advocate entity.
func (m *AdvocateModel) FromDomain(a *directory.Advocate) {
	m.FromAggregateRoot(a.BaseAggregateRoot)
	m.UserID = a.UserID
	m.RegistrationNumber = a.RegistrationNumber
	m.Specializations = a.Specializations
	m.City = a.City
	m.State = a.State
	m.Languages = a.Languages
	m.YearsExperience = a.YearsExperience
	m.ConsultationFee = a.ConsultationFee
	m.Bio = a.Bio
	m.Verification = a.Verification
	m.VerificationNote = a.VerificationNote
	m.Status = a.Status
	m.Available = a.Available
	m.AverageRating = a.AverageRating
	m.RatingCount = a.RatingCount
}

// AdvocateModelFromDomain creates a new persistence model from a domain Advocate entity.
func AdvocateModelFromDomain(a *directory.Advocate) *AdvocateModel {
	m := &AdvocateModel{}
	m.FromDomain(a)
	return m
}
