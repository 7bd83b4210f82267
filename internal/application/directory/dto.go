package directory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/legallink/backend/internal/domain/directory"
)

// RegisterAdvocateRequest creates an advocate profile for the current
// user
type RegisterAdvocateRequest struct {
	RegistrationNumber string   `json:"registration_number" binding:"required,min=3,max=50"`
	City               string   `json:"city" binding:"required,min=1,max=100"`
	State              string   `json:"state" binding:"required,min=1,max=100"`
	Specializations    []string `json:"specializations" binding:"required,min=1,max=5"`
}

// UpdateAdvocateProfileRequest replaces the mutable profile fields
type UpdateAdvocateProfileRequest struct {
	City            string          `json:"city" binding:"required,min=1,max=100"`
	State           string          `json:"state" binding:"required,min=1,max=100"`
	Bio             string          `json:"bio" binding:"max=2000"`
	Specializations []string        `json:"specializations" binding:"required,min=1,max=5"`
	Languages       []string        `json:"languages" binding:"max=10"`
	YearsExperience int             `json:"years_experience" binding:"min=0,max=70"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
}

// SetAvailabilityRequest toggles whether the advocate accepts new work
type SetAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// ReviewVerificationRequest records an admin verification decision
type ReviewVerificationRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note" binding:"max=1000"`
}

// SearchAdvocatesRequest narrows directory searches
type SearchAdvocatesRequest struct {
	Page           int    `form:"page"`
	PageSize       int    `form:"page_size"`
	Keyword        string `form:"keyword"`
	Specialization string `form:"specialization"`
	City           string `form:"city"`
	State          string `form:"state"`
	Language       string `form:"language"`
	FeeCeiling     string `form:"fee_ceiling"`
	AvailableOnly  bool   `form:"available_only"`
}

// ListVerificationsRequest narrows the admin verification queue
type ListVerificationsRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status" binding:"omitempty,oneof=pending verified rejected"`
}

// MatchRequest asks for ranked advocate recommendations
type MatchRequest struct {
	Specialization string `json:"specialization" binding:"required"`
	City           string `json:"city" binding:"max=100"`
	State          string `json:"state" binding:"max=100"`
	Language       string `json:"language" binding:"max=50"`
	Urgency        string `json:"urgency" binding:"omitempty,oneof=normal urgent emergency"`
	Limit          int    `json:"limit" binding:"min=0,max=50"`
}

// AdvocateResponse represents an advocate profile in API responses
type AdvocateResponse struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"user_id"`
	RegistrationNumber string          `json:"registration_number"`
	Specializations    []string        `json:"specializations"`
	City               string          `json:"city"`
	State              string          `json:"state"`
	Languages          []string        `json:"languages"`
	YearsExperience    int             `json:"years_experience"`
	ConsultationFee    decimal.Decimal `json:"consultation_fee"`
	Bio                string          `json:"bio,omitempty"`
	Verification       string          `json:"verification"`
	VerificationNote   string          `json:"verification_note,omitempty"`
	Status             string          `json:"status"`
	Available          bool            `json:"available"`
	AverageRating      decimal.Decimal `json:"average_rating"`
	RatingCount        int             `json:"rating_count"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// MatchResponse pairs an advocate with its match score
type MatchResponse struct {
	Advocate AdvocateResponse `json:"advocate"`
	Score    decimal.Decimal  `json:"score"`
}

// ToAdvocateResponse converts a domain advocate to a response DTO
func ToAdvocateResponse(advocate *directory.Advocate) AdvocateResponse {
	specializations := make([]string, len(advocate.Specializations))
	for i, s := range advocate.Specializations {
		specializations[i] = string(s)
	}
	return AdvocateResponse{
		ID:                 advocate.ID,
		UserID:             advocate.UserID,
		RegistrationNumber: advocate.RegistrationNumber,
		Specializations:    specializations,
		City:               advocate.City,
		State:              advocate.State,
		Languages:          advocate.Languages,
		YearsExperience:    advocate.YearsExperience,
		ConsultationFee:    advocate.ConsultationFee,
		Bio:                advocate.Bio,
		Verification:       string(advocate.Verification),
		VerificationNote:   advocate.VerificationNote,
		Status:             string(advocate.Status),
		Available:          advocate.Available,
		AverageRating:      advocate.AverageRating,
		RatingCount:        advocate.RatingCount,
		CreatedAt:          advocate.CreatedAt,
		UpdatedAt:          advocate.UpdatedAt,
	}
}

func toSpecializations(tags []string) []directory.Specialization {
	out := make([]directory.Specialization, len(tags))
	for i, tag := range tags {
		out[i] = directory.Specialization(tag)
	}
	return out
}
