package moderation

import (
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/moderation"
)

// RateAdvocateRequest creates or revises the caller's rating of an
// advocate. AdvocateID is the advocate's profile ID.
type RateAdvocateRequest struct {
	AdvocateID uuid.UUID `json:"advocate_id" binding:"required"`
	Score      int       `json:"score" binding:"required,min=1,max=5"`
	Comment    string    `json:"comment" binding:"max=1000"`
}

// FileReportRequest files a complaint against an advocate
type FileReportRequest struct {
	AdvocateID uuid.UUID `json:"advocate_id" binding:"required"`
	Reason     string    `json:"reason" binding:"required,oneof=misconduct fraud fake_profile harassment fee_dispute other"`
	Details    string    `json:"details" binding:"max=2000"`
}

// CloseReportRequest records the admin decision on a report
type CloseReportRequest struct {
	Dismiss         bool   `json:"dismiss"`
	Resolution      string `json:"resolution" binding:"required,min=1,max=1000"`
	SuspendAdvocate bool   `json:"suspend_advocate"`
}

// ListRatingsRequest pages through an advocate's ratings
type ListRatingsRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// ListReportsRequest narrows admin report listings
type ListReportsRequest struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	AdvocateID string `form:"advocate_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=open under_review resolved dismissed"`
	Reason     string `form:"reason" binding:"omitempty,oneof=misconduct fraud fake_profile harassment fee_dispute other"`
}

// RatingResponse represents a rating in API responses
type RatingResponse struct {
	ID         uuid.UUID `json:"id"`
	ClientID   uuid.UUID `json:"client_id"`
	AdvocateID uuid.UUID `json:"advocate_id"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReportResponse represents a report in API responses
type ReportResponse struct {
	ID         uuid.UUID  `json:"id"`
	ReporterID uuid.UUID  `json:"reporter_id"`
	AdvocateID uuid.UUID  `json:"advocate_id"`
	Reason     string     `json:"reason"`
	Details    string     `json:"details,omitempty"`
	Status     string     `json:"status"`
	Resolution string     `json:"resolution,omitempty"`
	ReviewerID *uuid.UUID `json:"reviewer_id,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToRatingResponse converts a domain rating to a response DTO
func ToRatingResponse(rating *moderation.Rating) RatingResponse {
	return RatingResponse{
		ID:         rating.ID,
		ClientID:   rating.ClientID,
		AdvocateID: rating.AdvocateID,
		Score:      rating.Score,
		Comment:    rating.Comment,
		CreatedAt:  rating.CreatedAt,
		UpdatedAt:  rating.UpdatedAt,
	}
}

// ToReportResponse converts a domain report to a response DTO
func ToReportResponse(report *moderation.Report) ReportResponse {
	return ReportResponse{
		ID:         report.ID,
		ReporterID: report.ReporterID,
		AdvocateID: report.AdvocateID,
		Reason:     string(report.Reason),
		Details:    report.Details,
		Status:     string(report.Status),
		Resolution: report.Resolution,
		ReviewerID: report.ReviewerID,
		ReviewedAt: report.ReviewedAt,
		CreatedAt:  report.CreatedAt,
		UpdatedAt:  report.UpdatedAt,
	}
}
