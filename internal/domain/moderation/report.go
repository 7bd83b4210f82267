package moderation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/shared"
)

// ReportReason categorizes a complaint against an advocate
type ReportReason string

const (
	ReasonMisconduct  ReportReason = "misconduct"
	ReasonFraud       ReportReason = "fraud"
	ReasonFakeProfile ReportReason = "fake_profile"
	ReasonHarassment  ReportReason = "harassment"
	ReasonFeeDispute  ReportReason = "fee_dispute"
	ReasonOther       ReportReason = "other"
)

// ReportStatus tracks the review lifecycle. Transitions only move
// forward: open → under_review → resolved | dismissed.
type ReportStatus string

const (
	ReportStatusOpen        ReportStatus = "open"
	ReportStatusUnderReview ReportStatus = "under_review"
	ReportStatusResolved    ReportStatus = "resolved"
	ReportStatusDismissed   ReportStatus = "dismissed"
)

// Report is a complaint a client files against an advocate
type Report struct {
	shared.BaseAggregateRoot
	ReporterID uuid.UUID
	AdvocateID uuid.UUID
	Reason     ReportReason
	Details    string
	Status     ReportStatus
	Resolution string
	ReviewerID *uuid.UUID
	ReviewedAt *time.Time
}

// NewReport files a report against an advocate
func NewReport(reporterID, advocateID uuid.UUID, reason ReportReason, details string) (*Report, error) {
	if reporterID == uuid.Nil || advocateID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTICIPANTS", "Reporter and advocate are required")
	}
	if err := validateReason(reason); err != nil {
		return nil, err
	}
	if err := validateDetails(reason, details); err != nil {
		return nil, err
	}

	report := &Report{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReporterID:        reporterID,
		AdvocateID:        advocateID,
		Reason:            reason,
		Details:           strings.TrimSpace(details),
		Status:            ReportStatusOpen,
	}

	report.AddDomainEvent(NewReportFiledEvent(report))

	return report, nil
}

// StartReview moves an open report under review
func (r *Report) StartReview(reviewerID uuid.UUID) error {
	if r.Status != ReportStatusOpen {
		return shared.ErrInvalidState
	}
	if reviewerID == uuid.Nil {
		return shared.NewDomainError("INVALID_REVIEWER", "Reviewer is required")
	}

	r.Status = ReportStatusUnderReview
	r.ReviewerID = &reviewerID
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Resolve closes a report under review with a resolution note. Whether
// the advocate gets suspended is the application service's call.
func (r *Report) Resolve(reviewerID uuid.UUID, resolution string) error {
	return r.close(reviewerID, ReportStatusResolved, resolution)
}

// Dismiss closes a report under review without action
func (r *Report) Dismiss(reviewerID uuid.UUID, resolution string) error {
	return r.close(reviewerID, ReportStatusDismissed, resolution)
}

func (r *Report) close(reviewerID uuid.UUID, status ReportStatus, resolution string) error {
	if r.Status != ReportStatusUnderReview {
		return shared.ErrInvalidState
	}
	if strings.TrimSpace(resolution) == "" {
		return shared.NewDomainError("INVALID_RESOLUTION", "Resolution note is required")
	}

	now := time.Now()
	r.Status = status
	r.Resolution = strings.TrimSpace(resolution)
	r.ReviewerID = &reviewerID
	r.ReviewedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReportClosedEvent(r))

	return nil
}

// IsClosed reports whether the report reached a terminal status
func (r *Report) IsClosed() bool {
	return r.Status == ReportStatusResolved || r.Status == ReportStatusDismissed
}

func validateReason(reason ReportReason) error {
	switch reason {
	case ReasonMisconduct, ReasonFraud, ReasonFakeProfile, ReasonHarassment, ReasonFeeDispute, ReasonOther:
		return nil
	default:
		return shared.NewDomainError("INVALID_REASON", "Unknown report reason: "+string(reason))
	}
}

func validateDetails(reason ReportReason, details string) error {
	details = strings.TrimSpace(details)
	if reason == ReasonOther && details == "" {
		return shared.NewDomainError("INVALID_DETAILS", "Details are required for 'other' reports")
	}
	if len(details) > 4000 {
		return shared.NewDomainError("INVALID_DETAILS", "Details cannot exceed 4000 characters")
	}
	return nil
}
