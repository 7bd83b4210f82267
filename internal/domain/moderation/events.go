package moderation

import (
	"github.com/legallink/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeRating = "Rating"
	AggregateTypeReport = "Report"
)

// Moderation domain event types
const (
	EventTypeRatingChanged = "RatingChanged"
	EventTypeReportFiled   = "ReportFiled"
	EventTypeReportClosed  = "ReportClosed"
)

// RatingChangedEvent is published when a rating is created or revised.
// The directory context subscribes to recompute the advocate's
// denormalized rating summary.
type RatingChangedEvent struct {
	shared.BaseDomainEvent
	ClientID   string `json:"client_id"`
	AdvocateID string `json:"advocate_id"`
	Score      int    `json:"score"`
}

// NewRatingChangedEvent creates a new RatingChangedEvent
func NewRatingChangedEvent(rating *Rating) *RatingChangedEvent {
	return &RatingChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRatingChanged, AggregateTypeRating, rating.ID),
		ClientID:        rating.ClientID.String(),
		AdvocateID:      rating.AdvocateID.String(),
		Score:           rating.Score,
	}
}

// RatingDeletedEvent is published when a client removes their rating
type RatingDeletedEvent struct {
	shared.BaseDomainEvent
	ClientID   string `json:"client_id"`
	AdvocateID string `json:"advocate_id"`
}

// EventTypeRatingDeleted identifies rating removals
const EventTypeRatingDeleted = "RatingDeleted"

// NewRatingDeletedEvent creates a new RatingDeletedEvent
func NewRatingDeletedEvent(rating *Rating) *RatingDeletedEvent {
	return &RatingDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRatingDeleted, AggregateTypeRating, rating.ID),
		ClientID:        rating.ClientID.String(),
		AdvocateID:      rating.AdvocateID.String(),
	}
}

// ReportFiledEvent is published when a client files a report
type ReportFiledEvent struct {
	shared.BaseDomainEvent
	ReporterID string       `json:"reporter_id"`
	AdvocateID string       `json:"advocate_id"`
	Reason     ReportReason `json:"reason"`
}

// NewReportFiledEvent creates a new ReportFiledEvent
func NewReportFiledEvent(report *Report) *ReportFiledEvent {
	return &ReportFiledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReportFiled, AggregateTypeReport, report.ID),
		ReporterID:      report.ReporterID.String(),
		AdvocateID:      report.AdvocateID.String(),
		Reason:          report.Reason,
	}
}

// ReportClosedEvent is published when a report is resolved or dismissed
type ReportClosedEvent struct {
	shared.BaseDomainEvent
	AdvocateID string       `json:"advocate_id"`
	Status     ReportStatus `json:"status"`
	Resolution string       `json:"resolution"`
}

// NewReportClosedEvent creates a new ReportClosedEvent
func NewReportClosedEvent(report *Report) *ReportClosedEvent {
	return &ReportClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReportClosed, AggregateTypeReport, report.ID),
		AdvocateID:      report.AdvocateID.String(),
		Status:          report.Status,
		Resolution:      report.Resolution,
	}
}
