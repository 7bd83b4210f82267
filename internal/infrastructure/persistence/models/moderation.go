package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/moderation"
)

// RatingModel is the persistence model for the Rating domain entity.
// The unique pair index enforces one rating per client per advocate.
type RatingModel struct {
	AggregateModel
	ClientID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_pair,priority:1"`
	AdvocateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_pair,priority:2;index:idx_ratings_advocate"`
	Score      int       `gorm:"not null;check:score >= 1 AND score <= 5"`
	Comment    string    `gorm:"type:varchar(2000)"`
}

// TableName returns the table name for GORM
func (RatingModel) TableName() string {
	return "ratings"
}

// ToDomain converts the persistence model to a domain Rating entity.
func (m *RatingModel) ToDomain() *moderation.Rating {
	return &moderation.Rating{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ClientID:          m.ClientID,
		AdvocateID:        m.AdvocateID,
		Score:             m.Score,
		Comment:           m.Comment,
	}
}

// FromDomain populates the persistence model from a domain Rating entity.
func (m *RatingModel) FromDomain(r *moderation.Rating) {
	m.FromAggregateRoot(r.BaseAggregateRoot)
	m.ClientID = r.ClientID
	m.AdvocateID = r.AdvocateID
	m.Score = r.Score
	m.Comment = r.Comment
}

// RatingModelFromDomain creates a new persistence model from a domain Rating entity.
func RatingModelFromDomain(r *moderation.Rating) *RatingModel {
	m := &RatingModel{}
	m.FromDomain(r)
	return m
}

// ReportModel is the persistence model for the Report domain entity.
type ReportModel struct {
	AggregateModel
	ReporterID uuid.UUID               `gorm:"type:uuid;not null;index:idx_reports_reporter"`
	AdvocateID uuid.UUID               `gorm:"type:uuid;not null;index:idx_reports_advocate"`
	Reason     moderation.ReportReason `gorm:"type:varchar(30);not null"`
	Details    string                  `gorm:"type:text"`
	Status     moderation.ReportStatus `gorm:"type:varchar(20);not null;default:'open';index"`
	Resolution string                  `gorm:"type:text"`
	ReviewerID *uuid.UUID              `gorm:"type:uuid"`
	ReviewedAt *time.Time
}

// TableName returns the table name for GORM
func (ReportModel) TableName() string {
	return "reports"
}

// ToDomain converts the persistence model to a domain Report entity.
func (m *ReportModel) ToDomain() *moderation.Report {
	return &moderation.Report{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ReporterID:        m.ReporterID,
		AdvocateID:        m.AdvocateID,
		Reason:            m.Reason,
		Details:           m.Details,
		Status:            m.Status,
		Resolution:        m.Resolution,
		ReviewerID:        m.ReviewerID,
		ReviewedAt:        m.ReviewedAt,
	}
}

// FromDomain populates the persistence model from a domain Report entity.
func (m *ReportModel) FromDomain(r *moderation.Report) {
	m.FromAggregateRoot(r.BaseAggregateRoot)
	m.ReporterID = r.ReporterID
	m.AdvocateID = r.AdvocateID
	m.Reason = r.Reason
	m.Details = r.Details
	m.Status = r.Status
	m.Resolution = r.Resolution
	m.ReviewerID = r.ReviewerID
	m.ReviewedAt = r.ReviewedAt
}

// ReportModelFromDomain creates a new persistence model from a domain Report entity.
func ReportModelFromDomain(r *moderation.Report) *ReportModel {
	m := &ReportModel{}
	m.FromDomain(r)
	return m
}
