package moderation

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/legallink/backend/internal/domain/shared"
)

// RatingSummary is the transactional recompute result for an advocate
type RatingSummary struct {
	Average decimal.Decimal
	Count   int
}

// RatingRepository defines the persistence operations for ratings
type RatingRepository interface {
	Create(ctx context.Context, rating *Rating) error
	Update(ctx context.Context, rating *Rating) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Rating, error)
	FindByPair(ctx context.Context, clientID, advocateID uuid.UUID) (*Rating, error)
	FindByAdvocate(ctx context.Context, advocateID uuid.UUID, filter shared.Filter) ([]*Rating, int64, error)
	// Summarize recomputes the average and count over all ratings for
	// the advocate.
	Summarize(ctx context.Context, advocateID uuid.UUID) (RatingSummary, error)
}

// ReportRepository defines the persistence operations for reports
type ReportRepository interface {
	Create(ctx context.Context, report *Report) error
	Update(ctx context.Context, report *Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*Report, error)
	FindAll(ctx context.Context, filter ReportFilter) ([]*Report, int64, error)
	CountOpenByAdvocate(ctx context.Context, advocateID uuid.UUID) (int64, error)
}

// ReportFilter narrows report listings
type ReportFilter struct {
	shared.Filter
	ReporterID *uuid.UUID
	AdvocateID *uuid.UUID
	Status     *ReportStatus
	Reason     *ReportReason
}
