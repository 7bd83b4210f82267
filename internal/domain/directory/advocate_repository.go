package directory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/legallink/backend/internal/domain/shared"
)

// AdvocateRepository defines the persistence operations for advocate
// profiles
type AdvocateRepository interface {
	Create(ctx context.Context, advocate *Advocate) error
	Update(ctx context.Context, advocate *Advocate) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Advocate, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Advocate, error)
	FindByRegistrationNumber(ctx context.Context, number string) (*Advocate, error)
	Search(ctx context.Context, filter SearchFilter) ([]*Advocate, int64, error)
	FindCandidates(ctx context.Context, req MatchRequest) ([]*Advocate, error)
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
	ExistsByRegistrationNumber(ctx context.Context, number string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// SearchFilter narrows advocate directory searches. A zero FeeCeiling
// means no ceiling.
type SearchFilter struct {
	shared.Filter
	Keyword        string
	Specialization *Specialization
	City           string
	State          string
	Language       string
	FeeCeiling     decimal.Decimal
	VerifiedOnly   bool
	AvailableOnly  bool
	Verification   *VerificationStatus
	Status         *AdvocateStatus
}
