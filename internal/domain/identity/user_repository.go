package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/shared"
)

// UserRepository defines the persistence operations for user aggregates
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]*User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// UserFilter narrows user listings
type UserFilter struct {
	shared.Filter
	Keyword string
	Role    *UserRole
	Status  *UserStatus
}
