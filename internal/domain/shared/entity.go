// Package shared holds the building blocks common to every domain:
// entity and aggregate bases, domain events, errors, and pagination.
package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides the identity and timestamp fields shared by
// domain entities.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity generates a fresh identity with both timestamps set to
// now.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the update timestamp. Mutating operations call this so
// UpdatedAt reflects domain changes, not persistence writes.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}
