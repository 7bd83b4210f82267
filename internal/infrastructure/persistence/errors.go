package persistence

import (
	"errors"

	"gorm.io/gorm"

	"github.com/legallink/backend/internal/domain/shared"
)

// domainErr translates GORM's sentinel errors into the domain ones so
// the application layer never sees a driver error for a plain miss or
// a unique-constraint hit.
func domainErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	default:
		return err
	}
}
