package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorMatchesByCode(t *testing.T) {
	err := NewDomainError("NOT_FOUND", "advocate profile not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))
}

func TestDomainErrorWithCause(t *testing.T) {
	cause := errors.New("record not found")
	err := ErrNotFound.WithCause(cause)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrNotFound.Message, err.Error())

	// The sentinel itself must stay cause-free.
	assert.Nil(t, ErrNotFound.Unwrap())
}

func TestDomainErrorAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load appointment: %w", ErrSlotConflict)

	var domainErr *DomainError
	assert.True(t, errors.As(wrapped, &domainErr))
	assert.Equal(t, "SLOT_CONFLICT", domainErr.Code)
}
