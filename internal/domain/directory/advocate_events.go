package directory

import (
	"github.com/legallink/backend/internal/domain/shared"
)

// Aggregate type constant for Advocate
const AggregateTypeAdvocate = "Advocate"

// Advocate domain event types
const (
	EventTypeAdvocateRegistered = "AdvocateRegistered"
	EventTypeAdvocateVerified   = "AdvocateVerified"
)

// AdvocateRegisteredEvent is published when an advocate profile is created
type AdvocateRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID             string `json:"user_id"`
	RegistrationNumber string `json:"registration_number"`
}

// NewAdvocateRegisteredEvent creates a new AdvocateRegisteredEvent
func NewAdvocateRegisteredEvent(advocate *Advocate) *AdvocateRegisteredEvent {
	return &AdvocateRegisteredEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeAdvocateRegistered, AggregateTypeAdvocate, advocate.ID),
		UserID:             advocate.UserID.String(),
		RegistrationNumber: advocate.RegistrationNumber,
	}
}

// AdvocateVerifiedEvent is published when an admin verifies a profile
type AdvocateVerifiedEvent struct {
	shared.BaseDomainEvent
	UserID string `json:"user_id"`
}

// NewAdvocateVerifiedEvent creates a new AdvocateVerifiedEvent
func NewAdvocateVerifiedEvent(advocate *Advocate) *AdvocateVerifiedEvent {
	return &AdvocateVerifiedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdvocateVerified, AggregateTypeAdvocate, advocate.ID),
		UserID:          advocate.UserID.String(),
	}
}
