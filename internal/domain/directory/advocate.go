package directory

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/legallink/backend/internal/domain/shared"
)

// Specialization is a practice-area tag attached to an advocate profile
type Specialization string

const (
	SpecializationCriminal       Specialization = "criminal"
	SpecializationCivil          Specialization = "civil"
	SpecializationFamily         Specialization = "family"
	SpecializationProperty       Specialization = "property"
	SpecializationCorporate      Specialization = "corporate"
	SpecializationConsumer       Specialization = "consumer"
	SpecializationLabor          Specialization = "labor"
	SpecializationTax            Specialization = "tax"
	SpecializationConstitutional Specialization = "constitutional"
	SpecializationOther          Specialization = "other"
)

// validSpecializations is the closed set of accepted tags
var validSpecializations = map[Specialization]bool{
	SpecializationCriminal:       true,
	SpecializationCivil:          true,
	SpecializationFamily:         true,
	SpecializationProperty:       true,
	SpecializationCorporate:      true,
	SpecializationConsumer:       true,
	SpecializationLabor:          true,
	SpecializationTax:            true,
	SpecializationConstitutional: true,
	SpecializationOther:          true,
}

// IsValidSpecialization reports whether the tag is one of the accepted
// practice areas
func IsValidSpecialization(s Specialization) bool {
	return validSpecializations[s]
}

// VerificationStatus tracks the admin review of an advocate's credentials
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// AdvocateStatus represents the operational status of an advocate profile
type AdvocateStatus string

const (
	AdvocateStatusActive    AdvocateStatus = "active"
	AdvocateStatusSuspended AdvocateStatus = "suspended"
)

// Advocate represents a legal professional's public profile. It is owned
// by exactly one user and is the aggregate root for profile, verification
// and rating-summary operations.
type Advocate struct {
	shared.BaseAggregateRoot
	UserID             uuid.UUID
	RegistrationNumber string
	Specializations    []Specialization
	City               string
	State              string
	Languages          []string
	YearsExperience    int
	ConsultationFee    decimal.Decimal
	Bio                string
	Verification       VerificationStatus
	VerificationNote   string
	Status             AdvocateStatus
	Available          bool
	AverageRating      decimal.Decimal
	RatingCount        int
}

// NewAdvocate creates a pending advocate profile for a user
func NewAdvocate(userID uuid.UUID, registrationNumber, city, state string, specializations []Specialization) (*Advocate, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	if err := validateRegistrationNumber(registrationNumber); err != nil {
		return nil, err
	}
	if err := validateLocation(city, state); err != nil {
		return nil, err
	}
	if err := validateSpecializations(specializations); err != nil {
		return nil, err
	}

	advocate := &Advocate{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		UserID:             userID,
		RegistrationNumber: strings.ToUpper(strings.TrimSpace(registrationNumber)),
		Specializations:    normalizeSpecializations(specializations),
		City:               strings.TrimSpace(city),
		State:              strings.TrimSpace(state),
		ConsultationFee:    decimal.Zero,
		Verification:       VerificationPending,
		Status:             AdvocateStatusActive,
		Available:          true,
		AverageRating:      decimal.Zero,
	}

	advocate.AddDomainEvent(NewAdvocateRegisteredEvent(advocate))

	return advocate, nil
}

// UpdateProfile updates the advocate's editable profile fields
func (a *Advocate) UpdateProfile(city, state, bio string, specializations []Specialization, languages []string, yearsExperience int, fee decimal.Decimal) error {
	if err := validateLocation(city, state); err != nil {
		return err
	}
	if err := validateSpecializations(specializations); err != nil {
		return err
	}
	if len(bio) > 4000 {
		return shared.NewDomainError("INVALID_BIO", "Bio cannot exceed 4000 characters")
	}
	if yearsExperience < 0 || yearsExperience > 70 {
		return shared.NewDomainError("INVALID_EXPERIENCE", "Years of experience must be between 0 and 70")
	}
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Consultation fee cannot be negative")
	}

	a.City = strings.TrimSpace(city)
	a.State = strings.TrimSpace(state)
	a.Bio = strings.TrimSpace(bio)
	a.Specializations = normalizeSpecializations(specializations)
	a.Languages = normalizeLanguages(languages)
	a.YearsExperience = yearsExperience
	a.ConsultationFee = fee
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetAvailability toggles whether the advocate is accepting new clients
func (a *Advocate) SetAvailability(available bool) {
	a.Available = available
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Verify marks the profile as verified (admin action)
func (a *Advocate) Verify(note string) error {
	if a.Verification == VerificationVerified {
		return shared.NewDomainError("ALREADY_VERIFIED", "Advocate is already verified")
	}

	a.Verification = VerificationVerified
	a.VerificationNote = note
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAdvocateVerifiedEvent(a))

	return nil
}

// Reject marks the profile's credentials as rejected (admin action)
func (a *Advocate) Reject(note string) error {
	if a.Verification == VerificationRejected {
		return shared.NewDomainError("ALREADY_REJECTED", "Advocate is already rejected")
	}
	if strings.TrimSpace(note) == "" {
		return shared.NewDomainError("INVALID_NOTE", "Rejection requires a note")
	}

	a.Verification = VerificationRejected
	a.VerificationNote = note
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Suspend removes the advocate from search and matching
func (a *Advocate) Suspend() error {
	if a.Status == AdvocateStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Advocate is already suspended")
	}

	a.Status = AdvocateStatusSuspended
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Reinstate restores a suspended advocate
func (a *Advocate) Reinstate() error {
	if a.Status != AdvocateStatusSuspended {
		return shared.NewDomainError("NOT_SUSPENDED", "Advocate is not suspended")
	}

	a.Status = AdvocateStatusActive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// ApplyRatingSummary replaces the denormalized rating aggregate. The
// values come from a transactional recompute over the ratings table.
func (a *Advocate) ApplyRatingSummary(average decimal.Decimal, count int) error {
	if count < 0 {
		return shared.NewDomainError("INVALID_RATING_COUNT", "Rating count cannot be negative")
	}
	if average.IsNegative() || average.GreaterThan(decimal.NewFromInt(5)) {
		return shared.NewDomainError("INVALID_RATING", "Average rating must be between 0 and 5")
	}

	a.AverageRating = average
	a.RatingCount = count
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// IsListable reports whether the advocate may appear in search and
// matching results
func (a *Advocate) IsListable() bool {
	return a.Status == AdvocateStatusActive && a.Verification == VerificationVerified
}

// HasSpecialization reports whether the advocate carries the tag
func (a *Advocate) HasSpecialization(s Specialization) bool {
	for _, tag := range a.Specializations {
		if tag == s {
			return true
		}
	}
	return false
}

// SpeaksLanguage reports whether the advocate lists the language,
// case-insensitively
func (a *Advocate) SpeaksLanguage(language string) bool {
	language = strings.ToLower(strings.TrimSpace(language))
	for _, l := range a.Languages {
		if strings.ToLower(l) == language {
			return true
		}
	}
	return false
}

func normalizeSpecializations(tags []Specialization) []Specialization {
	seen := make(map[Specialization]bool, len(tags))
	out := make([]Specialization, 0, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func normalizeLanguages(languages []string) []string {
	seen := make(map[string]bool, len(languages))
	out := make([]string, 0, len(languages))
	for _, l := range languages {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		key := strings.ToLower(l)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}

// Validation functions

var registrationNumberRegex = regexp.MustCompile(`^[A-Z0-9/\-]+$`)

func validateRegistrationNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return shared.NewDomainError("INVALID_REGISTRATION", "Registration number cannot be empty")
	}
	if len(number) > 50 {
		return shared.NewDomainError("INVALID_REGISTRATION", "Registration number cannot exceed 50 characters")
	}
	if !registrationNumberRegex.MatchString(strings.ToUpper(number)) {
		return shared.NewDomainError("INVALID_REGISTRATION", "Registration number can only contain letters, numbers, slashes and hyphens")
	}
	return nil
}

func validateLocation(city, state string) error {
	if strings.TrimSpace(city) == "" {
		return shared.NewDomainError("INVALID_CITY", "City cannot be empty")
	}
	if len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}
	if strings.TrimSpace(state) == "" {
		return shared.NewDomainError("INVALID_STATE", "State cannot be empty")
	}
	if len(state) > 100 {
		return shared.NewDomainError("INVALID_STATE", "State cannot exceed 100 characters")
	}
	return nil
}

func validateSpecializations(tags []Specialization) error {
	if len(tags) == 0 {
		return shared.NewDomainError("INVALID_SPECIALIZATION", "At least one specialization is required")
	}
	for _, tag := range tags {
		if !IsValidSpecialization(tag) {
			return shared.NewDomainError("INVALID_SPECIALIZATION", "Unknown specialization: "+string(tag))
		}
	}
	return nil
}
