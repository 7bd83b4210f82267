package directory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/directory"
	"github.com/legallink/backend/internal/domain/identity"
	"github.com/legallink/backend/internal/domain/shared"
)

// AdvocateService handles advocate profile and verification operations
type AdvocateService struct {
	advocateRepo directory.AdvocateRepository
	userRepo     identity.UserRepository
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewAdvocateService creates a new advocate service
func NewAdvocateService(
	advocateRepo directory.AdvocateRepository,
	userRepo identity.UserRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *AdvocateService {
	return &AdvocateService{
		advocateRepo: advocateRepo,
		userRepo:     userRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Register creates a pending advocate profile for a user with the
// advocate role
func (s *AdvocateService) Register(ctx context.Context, userID uuid.UUID, req RegisterAdvocateRequest) (*AdvocateResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if user.Role != identity.UserRoleAdvocate {
		return nil, shared.NewDomainError("INVALID_ROLE", "Only advocate accounts can create an advocate profile")
	}

	exists, err := s.advocateRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An advocate profile already exists for this account")
	}

	taken, err := s.advocateRepo.ExistsByRegistrationNumber(ctx, req.RegistrationNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "This registration number is already registered")
	}

	advocate, err := directory.NewAdvocate(userID, req.RegistrationNumber, req.City, req.State, toSpecializations(req.Specializations))
	if err != nil {
		return nil, err
	}

	if err := s.advocateRepo.Create(ctx, advocate); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, advocate)

	s.logger.Info("Advocate profile created",
		zap.String("advocate_id", advocate.ID.String()),
		zap.String("user_id", userID.String()))

	response := ToAdvocateResponse(advocate)
	return &response, nil
}

// GetByID returns a single advocate profile
func (s *AdvocateService) GetByID(ctx context.Context, id uuid.UUID) (*AdvocateResponse, error) {
	advocate, err := s.advocateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	response := ToAdvocateResponse(advocate)
	return &response, nil
}

// GetByUserID returns the advocate profile owned by a user
func (s *AdvocateService) GetByUserID(ctx context.Context, userID uuid.UUID) (*AdvocateResponse, error) {
	advocate, err := s.advocateRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	response := ToAdvocateResponse(advocate)
	return &response, nil
}

// UpdateProfile replaces the mutable fields of the caller's profile
func (s *AdvocateService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateAdvocateProfileRequest) (*AdvocateResponse, error) {
	advocate, err := s.advocateRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := advocate.UpdateProfile(req.City, req.State, req.Bio, toSpecializations(req.Specializations), req.Languages, req.YearsExperience, req.ConsultationFee); err != nil {
		return nil, err
	}
	if err := s.advocateRepo.Update(ctx, advocate); err != nil {
		return nil, err
	}

	response := ToAdvocateResponse(advocate)
	return &response, nil
}

// SetAvailability toggles whether the caller's profile accepts new work
func (s *AdvocateService) SetAvailability(ctx context.Context, userID uuid.UUID, available bool) (*AdvocateResponse, error) {
	advocate, err := s.advocateRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	advocate.SetAvailability(available)
	if err := s.advocateRepo.Update(ctx, advocate); err != nil {
		return nil, err
	}

	response := ToAdvocateResponse(advocate)
	return &response, nil
}

// Search lists advocates matching the public directory filters. Only
// verified, active profiles are returned.
func (s *AdvocateService) Search(ctx context.Context, req SearchAdvocatesRequest) (*shared.Paginated[AdvocateResponse], error) {
	filter := directory.SearchFilter{
		Filter:        shared.DefaultFilter(),
		Keyword:       req.Keyword,
		City:          req.City,
		State:         req.State,
		Language:      req.Language,
		VerifiedOnly:  true,
		AvailableOnly: req.AvailableOnly,
	}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	if req.Specialization != "" {
		specialization := directory.Specialization(req.Specialization)
		if !directory.IsValidSpecialization(specialization) {
			return nil, shared.NewDomainError("INVALID_SPECIALIZATION", "Unknown specialization: "+req.Specialization)
		}
		filter.Specialization = &specialization
	}
	if req.FeeCeiling != "" {
		ceiling, err := decimal.NewFromString(req.FeeCeiling)
		if err != nil || ceiling.IsNegative() {
			return nil, shared.NewDomainError("INVALID_FEE", "Fee ceiling must be a non-negative number")
		}
		filter.FeeCeiling = ceiling
	}
	status := directory.AdvocateStatusActive
	filter.Status = &status

	advocates, total, err := s.advocateRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]AdvocateResponse, len(advocates))
	for i, advocate := range advocates {
		items[i] = ToAdvocateResponse(advocate)
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListVerifications lists profiles for the admin verification queue
func (s *AdvocateService) ListVerifications(ctx context.Context, req ListVerificationsRequest) (*shared.Paginated[AdvocateResponse], error) {
	filter := directory.SearchFilter{Filter: shared.DefaultFilter()}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	verification := directory.VerificationPending
	if req.Status != "" {
		verification = directory.VerificationStatus(req.Status)
	}
	filter.Verification = &verification

	advocates, total, err := s.advocateRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]AdvocateResponse, len(advocates))
	for i, advocate := range advocates {
		items[i] = ToAdvocateResponse(advocate)
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ReviewVerification records an admin decision on a pending profile
func (s *AdvocateService) ReviewVerification(ctx context.Context, advocateID uuid.UUID, req ReviewVerificationRequest) (*AdvocateResponse, error) {
	advocate, err := s.advocateRepo.FindByID(ctx, advocateID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if req.Approve {
		err = advocate.Verify(req.Note)
	} else {
		err = advocate.Reject(req.Note)
	}
	if err != nil {
		return nil, err
	}

	if err := s.advocateRepo.Update(ctx, advocate); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, advocate)

	s.logger.Info("Advocate verification reviewed",
		zap.String("advocate_id", advocate.ID.String()),
		zap.Bool("approved", req.Approve))

	response := ToAdvocateResponse(advocate)
	return &response, nil
}

// Suspend takes an advocate out of the directory
func (s *AdvocateService) Suspend(ctx context.Context, advocateID uuid.UUID) error {
	advocate, err := s.advocateRepo.FindByID(ctx, advocateID)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := advocate.Suspend(); err != nil {
		return err
	}
	if err := s.advocateRepo.Update(ctx, advocate); err != nil {
		return err
	}
	s.logger.Info("Advocate suspended", zap.String("advocate_id", advocateID.String()))
	return nil
}

// Reinstate returns a suspended advocate to the directory
func (s *AdvocateService) Reinstate(ctx context.Context, advocateID uuid.UUID) error {
	advocate, err := s.advocateRepo.FindByID(ctx, advocateID)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := advocate.Reinstate(); err != nil {
		return err
	}
	if err := s.advocateRepo.Update(ctx, advocate); err != nil {
		return err
	}
	s.logger.Info("Advocate reinstated", zap.String("advocate_id", advocateID.String()))
	return nil
}

// RefreshRatingSummary recomputes the advocate's denormalized rating
// fields. Called by the moderation event handlers.
func (s *AdvocateService) RefreshRatingSummary(ctx context.Context, advocateID uuid.UUID, average decimal.Decimal, count int) error {
	advocate, err := s.advocateRepo.FindByID(ctx, advocateID)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := advocate.ApplyRatingSummary(average, count); err != nil {
		return err
	}
	return s.advocateRepo.Update(ctx, advocate)
}

func (s *AdvocateService) publishEvents(ctx context.Context, advocate *directory.Advocate) {
	if s.eventBus == nil {
		return
	}
	for _, event := range advocate.GetDomainEvents() {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	advocate.ClearDomainEvents()
}
