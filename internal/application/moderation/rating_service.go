package moderation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/directory"
	"github.com/legallink/backend/internal/domain/moderation"
	"github.com/legallink/backend/internal/domain/shared"
)

// RatingService handles client ratings of advocates. Saving a rating
// recomputes the advocate's denormalized aggregate in the same call.
type RatingService struct {
	ratingRepo   moderation.RatingRepository
	advocateRepo directory.AdvocateRepository
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewRatingService creates a new rating service
func NewRatingService(
	ratingRepo moderation.RatingRepository,
	advocateRepo directory.AdvocateRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *RatingService {
	return &RatingService{
		ratingRepo:   ratingRepo,
		advocateRepo: advocateRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Rate creates the caller's rating of an advocate, or revises it when
// one already exists for the pair
func (s *RatingService) Rate(ctx context.Context, clientID uuid.UUID, req RateAdvocateRequest) (*RatingResponse, error) {
	advocate, err := s.advocateRepo.FindByID(ctx, req.AdvocateID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if advocate.UserID == clientID {
		return nil, shared.NewDomainError("SELF_RATING", "Advocates cannot rate themselves")
	}

	existing, err := s.ratingRepo.FindByPair(ctx, clientID, advocate.ID)
	if err == nil && existing != nil {
		if err := existing.Revise(req.Score, req.Comment); err != nil {
			return nil, err
		}
		if err := s.ratingRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		if err := s.refreshSummary(ctx, advocate); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, existing)

		response := ToRatingResponse(existing)
		return &response, nil
	}

	rating, err := moderation.NewRating(clientID, advocate.ID, req.Score, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	if err := s.refreshSummary(ctx, advocate); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, rating)

	s.logger.Info("Advocate rated",
		zap.String("advocate_id", advocate.ID.String()),
		zap.Int("score", req.Score))

	response := ToRatingResponse(rating)
	return &response, nil
}

// Delete removes the caller's rating and recomputes the aggregate
func (s *RatingService) Delete(ctx context.Context, clientID uuid.UUID, ratingID uuid.UUID) error {
	rating, err := s.ratingRepo.FindByID(ctx, ratingID)
	if err != nil {
		return shared.ErrNotFound
	}
	if !rating.IsOwnedBy(clientID) {
		return shared.ErrForbidden
	}

	if err := s.ratingRepo.Delete(ctx, rating.ID); err != nil {
		return err
	}

	advocate, err := s.advocateRepo.FindByID(ctx, rating.AdvocateID)
	if err == nil {
		if err := s.refreshSummary(ctx, advocate); err != nil {
			return err
		}
	}

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, moderation.NewRatingDeletedEvent(rating)); err != nil {
			s.logger.Error("Failed to publish rating deletion", zap.Error(err))
		}
	}
	return nil
}

// ListByAdvocate pages through an advocate's ratings, newest first
func (s *RatingService) ListByAdvocate(ctx context.Context, advocateID uuid.UUID, req ListRatingsRequest) (*shared.Paginated[RatingResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}

	ratings, total, err := s.ratingRepo.FindByAdvocate(ctx, advocateID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]RatingResponse, len(ratings))
	for i, rating := range ratings {
		items[i] = ToRatingResponse(rating)
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (s *RatingService) refreshSummary(ctx context.Context, advocate *directory.Advocate) error {
	summary, err := s.ratingRepo.Summarize(ctx, advocate.ID)
	if err != nil {
		return err
	}
	if err := advocate.ApplyRatingSummary(summary.Average, summary.Count); err != nil {
		return err
	}
	return s.advocateRepo.Update(ctx, advocate)
}

func (s *RatingService) publishEvents(ctx context.Context, rating *moderation.Rating) {
	if s.eventBus == nil {
		return
	}
	for _, event := range rating.GetDomainEvents() {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	rating.ClearDomainEvents()
}
