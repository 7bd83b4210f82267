package directory

import (
	"context"

	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/directory"
	"github.com/legallink/backend/internal/infrastructure/telemetry"
)

// DefaultMatchLimit is the number of recommendations returned when the
// request does not set one
const DefaultMatchLimit = 10

// MatchingService orchestrates advocate matching: the repository
// narrows the candidate set, the domain service ranks it
type MatchingService struct {
	advocateRepo directory.AdvocateRepository
	matcher      *directory.MatchingService
	logger       *zap.Logger
}

// NewMatchingService creates a new matching service
func NewMatchingService(advocateRepo directory.AdvocateRepository, logger *zap.Logger) *MatchingService {
	return &MatchingService{
		advocateRepo: advocateRepo,
		matcher:      directory.NewMatchingService(),
		logger:       logger,
	}
}

// Match returns ranked advocate recommendations for the request
func (s *MatchingService) Match(ctx context.Context, req MatchRequest) ([]MatchResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "matching", "match",
		telemetry.WithAttribute(telemetry.SpanAttrSpecialization, req.Specialization),
		telemetry.WithAttribute(telemetry.SpanAttrCity, req.City))
	defer span.End()

	domainReq := directory.MatchRequest{
		Specialization: directory.Specialization(req.Specialization),
		City:           req.City,
		State:          req.State,
		Language:       req.Language,
		Urgency:        directory.Urgency(req.Urgency),
		Limit:          req.Limit,
	}
	if domainReq.Limit == 0 {
		domainReq.Limit = DefaultMatchLimit
	}
	if err := domainReq.Validate(); err != nil {
		return nil, err
	}

	candidates, err := s.advocateRepo.FindCandidates(ctx, domainReq)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	matches, err := s.matcher.Rank(domainReq, candidates)
	if err != nil {
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrMatchCount, len(matches))

	s.logger.Debug("Matched advocates",
		zap.String("specialization", req.Specialization),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(matches)))

	responses := make([]MatchResponse, len(matches))
	for i, match := range matches {
		responses[i] = MatchResponse{
			Advocate: ToAdvocateResponse(match.Advocate),
			Score:    match.Score,
		}
	}
	return responses, nil
}
