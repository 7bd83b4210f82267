package directory

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/legallink/backend/internal/domain/shared"
)

// Urgency qualifies how quickly a client needs representation
type Urgency string

const (
	UrgencyNormal    Urgency = "normal"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

// Scoring weights for the matching service. They sum to 1.
var (
	weightSpecialization = decimal.NewFromFloat(0.40)
	weightLocation       = decimal.NewFromFloat(0.25)
	weightRating         = decimal.NewFromFloat(0.15)
	weightExperience     = decimal.NewFromFloat(0.10)
	weightAvailability   = decimal.NewFromFloat(0.10)
)

// experienceCeiling is the number of years past which extra experience
// no longer raises the score
const experienceCeiling = 20

// MatchRequest describes what a client is looking for
type MatchRequest struct {
	Specialization Specialization
	City           string
	State          string
	Language       string
	Urgency        Urgency
	Limit          int
}

// Validate checks the request fields
func (r MatchRequest) Validate() error {
	if !IsValidSpecialization(r.Specialization) {
		return shared.NewDomainError("INVALID_SPECIALIZATION", "Unknown specialization: "+string(r.Specialization))
	}
	if r.Urgency != "" && r.Urgency != UrgencyNormal && r.Urgency != UrgencyUrgent && r.Urgency != UrgencyEmergency {
		return shared.NewDomainError("INVALID_URGENCY", "Urgency must be 'normal', 'urgent' or 'emergency'")
	}
	if r.Limit < 0 {
		return shared.NewDomainError("INVALID_LIMIT", "Limit cannot be negative")
	}
	return nil
}

// Match pairs an advocate with its computed score
type Match struct {
	Advocate *Advocate
	Score    decimal.Decimal
}

// MatchingService ranks advocates against a match request. It is a pure
// domain service; candidate loading is the repository's concern.
type MatchingService struct{}

// NewMatchingService creates a new MatchingService
func NewMatchingService() *MatchingService {
	return &MatchingService{}
}

// Rank scores the candidates and returns them best-first. Only listable
// advocates are considered. Ties break by rating, then experience, then
// ID, so the same inputs always produce the same order.
func (s *MatchingService) Rank(req MatchRequest, candidates []*Advocate) ([]Match, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(candidates))
	for _, advocate := range candidates {
		if !advocate.IsListable() {
			continue
		}
		matches = append(matches, Match{
			Advocate: advocate,
			Score:    s.score(req, advocate),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.Score.Equal(b.Score) {
			return a.Score.GreaterThan(b.Score)
		}
		if !a.Advocate.AverageRating.Equal(b.Advocate.AverageRating) {
			return a.Advocate.AverageRating.GreaterThan(b.Advocate.AverageRating)
		}
		if a.Advocate.YearsExperience != b.Advocate.YearsExperience {
			return a.Advocate.YearsExperience > b.Advocate.YearsExperience
		}
		return a.Advocate.ID.String() < b.Advocate.ID.String()
	})

	if req.Limit > 0 && len(matches) > req.Limit {
		matches = matches[:req.Limit]
	}

	return matches, nil
}

func (s *MatchingService) score(req MatchRequest, advocate *Advocate) decimal.Decimal {
	score := decimal.Zero

	if advocate.HasSpecialization(req.Specialization) {
		score = score.Add(weightSpecialization)
	}

	score = score.Add(weightLocation.Mul(locationScore(req, advocate)))
	score = score.Add(weightRating.Mul(advocate.AverageRating.Div(decimal.NewFromInt(5))))
	score = score.Add(weightExperience.Mul(experienceScore(advocate.YearsExperience)))

	if advocate.Available {
		score = score.Add(weightAvailability)
	}

	return score
}

// locationScore gives full credit for a city match within the same
// state, half credit for the state alone
func locationScore(req MatchRequest, advocate *Advocate) decimal.Decimal {
	if !strings.EqualFold(req.State, advocate.State) {
		return decimal.Zero
	}
	if strings.EqualFold(req.City, advocate.City) {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(0.5)
}

func experienceScore(years int) decimal.Decimal {
	if years >= experienceCeiling {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(int64(years)).Div(decimal.NewFromInt(experienceCeiling))
}
