package assistant

import (
	"context"

	"github.com/legallink/backend/internal/domain/directory"
)

// RepositoryMatcher loads candidates from the advocate repository and
// ranks them with the domain matching service
type RepositoryMatcher struct {
	advocates directory.AdvocateRepository
	ranker    *directory.MatchingService
}

// NewRepositoryMatcher creates a new repository-backed matcher
func NewRepositoryMatcher(advocates directory.AdvocateRepository) *RepositoryMatcher {
	return &RepositoryMatcher{
		advocates: advocates,
		ranker:    directory.NewMatchingService(),
	}
}

// Match returns ranked matches for the request
func (m *RepositoryMatcher) Match(ctx context.Context, req directory.MatchRequest) ([]directory.Match, error) {
	candidates, err := m.advocates.FindCandidates(ctx, req)
	if err != nil {
		return nil, err
	}
	return m.ranker.Rank(req, candidates)
}

var _ AdvocateMatcher = (*RepositoryMatcher)(nil)
