package directory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListableAdvocate(t *testing.T, city, state string, tags []Specialization, years int, rating float64, available bool) *Advocate {
	t.Helper()
	advocate, err := NewAdvocate(uuid.New(), "REG-"+uuid.NewString()[:8], city, state, tags)
	require.NoError(t, err)
	require.NoError(t, advocate.Verify(""))
	require.NoError(t, advocate.UpdateProfile(city, state, "", tags, []string{"English"}, years, decimal.Zero))
	advocate.SetAvailability(available)
	require.NoError(t, advocate.ApplyRatingSummary(decimal.NewFromFloat(rating), 10))
	return advocate
}

func TestMatchRequestValidate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := MatchRequest{Specialization: SpecializationCivil, City: "Mumbai", State: "Maharashtra", Urgency: UrgencyNormal}
		require.NoError(t, req.Validate())
	})

	t.Run("unknown specialization is a validation error", func(t *testing.T) {
		req := MatchRequest{Specialization: "maritime"}
		require.Error(t, req.Validate())
	})

	t.Run("unknown urgency is rejected", func(t *testing.T) {
		req := MatchRequest{Specialization: SpecializationCivil, Urgency: "whenever"}
		require.Error(t, req.Validate())
	})
}

func TestMatchingServiceRank(t *testing.T) {
	service := NewMatchingService()
	req := MatchRequest{
		Specialization: SpecializationCriminal,
		City:           "Mumbai",
		State:          "Maharashtra",
	}

	t.Run("empty candidate set yields empty ranking", func(t *testing.T) {
		matches, err := service.Rank(req, nil)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("invalid request fails", func(t *testing.T) {
		_, err := service.Rank(MatchRequest{Specialization: "maritime"}, nil)
		require.Error(t, err)
	})

	t.Run("specialist outranks non-specialist", func(t *testing.T) {
		specialist := newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal}, 5, 3.0, true)
		generalist := newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCivil}, 5, 3.0, true)

		matches, err := service.Rank(req, []*Advocate{generalist, specialist})
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, specialist.ID, matches[0].Advocate.ID)
		assert.True(t, matches[0].Score.GreaterThan(matches[1].Score))
	})

	t.Run("same-city candidate outranks same-state candidate", func(t *testing.T) {
		local := newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal}, 5, 3.0, true)
		remote := newListableAdvocate(t, "Pune", "Maharashtra", []Specialization{SpecializationCriminal}, 5, 3.0, true)

		matches, err := service.Rank(req, []*Advocate{remote, local})
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, local.ID, matches[0].Advocate.ID)
	})

	t.Run("unverified and suspended advocates are excluded", func(t *testing.T) {
		pending, err := NewAdvocate(uuid.New(), "REG-PEND", "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal})
		require.NoError(t, err)

		suspended := newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal}, 5, 3.0, true)
		require.NoError(t, suspended.Suspend())

		matches, err := service.Rank(req, []*Advocate{pending, suspended})
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("ties break by rating then experience then ID", func(t *testing.T) {
		// Same specialization, location and availability; rating decides.
		better := newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal}, 5, 4.5, true)
		worse := newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal}, 5, 4.0, true)

		matches, err := service.Rank(req, []*Advocate{worse, better})
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, better.ID, matches[0].Advocate.ID)

		// Same rating too; experience decides.
		senior := newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal}, 25, 4.0, true)
		matches, err = service.Rank(req, []*Advocate{worse, senior})
		require.NoError(t, err)
		assert.Equal(t, senior.ID, matches[0].Advocate.ID)

		// Full tie; lower ID wins so ordering is stable.
		twinA := newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal}, 5, 4.0, true)
		twinB := newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal}, 5, 4.0, true)
		first, second := twinA, twinB
		if twinB.ID.String() < twinA.ID.String() {
			first, second = twinB, twinA
		}
		matches, err = service.Rank(req, []*Advocate{twinA, twinB})
		require.NoError(t, err)
		assert.Equal(t, first.ID, matches[0].Advocate.ID)
		assert.Equal(t, second.ID, matches[1].Advocate.ID)
	})

	t.Run("limit truncates the ranking", func(t *testing.T) {
		candidates := []*Advocate{
			newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal}, 5, 4.0, true),
			newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal}, 5, 3.0, true),
			newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal}, 5, 2.0, true),
		}

		limited := req
		limited.Limit = 2
		matches, err := service.Rank(limited, candidates)
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("unavailable advocate loses the availability weight", func(t *testing.T) {
		available := newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal}, 5, 3.0, true)
		busy := newListableAdvocate(t, "Mumbai", "Maharashtra", []Specialization{SpecializationCriminal}, 5, 3.0, false)

		matches, err := service.Rank(req, []*Advocate{busy, available})
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, available.ID, matches[0].Advocate.ID)
		diff := matches[0].Score.Sub(matches[1].Score)
		assert.True(t, diff.Equal(decimal.NewFromFloat(0.10)))
	})
}
