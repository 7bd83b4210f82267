package moderation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenReport(t *testing.T) *Report {
	t.Helper()
	report, err := NewReport(uuid.New(), uuid.New(), ReasonMisconduct, "Failed to appear at hearing")
	require.NoError(t, err)
	report.ClearDomainEvents()
	return report
}

func TestNewReport(t *testing.T) {
	t.Run("creates open report", func(t *testing.T) {
		report, err := NewReport(uuid.New(), uuid.New(), ReasonFraud, "Charged twice for the same filing")
		require.NoError(t, err)

		assert.Equal(t, ReportStatusOpen, report.Status)
		assert.False(t, report.IsClosed())

		events := report.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeReportFiled, events[0].EventType())
	})

	t.Run("rejects unknown reason", func(t *testing.T) {
		_, err := NewReport(uuid.New(), uuid.New(), "rudeness", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown report reason")
	})

	t.Run("other reason requires details", func(t *testing.T) {
		_, err := NewReport(uuid.New(), uuid.New(), ReasonOther, "  ")
		require.Error(t, err)
	})

	t.Run("named reasons allow empty details", func(t *testing.T) {
		_, err := NewReport(uuid.New(), uuid.New(), ReasonHarassment, "")
		require.NoError(t, err)
	})
}

func TestReportLifecycle(t *testing.T) {
	reviewerID := uuid.New()

	t.Run("open to under_review to resolved", func(t *testing.T) {
		report := newOpenReport(t)

		require.NoError(t, report.StartReview(reviewerID))
		assert.Equal(t, ReportStatusUnderReview, report.Status)

		require.NoError(t, report.Resolve(reviewerID, "advocate suspended pending bar council inquiry"))
		assert.Equal(t, ReportStatusResolved, report.Status)
		assert.True(t, report.IsClosed())
		require.NotNil(t, report.ReviewedAt)

		events := report.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeReportClosed, events[0].EventType())
	})

	t.Run("dismiss works from under_review", func(t *testing.T) {
		report := newOpenReport(t)
		require.NoError(t, report.StartReview(reviewerID))
		require.NoError(t, report.Dismiss(reviewerID, "no supporting evidence"))
		assert.Equal(t, ReportStatusDismissed, report.Status)
	})

	t.Run("cannot resolve an open report directly", func(t *testing.T) {
		report := newOpenReport(t)
		require.Error(t, report.Resolve(reviewerID, "skipping review"))
	})

	t.Run("cannot review twice", func(t *testing.T) {
		report := newOpenReport(t)
		require.NoError(t, report.StartReview(reviewerID))
		require.Error(t, report.StartReview(reviewerID))
	})

	t.Run("closed reports do not reopen", func(t *testing.T) {
		report := newOpenReport(t)
		require.NoError(t, report.StartReview(reviewerID))
		require.NoError(t, report.Resolve(reviewerID, "done"))
		require.Error(t, report.StartReview(reviewerID))
		require.Error(t, report.Dismiss(reviewerID, "again"))
	})

	t.Run("resolution note is required", func(t *testing.T) {
		report := newOpenReport(t)
		require.NoError(t, report.StartReview(reviewerID))
		require.Error(t, report.Resolve(reviewerID, "  "))
	})
}
