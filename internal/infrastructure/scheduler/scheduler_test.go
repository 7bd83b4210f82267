package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeExecutor records executed jobs and can fail a set number of times
type fakeExecutor struct {
	mu        sync.Mutex
	executed  []*Job
	failTimes int
	done      chan struct{}
}

func newFakeExecutor(expected int) *fakeExecutor {
	// Generous buffer so workers never block on the signal channel
	return &fakeExecutor{done: make(chan struct{}, expected+1024)}
}

func (e *fakeExecutor) Execute(ctx context.Context, job *Job) error {
	e.mu.Lock()
	e.executed = append(e.executed, job)
	shouldFail := e.failTimes > 0
	if shouldFail {
		e.failTimes--
	}
	e.mu.Unlock()

	e.done <- struct{}{}
	if shouldFail {
		return errors.New("transient failure")
	}
	return nil
}

func (e *fakeExecutor) executions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.executed)
}

func waitFor(t *testing.T, ch <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for execution %d of %d", i+1, n)
		}
	}
}

func TestScheduler_ExecutesSubmittedJob(t *testing.T) {
	executor := newFakeExecutor(1)
	s := NewScheduler(Config{MaxConcurrentJobs: 1, JobTimeout: time.Second}, executor, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	defer s.Stop(ctx)

	job := NewJob(JobKindCalendarSync, 0)
	job.BatchSize = 10
	require.NoError(t, s.SubmitJob(job))

	waitFor(t, executor.done, 1)
	assert.Equal(t, 1, executor.executions())
}

func TestScheduler_RetriesFailedJob(t *testing.T) {
	executor := newFakeExecutor(2)
	executor.failTimes = 1
	s := NewScheduler(Config{
		MaxConcurrentJobs: 1,
		JobTimeout:        time.Second,
		RetryDelay:        0,
	}, executor, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	defer s.Stop(ctx)

	job := NewJob(JobKindReminder, 2)
	require.NoError(t, s.SubmitJob(job))

	waitFor(t, executor.done, 2)
	assert.GreaterOrEqual(t, executor.executions(), 2)
}

func TestScheduler_SubmitBeforeStart(t *testing.T) {
	s := NewScheduler(DefaultConfig(), newFakeExecutor(0), zap.NewNop())
	err := s.SubmitJob(NewJob(JobKindReminder, 0))
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestJob_RetryBookkeeping(t *testing.T) {
	job := NewJob(JobKindReminder, 2)
	assert.Equal(t, JobStatusPending, job.Status)

	job.Start()
	assert.Equal(t, JobStatusRunning, job.Status)
	require.NotNil(t, job.StartedAt)

	job.Fail("boom")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.True(t, job.ShouldRetry())

	job.ScheduleRetry(time.Minute)
	assert.Equal(t, 1, job.RetryCount)
	assert.Equal(t, JobStatusPending, job.Status)
	require.NotNil(t, job.NextRetryAt)

	job.Fail("boom again")
	job.ScheduleRetry(time.Minute)
	job.Fail("boom final")
	assert.False(t, job.ShouldRetry())
}

// stubJobs implements AppointmentJobs for the executor tests
type stubJobs struct {
	reminderCalls int
	syncCalls     int
	lastFrom      time.Time
	lastTo        time.Time
	lastLimit     int
	err           error
}

func (s *stubJobs) SendReminders(ctx context.Context, from, to time.Time) (int, error) {
	s.reminderCalls++
	s.lastFrom, s.lastTo = from, to
	return 3, s.err
}

func (s *stubJobs) SyncPendingCalendarEvents(ctx context.Context, limit int) (int, error) {
	s.syncCalls++
	s.lastLimit = limit
	return 1, s.err
}

func TestEngagementExecutor_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("reminder job", func(t *testing.T) {
		jobs := &stubJobs{}
		executor := NewEngagementExecutor(jobs, zap.NewNop())

		job := NewJob(JobKindReminder, 0)
		job.WindowStart = time.Now()
		job.WindowEnd = job.WindowStart.Add(24 * time.Hour)

		require.NoError(t, executor.Execute(ctx, job))
		assert.Equal(t, 1, jobs.reminderCalls)
		assert.Equal(t, job.WindowStart, jobs.lastFrom)
		assert.Equal(t, job.WindowEnd, jobs.lastTo)
	})

	t.Run("calendar sync job", func(t *testing.T) {
		jobs := &stubJobs{}
		executor := NewEngagementExecutor(jobs, zap.NewNop())

		job := NewJob(JobKindCalendarSync, 0)
		job.BatchSize = 15

		require.NoError(t, executor.Execute(ctx, job))
		assert.Equal(t, 1, jobs.syncCalls)
		assert.Equal(t, 15, jobs.lastLimit)
	})

	t.Run("unknown kind", func(t *testing.T) {
		executor := NewEngagementExecutor(&stubJobs{}, zap.NewNop())
		err := executor.Execute(ctx, NewJob(JobKind("NOPE"), 0))
		assert.ErrorIs(t, err, ErrUnknownJobKind)
	})

	t.Run("propagates service error", func(t *testing.T) {
		jobs := &stubJobs{err: errors.New("db down")}
		executor := NewEngagementExecutor(jobs, zap.NewNop())
		err := executor.Execute(ctx, NewJob(JobKindCalendarSync, 0))
		assert.Error(t, err)
	})
}

func TestPeriodicTrigger_JobsCarryRetryBudget(t *testing.T) {
	executor := newFakeExecutor(3)
	executor.failTimes = 1
	s := NewScheduler(Config{MaxConcurrentJobs: 1, JobTimeout: time.Second, RetryDelay: 0}, executor, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	defer s.Stop(ctx)

	// RetryAttempts left unset: the default budget must apply, so a
	// transient failure does not silently drop the pass
	trigger := NewPeriodicTrigger(TriggerConfig{
		ScanInterval:   10 * time.Millisecond,
		ReminderWindow: 24 * time.Hour,
		RetryBatchSize: 5,
	}, s, zap.NewNop())

	require.NoError(t, trigger.Start(ctx))
	defer trigger.Stop()

	// First pass fails one job; it must come back for a second attempt
	waitFor(t, executor.done, 3)

	executor.mu.Lock()
	defer executor.mu.Unlock()

	retried := false
	for _, job := range executor.executed {
		assert.Equal(t, DefaultTriggerConfig().RetryAttempts, job.MaxRetries)
		if job.RetryCount > 0 {
			retried = true
		}
	}
	assert.True(t, retried, "failed job was never re-executed")
}

func TestPeriodicTrigger_SubmitsContiguousWindows(t *testing.T) {
	executor := newFakeExecutor(4)
	s := NewScheduler(Config{MaxConcurrentJobs: 1, JobTimeout: time.Second}, executor, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	defer s.Stop(ctx)

	trigger := NewPeriodicTrigger(TriggerConfig{
		ScanInterval:   10 * time.Millisecond,
		ReminderWindow: 24 * time.Hour,
		RetryBatchSize: 5,
	}, s, zap.NewNop())

	require.NoError(t, trigger.Start(ctx))
	defer trigger.Stop()

	// Two passes: each submits a reminder and a calendar-sync job
	waitFor(t, executor.done, 4)

	executor.mu.Lock()
	defer executor.mu.Unlock()

	var reminders []*Job
	for _, job := range executor.executed {
		if job.Kind == JobKindReminder {
			reminders = append(reminders, job)
		} else {
			assert.Equal(t, 5, job.BatchSize)
		}
	}
	require.NotEmpty(t, reminders)
	for i := 1; i < len(reminders); i++ {
		// Windows never overlap
		assert.False(t, reminders[i].WindowStart.Before(reminders[i-1].WindowEnd))
	}
}
