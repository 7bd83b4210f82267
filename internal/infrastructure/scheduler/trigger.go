package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TriggerConfig holds configuration for the periodic trigger
type TriggerConfig struct {
	ScanInterval   time.Duration // How often the passes run
	ReminderWindow time.Duration // Look-ahead for appointment reminders
	RetryBatchSize int           // Calendar sync retries per pass
	RetryAttempts  int           // Max retries per submitted job
}

// DefaultTriggerConfig returns default trigger configuration
func DefaultTriggerConfig() TriggerConfig {
	return TriggerConfig{
		ScanInterval:   time.Minute,
		ReminderWindow: 24 * time.Hour,
		RetryBatchSize: 20,
		RetryAttempts:  3,
	}
}

// PeriodicTrigger submits a reminder pass and a calendar-sync pass on
// every scan tick. Reminder windows are contiguous across ticks so an
// appointment is reminded exactly once.
type PeriodicTrigger struct {
	config    TriggerConfig
	scheduler *Scheduler
	logger    *zap.Logger

	cancel        context.CancelFunc
	wg            sync.WaitGroup
	mu            sync.Mutex
	isRunning     bool
	lastWindowEnd time.Time
}

// NewPeriodicTrigger creates a new periodic trigger
func NewPeriodicTrigger(config TriggerConfig, scheduler *Scheduler, logger *zap.Logger) *PeriodicTrigger {
	if config.ScanInterval <= 0 {
		config.ScanInterval = DefaultTriggerConfig().ScanInterval
	}
	if config.ReminderWindow <= 0 {
		config.ReminderWindow = DefaultTriggerConfig().ReminderWindow
	}
	if config.RetryBatchSize <= 0 {
		config.RetryBatchSize = DefaultTriggerConfig().RetryBatchSize
	}
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = DefaultTriggerConfig().RetryAttempts
	}
	return &PeriodicTrigger{
		config:    config,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start begins the scan loop
func (t *PeriodicTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	// The first window starts at the look-ahead horizon so restarts
	// don't re-remind appointments already covered before shutdown.
	t.lastWindowEnd = time.Now().Add(t.config.ReminderWindow)
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.loop(ctx)

	t.logger.Info("Scheduler trigger started",
		zap.Duration("scan_interval", t.config.ScanInterval),
		zap.Duration("reminder_window", t.config.ReminderWindow),
	)
	return nil
}

// Stop stops the scan loop
func (t *PeriodicTrigger) Stop() {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	t.wg.Wait()
	t.logger.Info("Scheduler trigger stopped")
}

func (t *PeriodicTrigger) loop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.runPass()
		}
	}
}

// runPass submits one reminder job and one calendar-sync job
func (t *PeriodicTrigger) runPass() {
	t.mu.Lock()
	windowStart := t.lastWindowEnd
	windowEnd := time.Now().Add(t.config.ReminderWindow)
	if windowEnd.After(windowStart) {
		t.lastWindowEnd = windowEnd
	}
	t.mu.Unlock()

	if windowEnd.After(windowStart) {
		reminder := NewJob(JobKindReminder, t.config.RetryAttempts)
		reminder.WindowStart = windowStart
		reminder.WindowEnd = windowEnd
		if err := t.scheduler.SubmitJob(reminder); err != nil {
			t.logger.Warn("Failed to submit reminder job", zap.Error(err))
			// Roll the window back so the next pass covers it
			t.mu.Lock()
			if t.lastWindowEnd.Equal(windowEnd) {
				t.lastWindowEnd = windowStart
			}
			t.mu.Unlock()
		}
	}

	sync := NewJob(JobKindCalendarSync, t.config.RetryAttempts)
	sync.BatchSize = t.config.RetryBatchSize
	if err := t.scheduler.SubmitJob(sync); err != nil {
		t.logger.Warn("Failed to submit calendar sync job", zap.Error(err))
	}
}
