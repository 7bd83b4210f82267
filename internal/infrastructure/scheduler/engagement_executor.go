package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AppointmentJobs is the slice of the appointment service the executor
// needs
type AppointmentJobs interface {
	SendReminders(ctx context.Context, from, to time.Time) (int, error)
	SyncPendingCalendarEvents(ctx context.Context, limit int) (int, error)
}

// EngagementExecutor runs reminder and calendar-sync jobs against the
// appointment service
type EngagementExecutor struct {
	appointments AppointmentJobs
	logger       *zap.Logger
}

// NewEngagementExecutor creates a new engagement executor
func NewEngagementExecutor(appointments AppointmentJobs, logger *zap.Logger) *EngagementExecutor {
	return &EngagementExecutor{
		appointments: appointments,
		logger:       logger,
	}
}

// Execute dispatches the job by kind
func (e *EngagementExecutor) Execute(ctx context.Context, job *Job) error {
	switch job.Kind {
	case JobKindReminder:
		sent, err := e.appointments.SendReminders(ctx, job.WindowStart, job.WindowEnd)
		if err != nil {
			return err
		}
		if sent > 0 {
			e.logger.Info("Appointment reminders sent",
				zap.Int("count", sent),
				zap.Time("window_start", job.WindowStart),
				zap.Time("window_end", job.WindowEnd))
		}
		return nil

	case JobKindCalendarSync:
		synced, err := e.appointments.SyncPendingCalendarEvents(ctx, job.BatchSize)
		if err != nil {
			return err
		}
		if synced > 0 {
			e.logger.Info("Pending calendar events synced", zap.Int("count", synced))
		}
		return nil

	default:
		return ErrUnknownJobKind
	}
}

var _ JobExecutor = (*EngagementExecutor)(nil)
