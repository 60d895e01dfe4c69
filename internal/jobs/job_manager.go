package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager owns the background jobs of the serve command.
type JobManager struct {
	notificationDispatchJob *NotificationDispatchJob
}

// NewJobManager wires the outbox dispatcher with its schedule and batch size.
func NewJobManager(
	dispatchHandler DispatchNotificationsHandler,
	dispatchSchedule string,
	dispatchBatchSize int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		notificationDispatchJob: NewNotificationDispatchJob(dispatchHandler, dispatchSchedule, dispatchBatchSize, logger),
	}
}

// StartAll schedules every job; nothing runs if it returns an error.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification dispatch job: %w", err)
	}
	return nil
}

// StopAll stops the schedulers and waits for in-flight runs.
func (jm *JobManager) StopAll() {
	jm.notificationDispatchJob.Stop()
}
