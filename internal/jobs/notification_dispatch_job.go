package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"tracker/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultDispatchSchedule runs the dispatcher every ten seconds.
const DefaultDispatchSchedule = "*/10 * * * * *"

// DispatchNotificationsHandler drains one batch of the notification outbox.
type DispatchNotificationsHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) error
}

// NotificationDispatchJob periodically delivers pending notification requests.
// A run that is still going when the next tick fires makes that tick a no-op.
type NotificationDispatchJob struct {
	handler   DispatchNotificationsHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewNotificationDispatchJob creates the job. The schedule uses the six-field
// cron syntax with seconds; an empty one selects DefaultDispatchSchedule.
func NewNotificationDispatchJob(
	handler DispatchNotificationsHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *NotificationDispatchJob {
	if schedule == "" {
		schedule = DefaultDispatchSchedule
	}
	return &NotificationDispatchJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "notification_dispatch_job"),
	}
}

// Start schedules the job.
func (j *NotificationDispatchJob) Start() error {
	if _, err := commands.NewDispatchNotificationsCommand(j.batchSize); err != nil {
		return err
	}

	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started",
		"schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// RunOnce dispatches a single batch. Failures are logged; the next run retries.
func (j *NotificationDispatchJob) RunOnce(ctx context.Context) {
	cmd, err := commands.NewDispatchNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification dispatch job misconfigured", "error", err)
		return
	}

	if err := j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Notification dispatch job failed", "error", err)
	}
}

// Stop stops the scheduler and waits for a running dispatch to finish.
func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}
