package commands

import (
	"context"
	"log/slog"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"
)

// DispatchNotificationsCommandHandler drains the notification outbox.
// Each pending entry is sent once per run; failures stay pending with the
// error recorded and are retried on later runs until notification.MaxAttempts
// is reached.
type DispatchNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	dispatcher ports.NotificationDispatcher
	clock      kernel.Clock
	metrics    ports.TransitionMetrics
	logger     *slog.Logger
}

// NewDispatchNotificationsCommandHandler creates the handler. metrics may be nil.
func NewDispatchNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	dispatcher ports.NotificationDispatcher,
	clock kernel.Clock,
	metrics ports.TransitionMetrics,
	logger *slog.Logger,
) DispatchNotificationsCommandHandler {
	if clock == nil {
		clock = kernel.NewSystemClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		clock:      clock,
		metrics:    metrics,
		logger:     logger.With("component", "notification_dispatcher"),
	}
}

// Handle delivers one batch inside a single transaction so the loaded rows stay
// locked against concurrent runs.
func (h DispatchNotificationsCommandHandler) Handle(ctx context.Context, cmd DispatchNotificationsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.NotificationRepository()
	pending, err := outbox.GetPending(ctx, cmd.BatchSize())
	if err != nil {
		return err
	}

	var sent, failed int
	for _, envelope := range pending {
		if sendErr := h.dispatcher.Send(ctx, envelope.Request()); sendErr != nil {
			failed++
			h.logger.Warn("notification delivery failed",
				"notification_id", envelope.ID().String(),
				"attempts", envelope.Attempts()+1,
				"error", sendErr)
			err = envelope.MarkFailed(sendErr)
		} else {
			sent++
			err = envelope.MarkDispatched(h.clock.Now())
		}
		if err != nil {
			return err
		}
		if envelope.IsExhausted() {
			h.logger.Error("notification abandoned",
				"notification_id", envelope.ID().String(),
				"attempts", envelope.Attempts(),
				"error", envelope.LastError())
		}

		if h.metrics != nil {
			h.metrics.NotificationDelivered(envelope.LastError() == "")
		}

		if err = outbox.Update(ctx, envelope); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if len(pending) > 0 {
		h.logger.Info("outbox dispatched", "sent", sent, "failed", failed)
	}
	return nil
}
