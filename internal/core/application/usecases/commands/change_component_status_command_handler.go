package commands

import (
	"context"
	"errors"
	"log/slog"

	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/notification"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

// ChangeComponentStatusCommandHandler is the write path for status changes.
//
// Sequence:
//   - take the per-component lock, when a locker is configured
//   - load the component, run the lifecycle engine, save with a version check
//   - commit, then enqueue the notification requests in a separate transaction
//
// An outbox failure is logged and never turns an applied change into an error.
//
// Example:
//
//	handler := NewChangeComponentStatusCommandHandler(uowFactory, engine, locker, metrics, logger)
//	change, err := handler.Handle(ctx, cmd)
//	var invalid *component.InvalidTransitionError
//	switch {
//	case errors.As(err, &invalid):
//	    // offer invalid.Allowed
//	case errors.Is(err, component.ErrMissingDocument):
//	    // ask for the transport document
//	case err != nil:
//	    return err
//	}
type ChangeComponentStatusCommandHandler struct {
	uowFactory UoWFactory
	engine     services.LifecycleEngine
	locker     ports.ComponentLocker
	metrics    ports.TransitionMetrics
	logger     *slog.Logger
}

// NewChangeComponentStatusCommandHandler creates the handler. locker and metrics may be nil.
func NewChangeComponentStatusCommandHandler(
	uowFactory UoWFactory,
	engine services.LifecycleEngine,
	locker ports.ComponentLocker,
	metrics ports.TransitionMetrics,
	logger *slog.Logger,
) ChangeComponentStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ChangeComponentStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		locker:     locker,
		metrics:    metrics,
		logger:     logger.With("component", "change_status_handler"),
	}
}

// Handle applies the status change and returns its outcome.
func (h ChangeComponentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeComponentStatusCommand,
) (services.StatusChange, error) {
	if err := cmd.Validate(); err != nil {
		return services.StatusChange{}, err
	}

	if h.locker != nil {
		release, err := h.locker.Lock(ctx, cmd.ComponentID())
		if err != nil {
			if errors.Is(err, ports.ErrComponentIsLocked) {
				h.rejected(ports.RejectionConflict)
			}
			return services.StatusChange{}, err
		}
		defer func() {
			if releaseErr := release(context.WithoutCancel(ctx)); releaseErr != nil {
				h.logger.Warn("failed to release component lock",
					"component_id", cmd.ComponentID().String(),
					"error", releaseErr)
			}
		}()
	}

	change, err := h.apply(ctx, cmd)
	if err != nil {
		h.rejected(rejectionReason(err))
		return services.StatusChange{}, err
	}

	for _, record := range change.Transitions {
		if h.metrics != nil {
			h.metrics.TransitionApplied(record)
		}
		h.logger.Info("status changed",
			"component_id", cmd.ComponentID().String(),
			"from", record.From().Code(),
			"to", record.To().Code(),
			"actor", record.Actor())
	}

	h.enqueue(ctx, change)

	return change, nil
}

func (h ChangeComponentStatusCommandHandler) apply(
	ctx context.Context,
	cmd ChangeComponentStatusCommand,
) (services.StatusChange, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.StatusChange{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ComponentRepository()
	current, err := repo.Get(ctx, cmd.ComponentID())
	if err != nil {
		return services.StatusChange{}, err
	}

	change, err := h.engine.ChangeStatus(current, cmd.Target(), cmd.Actor(), cmd.Note(), cmd.Document())
	if err != nil {
		return services.StatusChange{}, err
	}

	if err = repo.Update(ctx, change.Component); err != nil {
		return services.StatusChange{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.StatusChange{}, err
	}

	return change, nil
}

// enqueue stores the notification requests in the outbox. The status change is
// already committed, so failures are only logged.
func (h ChangeComponentStatusCommandHandler) enqueue(ctx context.Context, change services.StatusChange) {
	if len(change.Notifications) == 0 {
		return
	}

	if err := h.storeEnvelopes(ctx, change); err != nil {
		h.logger.Error("failed to enqueue notifications",
			"component_id", change.Component.ID().String(),
			"count", len(change.Notifications),
			"error", err)
	}
}

func (h ChangeComponentStatusCommandHandler) storeEnvelopes(ctx context.Context, change services.StatusChange) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.NotificationRepository()
	createdAt := change.Transitions[0].At()
	for _, request := range change.Notifications {
		envelope, err := notification.NewEnvelope(kernel.NewUUID(), request, createdAt)
		if err != nil {
			return err
		}
		if err = outbox.Add(ctx, envelope); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h ChangeComponentStatusCommandHandler) rejected(reason string) {
	if h.metrics != nil && reason != "" {
		h.metrics.TransitionRejected(reason)
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, component.ErrInvalidTransition):
		return ports.RejectionInvalidTransition
	case errors.Is(err, component.ErrMissingDocument):
		return ports.RejectionMissingDocument
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return ports.RejectionConflict
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return ports.RejectionInvalidInput
	default:
		return ""
	}
}
