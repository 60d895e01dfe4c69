package notificationrepo

import (
	"context"

	"tracker/internal/core/domain/model/notification"
	"tracker/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM outbox repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add enqueues a new outbox entry.
func (r *GormNotificationRepository) Add(ctx context.Context, envelope *notification.Envelope) error {
	if err := envelope.Validate(); err != nil {
		return err
	}

	dto := fromDomain(envelope)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update stores attempts, last error and delivery time of an entry.
func (r *GormNotificationRepository) Update(ctx context.Context, envelope *notification.Envelope) error {
	if err := envelope.Validate(); err != nil {
		return err
	}

	dto := fromDomain(envelope)
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"attempts":      dto.Attempts,
			"last_error":    dto.LastError,
			"dispatched_at": dto.DispatchedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", envelope.ID().String())
	}

	return nil
}

// GetPending locks and returns up to limit undelivered entries that still have
// attempts left. Entries with fewer attempts come first, then the oldest, so
// failing rows never starve fresh ones. Rows locked by another transaction are
// skipped.
func (r *GormNotificationRepository) GetPending(ctx context.Context, limit int) ([]*notification.Envelope, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, nil)
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("dispatched_at IS NULL AND attempts < ?", notification.MaxAttempts).
		Order("attempts, created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	envelopes := make([]*notification.Envelope, 0, len(dtos))
	for _, dto := range dtos {
		e, dtoErr := toDomain(dto)
		if dtoErr != nil {
			return nil, dtoErr
		}
		envelopes = append(envelopes, e)
	}

	return envelopes, nil
}
