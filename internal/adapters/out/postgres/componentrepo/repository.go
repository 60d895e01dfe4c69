package componentrepo

import (
	"context"
	"errors"
	"time"

	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the postgres SQLSTATE for duplicate keys.
const uniqueViolation = "23505"

// GormComponentRepository implements ports.ComponentRepository using GORM.
type GormComponentRepository struct {
	db *gorm.DB
}

// NewGormComponentRepository creates a new GORM component repository.
func NewGormComponentRepository(db *gorm.DB) *GormComponentRepository {
	return &GormComponentRepository{db: db}
}

// Add saves a new component together with its history.
func (r *GormComponentRepository) Add(ctx context.Context, aggregate *component.Component) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return mapWriteError(err)
	}

	return nil
}

// Update writes the component row guarded by its version and appends the
// history records not stored yet.
func (r *GormComponentRepository) Update(ctx context.Context, aggregate *component.Component) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&ComponentDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":           dto.Status,
			"treatments":       dto.Treatments,
			"allowed_statuses": dto.AllowedStatuses,
			"version":          dto.Version + 1,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return mapWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	var stored int64
	if err := db.Model(&TransitionDTO{}).Where("component_id = ?", dto.ID).Count(&stored).Error; err != nil {
		return err
	}

	history := aggregate.History()
	if int(stored) > len(history) {
		return errs.NewValueIsInvalidErrorWithCause("history",
			errors.New("stored history is longer than the aggregate's"))
	}
	if int(stored) == len(history) {
		return nil
	}

	appended := transitionsFromDomain(dto.ID, history[stored:], int(stored))
	if err := db.Create(&appended).Error; err != nil {
		return mapWriteError(err)
	}

	return nil
}

// Get retrieves a component by ID with its history ordered by position.
func (r *GormComponentRepository) Get(ctx context.Context, id kernel.UUID) (*component.Component, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ComponentDTO
	err := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("component", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormComponentRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ComponentDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("component", id.String())
	}
	return errs.NewVersionIsInvalidError("component " + id.String())
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errs.NewValueIsInvalidErrorWithCause("code", errors.New("already used in this work order"))
	}
	return err
}
