package postgres

import (
	"context"

	"tracker/internal/adapters/out/postgres/componentrepo"
	"tracker/internal/adapters/out/postgres/notificationrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the tracker, parents first.
func Models() []any {
	return []any{
		&componentrepo.ComponentDTO{},
		&componentrepo.TransitionDTO{},
		&notificationrepo.NotificationDTO{},
	}
}

// Migrate creates or updates the tracker schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}
