// Package notificationrepo stores the notification outbox.
package notificationrepo

import (
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// NotificationDTO is one outbox row.
type NotificationDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ComponentID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Roles        pq.StringArray `gorm:"type:text[];not null"`
	Priority     string         `gorm:"type:varchar(16);not null"`
	Title        string         `gorm:"type:varchar(255);not null"`
	Body         string         `gorm:"type:text;not null"`
	Link         string         `gorm:"type:text;not null"`
	CreatedAt    time.Time      `gorm:"type:timestamptz;not null;index"`
	Attempts     int            `gorm:"type:int;not null"`
	LastError    string         `gorm:"type:text;not null"`
	DispatchedAt *time.Time     `gorm:"type:timestamptz;index"`
}

// TableName specifies the database table name for outbox entries.
func (NotificationDTO) TableName() string {
	return "notification_outbox"
}

func fromDomain(e *notification.Envelope) NotificationDTO {
	req := e.Request()

	roles := make(pq.StringArray, 0, len(req.Roles()))
	for _, role := range req.Roles() {
		roles = append(roles, string(role))
	}

	return NotificationDTO{
		ID:           e.ID().Bytes(),
		ComponentID:  req.ComponentID().Bytes(),
		Roles:        roles,
		Priority:     string(req.Priority()),
		Title:        req.Title(),
		Body:         req.Body(),
		Link:         req.Link(),
		CreatedAt:    e.CreatedAt(),
		Attempts:     e.Attempts(),
		LastError:    e.LastError(),
		DispatchedAt: e.DispatchedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Envelope, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	componentID, err := kernel.UUIDFromBytes(dto.ComponentID[:])
	if err != nil {
		return nil, err
	}

	roles := make([]notification.Role, 0, len(dto.Roles))
	for _, role := range dto.Roles {
		roles = append(roles, notification.Role(role))
	}

	req, err := notification.NewRequest(componentID, roles, notification.Priority(dto.Priority), dto.Title, dto.Body, dto.Link)
	if err != nil {
		return nil, err
	}

	return notification.RestoreEnvelope(id, req, dto.CreatedAt, dto.Attempts, dto.LastError, dto.DispatchedAt)
}
