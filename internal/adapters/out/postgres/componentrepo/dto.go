// Package componentrepo persists component aggregates. A component is stored as
// one row in "components" plus its append-only history in "component_transitions".
// Statuses are stored as their serialized codes.
package componentrepo

import (
	"time"

	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/status"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ComponentDTO represents the database structure for persisting component aggregates.
type ComponentDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WorkOrder       string          `gorm:"type:varchar(255);not null;uniqueIndex:ux_components_work_order_code,priority:1"`
	Code            string          `gorm:"type:varchar(255);not null;uniqueIndex:ux_components_work_order_code,priority:2"`
	Status          string          `gorm:"type:varchar(255);not null;index"`
	Treatments      pq.StringArray  `gorm:"type:text[];not null"`
	AllowedStatuses pq.StringArray  `gorm:"type:text[];not null"`
	Version         int             `gorm:"type:int;not null"`
	History         []TransitionDTO `gorm:"foreignKey:ComponentID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for component entities.
func (ComponentDTO) TableName() string {
	return "components"
}

// TransitionDTO is one history row. Position is the zero-based index in the history.
type TransitionDTO struct {
	ComponentID    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Position       int        `gorm:"type:int;primaryKey;autoIncrement:false"`
	FromStatus     string     `gorm:"type:varchar(255);not null"`
	ToStatus       string     `gorm:"type:varchar(255);not null"`
	OccurredAt     time.Time  `gorm:"type:timestamptz;not null"`
	Note           string     `gorm:"type:text;not null"`
	Actor          string     `gorm:"type:varchar(255);not null"`
	DocumentNumber *string    `gorm:"type:varchar(255)"`
	DocumentDate   *time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the database table name for history rows.
func (TransitionDTO) TableName() string {
	return "component_transitions"
}

func fromDomain(c *component.Component) ComponentDTO {
	id := c.ID().Bytes()
	history := c.History()

	return ComponentDTO{
		ID:              id,
		WorkOrder:       c.WorkOrder(),
		Code:            c.Code(),
		Status:          c.Status().Code(),
		Treatments:      stringArray(c.Treatments()),
		AllowedStatuses: stringArray(status.Codes(c.AllowedStatuses())),
		Version:         c.Version(),
		History:         transitionsFromDomain(id, history, 0),
	}
}

// stringArray never returns nil: a nil pq.StringArray is written as NULL.
func stringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}

// transitionsFromDomain maps records starting at history position offset.
func transitionsFromDomain(componentID uuid.UUID, records []component.TransitionRecord, offset int) []TransitionDTO {
	dtos := make([]TransitionDTO, 0, len(records))
	for i, r := range records {
		dto := TransitionDTO{
			ComponentID: componentID,
			Position:    offset + i,
			FromStatus:  r.From().Code(),
			ToStatus:    r.To().Code(),
			OccurredAt:  r.At(),
			Note:        r.Note(),
			Actor:       r.Actor(),
		}
		if doc := r.Document(); doc != nil {
			number := doc.Number()
			date := doc.Date()
			dto.DocumentNumber = &number
			dto.DocumentDate = &date
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

func toDomain(dto ComponentDTO) (*component.Component, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	history := make([]component.TransitionRecord, 0, len(dto.History))
	for _, t := range dto.History {
		record, recordErr := transitionToDomain(t)
		if recordErr != nil {
			return nil, recordErr
		}
		history = append(history, record)
	}

	return component.RestoreComponent(
		id,
		dto.Code,
		dto.WorkOrder,
		status.Parse(dto.Status),
		[]string(dto.Treatments),
		history,
		dto.Version,
	)
}

func transitionToDomain(dto TransitionDTO) (component.TransitionRecord, error) {
	var doc *component.Document
	if dto.DocumentNumber != nil && dto.DocumentDate != nil {
		d, err := component.NewDocument(*dto.DocumentNumber, *dto.DocumentDate)
		if err != nil {
			return component.TransitionRecord{}, err
		}
		doc = &d
	}

	var from status.Status
	if dto.FromStatus != "" {
		from = status.Parse(dto.FromStatus)
	}

	return component.RestoreTransitionRecord(from, status.Parse(dto.ToStatus), dto.OccurredAt, dto.Note, dto.Actor, doc)
}
