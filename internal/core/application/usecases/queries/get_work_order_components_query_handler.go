package queries

import (
	"cmp"
	"context"
	"slices"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/status"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetWorkOrderComponentsQueryHandler reads the components of a work order.
type GetWorkOrderComponentsQueryHandler struct {
	db *gorm.DB
}

// NewGetWorkOrderComponentsQueryHandler creates a handler for work order listings.
func NewGetWorkOrderComponentsQueryHandler(db *gorm.DB) GetWorkOrderComponentsQueryHandler {
	return GetWorkOrderComponentsQueryHandler{db: db}
}

// Handle returns the components sorted by status rank, then by code. The rank
// order is computed in Go because treatment ranks are not stored.
func (h GetWorkOrderComponentsQueryHandler) Handle(
	ctx context.Context,
	query GetWorkOrderComponentsQuery,
) ([]ComponentSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			status,
			treatments
		FROM components
		WHERE work_order = ?
	`, query.WorkOrder()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type entry struct {
		summary ComponentSummary
		status  status.Status
	}

	entries := make([]entry, 0)
	for rows.Next() {
		var (
			id         uuid.UUID
			code       string
			raw        string
			treatments pq.StringArray
		)
		if err = rows.Scan(&id, &code, &raw, &treatments); err != nil {
			return nil, err
		}

		componentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		s := status.Parse(raw)
		entries = append(entries, entry{
			summary: ComponentSummary{
				ID:         componentID,
				Code:       code,
				Status:     ViewOf(s),
				Treatments: append([]string{}, treatments...),
			},
			status: s,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		if c := status.Compare(a.status, b.status); c != 0 {
			return c
		}
		return cmp.Compare(a.summary.Code, b.summary.Code)
	})

	result := make([]ComponentSummary, len(entries))
	for i, e := range entries {
		result[i] = e.summary
	}
	return result, nil
}
