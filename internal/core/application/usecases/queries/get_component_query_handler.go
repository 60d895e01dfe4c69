package queries

import (
	"context"
	"time"

	"tracker/internal/core/domain/model/component"
	"tracker/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetComponentQueryHandler reads component details with plain SQL.
type GetComponentQueryHandler struct {
	db *gorm.DB
}

// NewGetComponentQueryHandler creates a handler for component detail queries.
func NewGetComponentQueryHandler(db *gorm.DB) GetComponentQueryHandler {
	return GetComponentQueryHandler{db: db}
}

// Handle returns the component, its cached allowed statuses in calculator order
// and its history oldest first. Returns errs.ObjectNotFoundError for unknown ids.
func (h GetComponentQueryHandler) Handle(ctx context.Context, query GetComponentQuery) (*GetComponentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	id := query.ComponentID()

	var row struct {
		Code            string
		WorkOrder       string
		Status          string
		Treatments      pq.StringArray
		AllowedStatuses pq.StringArray
		Version         int
	}
	result := db.Raw(`
		SELECT
			code,
			work_order,
			status,
			treatments,
			allowed_statuses,
			version
		FROM components
		WHERE id = ?
	`, id.Bytes()).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("component", id.String())
	}

	response := &GetComponentQueryResponse{
		ID:              id,
		Code:            row.Code,
		WorkOrder:       row.WorkOrder,
		Status:          NewStatusView(row.Status),
		Treatments:      append([]string{}, row.Treatments...),
		AllowedStatuses: make([]StatusView, 0, len(row.AllowedStatuses)),
		Version:         row.Version,
	}
	for _, code := range row.AllowedStatuses {
		response.AllowedStatuses = append(response.AllowedStatuses, NewStatusView(code))
	}

	history, err := h.history(db, id.Bytes())
	if err != nil {
		return nil, err
	}
	response.History = history

	return response, nil
}

func (h GetComponentQueryHandler) history(db *gorm.DB, id any) ([]TransitionView, error) {
	rows, err := db.Raw(`
		SELECT
			from_status,
			to_status,
			occurred_at,
			note,
			actor,
			document_number,
			document_date
		FROM component_transitions
		WHERE component_id = ?
		ORDER BY position
	`, id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]TransitionView, 0)
	for rows.Next() {
		var (
			from, to string
			view     TransitionView
			at       time.Time
		)
		if err = rows.Scan(&from, &to, &at, &view.Note, &view.Actor, &view.DocumentNumber, &view.DocumentDate); err != nil {
			return nil, err
		}
		view.From = NewStatusView(from)
		view.To = NewStatusView(to)
		view.At = at.UTC()
		view.Automatic = view.Actor == component.SystemActor
		history = append(history, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
