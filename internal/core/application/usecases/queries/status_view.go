// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read straight from the database and return flat read models.
package queries

import (
	"tracker/internal/core/domain/model/status"
)

// StatusView is the presentation form of a status.
type StatusView struct {
	Code  string
	Label string
	Rank  int
}

// NewStatusView decodes a stored status code. An empty code gives the zero view.
func NewStatusView(code string) StatusView {
	if code == "" {
		return StatusView{}
	}
	return ViewOf(status.Parse(code))
}

// ViewOf builds the view of a decoded status.
func ViewOf(s status.Status) StatusView {
	return StatusView{
		Code:  s.Code(),
		Label: s.Label(),
		Rank:  s.Rank(),
	}
}

// ViewsOf maps statuses to views, keeping their order.
func ViewsOf(statuses []status.Status) []StatusView {
	views := make([]StatusView, len(statuses))
	for i, s := range statuses {
		views[i] = ViewOf(s)
	}
	return views
}
