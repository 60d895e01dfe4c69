package http

import (
	"time"

	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/notification"
	"tracker/internal/core/domain/services"

	"github.com/google/uuid"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Allowed []Status `json:"allowed,omitempty"`
}

type Status struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type Document struct {
	Number string `json:"number"`
	// Date is YYYY-MM-DD or RFC 3339.
	Date string `json:"date"`
}

type NewComponent struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	Code       string     `json:"code"`
	WorkOrder  string     `json:"workOrder"`
	Treatments []string   `json:"treatments"`
}

type StatusChangeRequest struct {
	Status   string    `json:"status"`
	Actor    string    `json:"actor"`
	Note     string    `json:"note"`
	Document *Document `json:"document,omitempty"`
}

type TreatmentsRequest struct {
	Treatments []string `json:"treatments"`
}

type Created struct {
	ID uuid.UUID `json:"id"`
}

type Transition struct {
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	At        time.Time `json:"at"`
	Note      string    `json:"note,omitempty"`
	Actor     string    `json:"actor"`
	Automatic bool      `json:"automatic"`
	Document  *Document `json:"document,omitempty"`
}

type Component struct {
	ID              uuid.UUID    `json:"id"`
	Code            string       `json:"code"`
	WorkOrder       string       `json:"workOrder"`
	Status          Status       `json:"status"`
	Treatments      []string     `json:"treatments"`
	AllowedStatuses []Status     `json:"allowedStatuses"`
	History         []Transition `json:"history"`
	Version         int          `json:"version"`
}

type Notification struct {
	Roles    []string `json:"roles"`
	Priority string   `json:"priority"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Link     string   `json:"link,omitempty"`
}

type StatusChangeResponse struct {
	Component        Component      `json:"component"`
	Transitions      []Transition   `json:"transitions"`
	Notifications    []Notification `json:"notifications"`
	AutoTransitioned bool           `json:"autoTransitioned"`
}

type ComponentSummary struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Status     Status    `json:"status"`
	Treatments []string  `json:"treatments"`
}

func parseDocumentDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func statusOf(view queries.StatusView) Status {
	return Status{Code: view.Code, Label: view.Label}
}

func statusesOf(views []queries.StatusView) []Status {
	out := make([]Status, len(views))
	for i, v := range views {
		out[i] = statusOf(v)
	}
	return out
}

func documentOf(doc *component.Document) *Document {
	if doc == nil {
		return nil
	}
	return &Document{Number: doc.Number(), Date: doc.Date().Format(time.DateOnly)}
}

func transitionOf(r component.TransitionRecord) Transition {
	return Transition{
		From:      statusOf(queries.ViewOf(r.From())),
		To:        statusOf(queries.ViewOf(r.To())),
		At:        r.At(),
		Note:      r.Note(),
		Actor:     r.Actor(),
		Automatic: r.IsAutomatic(),
		Document:  documentOf(r.Document()),
	}
}

func transitionsOf(records []component.TransitionRecord) []Transition {
	out := make([]Transition, len(records))
	for i, r := range records {
		out[i] = transitionOf(r)
	}
	return out
}

func componentOf(c *component.Component) Component {
	return Component{
		ID:              c.ID().Bytes(),
		Code:            c.Code(),
		WorkOrder:       c.WorkOrder(),
		Status:          statusOf(queries.ViewOf(c.Status())),
		Treatments:      nonNil(c.Treatments()),
		AllowedStatuses: statusesOf(queries.ViewsOf(c.AllowedStatuses())),
		History:         transitionsOf(c.History()),
		Version:         c.Version(),
	}
}

func componentFromQuery(r *queries.GetComponentQueryResponse) Component {
	history := make([]Transition, len(r.History))
	for i, h := range r.History {
		var doc *Document
		if h.DocumentNumber != nil {
			doc = &Document{Number: *h.DocumentNumber}
			if h.DocumentDate != nil {
				doc.Date = h.DocumentDate.Format(time.DateOnly)
			}
		}
		history[i] = Transition{
			From:      statusOf(h.From),
			To:        statusOf(h.To),
			At:        h.At,
			Note:      h.Note,
			Actor:     h.Actor,
			Automatic: h.Automatic,
			Document:  doc,
		}
	}
	return Component{
		ID:              r.ID.Bytes(),
		Code:            r.Code,
		WorkOrder:       r.WorkOrder,
		Status:          statusOf(r.Status),
		Treatments:      nonNil(r.Treatments),
		AllowedStatuses: statusesOf(r.AllowedStatuses),
		History:         history,
		Version:         r.Version,
	}
}

func notificationsOf(requests []notification.Request) []Notification {
	out := make([]Notification, len(requests))
	for i, r := range requests {
		roles := make([]string, len(r.Roles()))
		for j, role := range r.Roles() {
			roles[j] = string(role)
		}
		out[i] = Notification{
			Roles:    roles,
			Priority: string(r.Priority()),
			Title:    r.Title(),
			Body:     r.Body(),
			Link:     r.Link(),
		}
	}
	return out
}

func statusChangeOf(change services.StatusChange) StatusChangeResponse {
	return StatusChangeResponse{
		Component:        componentOf(change.Component),
		Transitions:      transitionsOf(change.Transitions),
		Notifications:    notificationsOf(change.Notifications),
		AutoTransitioned: change.AutoTransitioned,
	}
}

func summariesOf(items []queries.ComponentSummary) []ComponentSummary {
	out := make([]ComponentSummary, len(items))
	for i, item := range items {
		out[i] = ComponentSummary{
			ID:         item.ID.Bytes(),
			Code:       item.Code,
			Status:     statusOf(item.Status),
			Treatments: nonNil(item.Treatments),
		}
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
