package notification

import (
	"errors"
	"slices"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/pkg/errs"
)

// Role is a group of recipients.
type Role string

const (
	RoleOffice     Role = "office"
	RoleTreatments Role = "treatments"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleOffice || r == RoleTreatments
}

// Priority is the delivery urgency of a request.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	return p == PriorityNormal || p == PriorityHigh
}

// Request describes one notification to be delivered to a set of roles.
type Request struct {
	componentID kernel.UUID
	roles       []Role
	priority    Priority
	title       string
	body        string
	link        string
}

// NewRequest validates and builds a Request. Roles must be non-empty and known;
// duplicates are dropped keeping the first occurrence.
func NewRequest(componentID kernel.UUID, roles []Role, priority Priority, title, body, link string) (Request, error) {
	var problems []error

	if err := componentID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if len(roles) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("roles"))
	}
	unique := make([]Role, 0, len(roles))
	for _, role := range roles {
		if !role.IsValid() {
			problems = append(problems, errs.NewValueIsInvalidError("role "+string(role)))
			continue
		}
		if !slices.Contains(unique, role) {
			unique = append(unique, role)
		}
	}
	if !priority.IsValid() {
		problems = append(problems, errs.NewValueIsInvalidError("priority"))
	}
	if strings.TrimSpace(title) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("title"))
	}
	if err := errors.Join(problems...); err != nil {
		return Request{}, err
	}

	return Request{
		componentID: componentID,
		roles:       unique,
		priority:    priority,
		title:       title,
		body:        body,
		link:        link,
	}, nil
}

// ComponentID returns the component the request is about.
func (r Request) ComponentID() kernel.UUID {
	return r.componentID
}

// Roles returns a copy of the recipient roles.
func (r Request) Roles() []Role {
	return slices.Clone(r.roles)
}

// Priority returns the delivery urgency.
func (r Request) Priority() Priority {
	return r.priority
}

// Title returns the short headline.
func (r Request) Title() string {
	return r.title
}

// Body returns the message text.
func (r Request) Body() string {
	return r.body
}

// Link returns the deep link to the component.
func (r Request) Link() string {
	return r.link
}

// IsZero reports whether r was never built.
func (r Request) IsZero() bool {
	return r.title == "" && len(r.roles) == 0
}
