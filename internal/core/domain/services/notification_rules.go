package services

import (
	"fmt"
	"strings"

	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/notification"
	"tracker/internal/core/domain/model/status"
)

// NotificationRule maps a transition to the notification it triggers.
type NotificationRule struct {
	// Name identifies the rule in logs and metrics.
	Name string

	// Matches reports whether the rule applies to the transition just executed.
	Matches func(c *component.Component, record component.TransitionRecord) bool

	Roles    []notification.Role
	Priority notification.Priority

	// Title and Body render the message for the component.
	Title string
	Body  func(c *component.Component) string
}

// DefaultNotificationRules returns the built-in rule table:
//
//	to == READY_FOR_DELIVERY               -> office, high
//	to == BUILT and treatments non-empty   -> office + treatments, high
//
// Any other transition notifies nobody.
func DefaultNotificationRules() []NotificationRule {
	return []NotificationRule{
		{
			Name: "ready_for_delivery",
			Matches: func(_ *component.Component, record component.TransitionRecord) bool {
				return record.To() == status.ReadyForDelivery
			},
			Roles:    []notification.Role{notification.RoleOffice},
			Priority: notification.PriorityHigh,
			Title:    "Componente pronto per la consegna",
			Body: func(c *component.Component) string {
				return fmt.Sprintf("Il componente %s della commessa %s è pronto per la consegna.", c.Code(), c.WorkOrder())
			},
		},
		{
			Name: "built_with_treatments",
			Matches: func(c *component.Component, record component.TransitionRecord) bool {
				return record.To() == status.Built && len(c.Treatments()) > 0
			},
			Roles:    []notification.Role{notification.RoleOffice, notification.RoleTreatments},
			Priority: notification.PriorityHigh,
			Title:    "Componente costruito, da inviare ai trattamenti",
			Body: func(c *component.Component) string {
				return fmt.Sprintf(
					"Il componente %s della commessa %s è costruito. Trattamenti: %s.",
					c.Code(), c.WorkOrder(), strings.Join(c.Treatments(), ", "),
				)
			},
		},
	}
}

// NotificationRules evaluates a rule table against executed transitions.
//
// Example usage:
//
//	rules := services.NewNotificationRules("https://tracker.example.com", nil)
//	requests, err := rules.For(updated, record)
type NotificationRules struct {
	linkBase string
	rules    []NotificationRule
}

// NewNotificationRules creates a rule evaluator. linkBase prefixes the deep link
// "/components/<id>"; a nil table selects DefaultNotificationRules.
func NewNotificationRules(linkBase string, rules []NotificationRule) NotificationRules {
	if rules == nil {
		rules = DefaultNotificationRules()
	}
	return NotificationRules{
		linkBase: strings.TrimRight(linkBase, "/"),
		rules:    rules,
	}
}

// For returns one request per matching rule, in table order.
//
// Parameters:
//   - c: the component after the transition was applied
//   - record: the transition just executed
//
// Returns:
//   - []notification.Request: zero or more requests, never dispatched here
//   - error: only when a rule renders an invalid request
func (n NotificationRules) For(c *component.Component, record component.TransitionRecord) ([]notification.Request, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var requests []notification.Request
	for _, rule := range n.rules {
		if !rule.Matches(c, record) {
			continue
		}

		var body string
		if rule.Body != nil {
			body = rule.Body(c)
		}

		req, err := notification.NewRequest(c.ID(), rule.Roles, rule.Priority, rule.Title, body, n.Link(c))
		if err != nil {
			return nil, fmt.Errorf("notification rule %s: %w", rule.Name, err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// Link returns the deep link to the component.
func (n NotificationRules) Link(c *component.Component) string {
	return n.linkBase + "/components/" + c.ID().String()
}
