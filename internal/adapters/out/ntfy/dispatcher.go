// Package ntfy delivers notification requests through an ntfy server. Every
// role is a topic named <prefix>-<role>; a request addressed to two roles is
// published twice.
package ntfy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tracker/internal/core/domain/model/notification"
	"tracker/internal/core/ports"
)

const (
	userAgent      = "tracker/1.0"
	defaultTimeout = 10 * time.Second
	defaultPrefix  = "tracker"
)

// Config locates the ntfy server.
type Config struct {
	// BaseURL is the server root, e.g. https://ntfy.sh. Empty disables delivery.
	BaseURL string

	// TopicPrefix is prepended to role names.
	TopicPrefix string

	// Token is an optional access token sent as a bearer credential.
	Token string

	Timeout time.Duration
}

// NewDispatcher builds an ntfy dispatcher, or a no-op one when no server is configured.
func NewDispatcher(cfg Config) ports.NotificationDispatcher {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return noopDispatcher{}
	}

	prefix := strings.TrimSpace(cfg.TopicPrefix)
	if prefix == "" {
		prefix = defaultPrefix
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Dispatcher{
		baseURL: base,
		prefix:  prefix,
		token:   strings.TrimSpace(cfg.Token),
		client:  &http.Client{Timeout: timeout},
	}
}

// Dispatcher publishes requests to ntfy topics.
type Dispatcher struct {
	baseURL string
	prefix  string
	token   string
	client  *http.Client
}

// Send publishes the request to the topic of every role. All roles are tried;
// the returned error joins the failures.
func (d *Dispatcher) Send(ctx context.Context, request notification.Request) error {
	var failures []error
	for _, role := range request.Roles() {
		if err := d.publish(ctx, d.topic(role), request, role); err != nil {
			failures = append(failures, fmt.Errorf("role %s: %w", role, err))
		}
	}
	return errors.Join(failures...)
}

func (d *Dispatcher) topic(role notification.Role) string {
	return d.baseURL + "/" + d.prefix + "-" + string(role)
}

func (d *Dispatcher) publish(ctx context.Context, endpoint string, request notification.Request, role notification.Role) error {
	message := request.Body()
	if message == "" {
		message = request.Title()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Title", request.Title())
	req.Header.Set("Tags", strings.Join([]string{defaultPrefix, string(role)}, ","))
	if request.Priority() == notification.PriorityHigh {
		req.Header.Set("Priority", "high")
	}
	if link := request.Link(); link != "" {
		req.Header.Set("Click", link)
	}
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopDispatcher struct{}

func (noopDispatcher) Send(context.Context, notification.Request) error { return nil }
