package commands_test

import (
	"context"
	"io"
	"log/slog"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/notification"
	"tracker/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockComponentRepository struct{ mock.Mock }

func (m *MockComponentRepository) Add(ctx context.Context, c *component.Component) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockComponentRepository) Update(ctx context.Context, c *component.Component) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockComponentRepository) Get(ctx context.Context, id kernel.UUID) (*component.Component, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*component.Component), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, e *notification.Envelope) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, e *notification.Envelope) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetPending(ctx context.Context, limit int) ([]*notification.Envelope, error) {
	args := m.Called(ctx, limit)
	if e := args.Get(0); e != nil {
		return e.([]*notification.Envelope), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ComponentRepository() ports.ComponentRepository {
	args := m.Called()
	return args.Get(0).(ports.ComponentRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockComponentUoWFactory struct{ mock.Mock }

func (m *MockComponentUoWFactory) Create() commands.ComponentUoW {
	args := m.Called()
	return args.Get(0).(commands.ComponentUoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	args := m.Called()
	return args.Get(0).(commands.NotificationUoW)
}

type MockLocker struct{ mock.Mock }

func (m *MockLocker) Lock(ctx context.Context, id kernel.UUID) (ports.ReleaseFunc, error) {
	args := m.Called(ctx, id)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return func(ctx context.Context) error {
		return m.MethodCalled("Release", ctx).Error(0)
	}, nil
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) TransitionApplied(record component.TransitionRecord) {
	m.Called(record)
}

func (m *MockMetrics) TransitionRejected(reason string) {
	m.Called(reason)
}

func (m *MockMetrics) NotificationDelivered(ok bool) {
	m.Called(ok)
}

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Send(ctx context.Context, r notification.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
