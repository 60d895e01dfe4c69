package commands_test

import (
	"errors"
	"testing"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/domain/model/component"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateComponentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewCreateComponentCommand(id, "TAV-1", "WO-1", []string{"zinc"})

	repo := new(MockComponentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ComponentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.MatchedBy(func(c *component.Component) bool {
			return c.ID().IsEqual(id) && c.Status() == status.New && len(c.AllowedStatuses()) == 9
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockComponentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateComponentCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateComponentCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockComponentUoWFactory)
	h := commands.NewCreateComponentCommandHandler(factory)

	err := h.Handle(t.Context(), commands.CreateComponentCommand{})

	require.ErrorIs(t, err, commands.ErrCreateComponentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateComponentCommandHandler_Handle_InvalidTreatment(t *testing.T) {
	cmd, err := commands.NewCreateComponentCommand(kernel.NewUUID(), "TAV-1", "WO-1", []string{"zinc:hot"})
	require.NoError(t, err)
	factory := new(MockComponentUoWFactory)
	h := commands.NewCreateComponentCommandHandler(factory)

	err = h.Handle(t.Context(), cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateComponentCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateComponentCommand(kernel.NewUUID(), "TAV-1", "WO-1", nil)

	repo := new(MockComponentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ComponentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*component.Component")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockComponentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateComponentCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, "add error", err.Error())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateComponentCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateComponentCommand(kernel.NewUUID(), "TAV-1", "WO-1", nil)

	uow := new(MockUoW)
	factory := new(MockComponentUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateComponentCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "ComponentRepository")
}
