package commands_test

import (
	"context"
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func expectOrderRoundTrip(ctx context.Context, o *order.Order, orderRepo *MockOrderRepository, uow *MockOrderUoW) {
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
}

func TestHoldOrderCommandHandler_Handle_HoldsAndResumes(t *testing.T) {
	ctx := t.Context()
	o := orderWithItem(t, kernel.NewUUID(), nil)
	require.NoError(t, o.SetStage(order.StageProcessing))

	holdCmd, err := commands.NewHoldOrderCommand(o.ID(), "material recall")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	expectOrderRoundTrip(ctx, o, orderRepo, uow)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Publish", ctx, mock.AnythingOfType("ports.Notification")).Return(nil).Once()

	h := commands.NewHoldOrderCommandHandler(factory, notifier)
	require.NoError(t, h.Handle(ctx, holdCmd))
	assert.Equal(t, order.StageOnHold, o.Stage())

	resumeCmd, err := commands.NewResumeOrderCommand(o.ID())
	require.NoError(t, err)

	resumeRepo := new(MockOrderRepository)
	resumeUoW := new(MockOrderUoW)
	expectOrderRoundTrip(ctx, o, resumeRepo, resumeUoW)

	resumeFactory := new(MockOrderUoWFactory)
	resumeFactory.On("Create").Return(resumeUoW).Once()

	resumeNotifier := new(MockNotifier)
	resumeNotifier.On("Publish", ctx, mock.AnythingOfType("ports.Notification")).Return(nil).Once()

	rh := commands.NewResumeOrderCommandHandler(resumeFactory, resumeNotifier)
	require.NoError(t, rh.Handle(ctx, resumeCmd))
	assert.Equal(t, order.StageProcessing, o.Stage())
}

func TestHoldOrderCommand_RequiresReason(t *testing.T) {
	_, err := commands.NewHoldOrderCommand(kernel.NewUUID(), "")
	require.Error(t, err)
}

func TestSetOrderStageCommandHandler_Handle_RejectsHeldOrder(t *testing.T) {
	ctx := t.Context()
	o := orderWithItem(t, kernel.NewUUID(), nil)
	require.NoError(t, o.SetStage(order.StageProcessing))
	require.NoError(t, o.Hold("audit"))

	cmd, err := commands.NewSetOrderStageCommand(o.ID(), order.StageDispatch, "expedite")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)

	h := commands.NewSetOrderStageCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrHoldNotAllowed)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
