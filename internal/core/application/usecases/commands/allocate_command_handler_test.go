package commands_test

import (
	"errors"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAllocateCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	store := kernel.NewUUID()
	tr := newTrain(t, "10")
	p := newProduct(t, "1")
	o := newOrder(t, store, p, 8)

	cmd, err := commands.NewAllocateCommand(tr.ID(), o.ID(), p.ID(), store, 8, nil, now)
	require.NoError(t, err)

	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.trains.On("GetForUpdate", ctx, tr.ID()).Return(tr, nil).Once(),
		uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.products.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		uow.orders.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAllocateCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.True(t, result.Finalized)
	assert.Equal(t, order.Allocated, result.OrderStatus)
	assert.Equal(t, "8", result.TrainUsed.String())
	assert.Equal(t, "2", result.TrainRemaining.String())
	assert.InDelta(t, 80.0, result.UtilizationPercent, 0.001)
	uow.AssertAllExpectations(t)
	factory.AssertExpectations(t)
}

func TestAllocateCommandHandler_Handle_CapacityExceeded_DoesNotCommit(t *testing.T) {
	ctx := t.Context()
	store := kernel.NewUUID()
	tr := newTrain(t, "4")
	p := newProduct(t, "1")
	o := newOrder(t, store, p, 8)

	cmd, err := commands.NewAllocateCommand(tr.ID(), o.ID(), p.ID(), store, 8, nil, now)
	require.NoError(t, err)

	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.trains.On("GetForUpdate", ctx, tr.ID()).Return(tr, nil).Once(),
		uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.products.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAllocateCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrCapacityExceeded)

	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.True(t, tr.Used().IsZero())
	assert.Empty(t, o.Allocations())
	uow.AssertAllExpectations(t)
}

func TestAllocateCommandHandler_Handle_TrainNotFound(t *testing.T) {
	ctx := t.Context()
	trainID := kernel.NewUUID()
	cmd, err := commands.NewAllocateCommand(trainID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 1, nil, now)
	require.NoError(t, err)

	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.trains.On("GetForUpdate", ctx, trainID).
			Return(nil, errs.NewObjectNotFoundError("train", trainID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAllocateCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertAllExpectations(t)
}

func TestAllocateCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockAllocationUoWFactory)
	h := commands.NewAllocateCommandHandler(factory)

	_, err := h.Handle(t.Context(), commands.AllocateCommand{})
	require.ErrorIs(t, err, commands.ErrAllocateCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAllocateCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAllocateCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 1, nil, now)
	require.NoError(t, err)

	uow := newMockUoW()
	factory := new(MockAllocationUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewAllocateCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.EqualError(t, err, "begin error")
	uow.AssertAllExpectations(t)
}
