package commands_test

import (
	"errors"
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReleaseRestedCrewCommandHandler_Handle_ReleasesOnlyRested(t *testing.T) {
	ctx := t.Context()
	store := kernel.NewUUID()

	rested, err := employee.RestoreEmployee(employee.State{
		ID: kernel.NewUUID(), Name: "Rested", Role: employee.Driver, StoreID: store,
		Status: employee.OnLeave, NextAvailableTime: now.Add(-time.Minute),
	})
	require.NoError(t, err)
	tired, err := employee.RestoreEmployee(employee.State{
		ID: kernel.NewUUID(), Name: "Tired", Role: employee.Driver, StoreID: store,
		Status: employee.OnLeave, NextAvailableTime: now.Add(time.Hour),
	})
	require.NoError(t, err)

	cmd, err := commands.NewReleaseRestedCrewCommand(now, 50)
	require.NoError(t, err)

	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.employees.On("ListRestedForUpdate", ctx, now, 50).
			Return([]*employee.Employee{rested, tired}, nil).Once(),
		uow.employees.On("Update", ctx, rested).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCrewUoWFactory)
	factory.On("Create").Return(uow).Once()

	released, err := commands.NewReleaseRestedCrewCommandHandler(factory).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, released)
	assert.Equal(t, employee.Available, rested.Status())
	assert.Equal(t, employee.OnLeave, tired.Status())
	uow.AssertAllExpectations(t)
}

func TestReleaseRestedCrewCommandHandler_Handle_NoneRested_DoesNotCommit(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewReleaseRestedCrewCommand(now, 10)
	require.NoError(t, err)

	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.employees.On("ListRestedForUpdate", ctx, now, 10).Return([]*employee.Employee{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCrewUoWFactory)
	factory.On("Create").Return(uow).Once()

	released, err := commands.NewReleaseRestedCrewCommandHandler(factory).Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, released)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestResetWeeklyHoursCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.employees.On("ResetWeeklyHours", ctx).Return(int64(7), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCrewUoWFactory)
	factory.On("Create").Return(uow).Once()

	affected, err := commands.NewResetWeeklyHoursCommandHandler(factory).Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), affected)
	uow.AssertAllExpectations(t)
}

func TestResetWeeklyHoursCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()

	uow := newMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.employees.On("ResetWeeklyHours", ctx).Return(int64(3), nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCrewUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := commands.NewResetWeeklyHoursCommandHandler(factory).Handle(ctx)
	require.EqualError(t, err, "commit error")
}
