package commands_test

import (
	"testing"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAllocateCommand(t *testing.T) {
	override := space(t, "0.5")

	cmd, err := commands.NewAllocateCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 3, &override, now)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, 3, cmd.Quantity())
	require.NotNil(t, cmd.UnitSpace())
	assert.Equal(t, "0.5", cmd.UnitSpace().String())

	_, err = commands.NewAllocateCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 0, nil, now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewAllocateCommand(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 1, nil, now)
	require.Error(t, err)
}

func TestNewAssignDeliveryCommand(t *testing.T) {
	store := kernel.NewUUID()
	actor := newActor(t, kernel.ActorRoleManager, store)
	driver := kernel.NewUUID()

	cmd, err := commands.NewAssignDeliveryCommand(actor, store, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), driver, nil, now, now)
	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{driver}, cmd.CrewIDs())

	same := driver
	_, err = commands.NewAssignDeliveryCommand(actor, store, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), driver, &same, now, now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewAssignDeliveryCommand(actor, store, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), driver, nil, time.Time{}, now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCompleteDeliveryCommand_RejectsNonOutcome(t *testing.T) {
	actor := newActor(t, kernel.ActorRoleManager, kernel.NewUUID())

	_, err := commands.NewCompleteDeliveryCommand(actor, kernel.NewUUID(), now, delivery.InTransit)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewCompleteDeliveryCommand(actor, kernel.NewUUID(), now, delivery.Delayed)
	require.NoError(t, err)
	assert.Equal(t, delivery.Delayed, cmd.Outcome())
}

func TestNewCancelDeliveryCommand_RequiresTimestamp(t *testing.T) {
	actor := newActor(t, kernel.ActorRoleManager, kernel.NewUUID())

	_, err := commands.NewCancelDeliveryCommand(actor, kernel.NewUUID(), time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewCancelDeliveryCommand(actor, kernel.NewUUID(), now)
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
}

func TestNewReleaseRestedCrewCommand_RejectsNonPositiveLimit(t *testing.T) {
	_, err := commands.NewReleaseRestedCrewCommand(now, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestUnconstructedCommands_FailValidation(t *testing.T) {
	require.ErrorIs(t, commands.StartDeliveryCommand{}.Validate(), commands.ErrStartDeliveryCommandIsNotConstructed)
	require.ErrorIs(t, commands.CancelDeliveryCommand{}.Validate(), commands.ErrCancelDeliveryCommandIsNotConstructed)
	require.ErrorIs(t, commands.CompleteDeliveryCommand{}.Validate(), commands.ErrCompleteDeliveryCommandIsNotConstructed)
	require.ErrorIs(t, commands.CancelTrainCommand{}.Validate(), commands.ErrCancelTrainCommandIsNotConstructed)
}
