package train_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/train"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var departure = time.Date(2025, 5, 5, 8, 0, 0, 0, time.UTC)

func space(t *testing.T, v string) kernel.Space {
	t.Helper()
	s, err := kernel.SpaceFromString(v)
	require.NoError(t, err)
	return s
}

func newTrain(t *testing.T, capacity string) *train.Train {
	t.Helper()
	tr, err := train.NewTrain(kernel.NewUUID(), "T1", space(t, capacity), departure, departure.Add(6*time.Hour))
	require.NoError(t, err)
	return tr
}

func TestNewTrain(t *testing.T) {
	t.Run("scheduled and empty", func(t *testing.T) {
		tr := newTrain(t, "100")
		assert.Equal(t, train.Scheduled, tr.Status())
		assert.True(t, tr.Used().IsZero())
		assert.Equal(t, "100", tr.Remaining().String())
		assert.NoError(t, tr.Validate())
	})

	t.Run("invalid input is aggregated", func(t *testing.T) {
		_, err := train.NewTrain(kernel.NewUUID(), "", kernel.ZeroSpace(), departure, departure)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "capacity_space")
		assert.Contains(t, err.Error(), "arrival_time")
	})
}

func TestTrain_Reserve_CapacityScenario(t *testing.T) {
	tr := newTrain(t, "100")
	unit := space(t, "12")

	for i := 0; i < 8; i++ {
		require.NoError(t, tr.Reserve(unit))
	}
	assert.Equal(t, "96", tr.Used().String())
	assert.Equal(t, 96.0, tr.UtilizationPercent())

	err := tr.Reserve(unit)
	require.ErrorIs(t, err, errs.ErrCapacityExceeded)
	assert.EqualError(t, err, "capacity exceeded: train T1 requested 12, remaining 4")
	assert.Equal(t, "96", tr.Used().String())

	require.NoError(t, tr.Reserve(space(t, "4")))
	assert.Equal(t, 100.0, tr.UtilizationPercent())
}

func TestTrain_Cancel(t *testing.T) {
	tr := newTrain(t, "100")
	require.NoError(t, tr.Reserve(space(t, "10")))

	require.NoError(t, tr.Cancel(departure, 2))
	assert.Equal(t, train.Cancelled, tr.Status())
	assert.True(t, tr.Used().IsZero())

	events := tr.DomainEvents()
	require.Len(t, events, 1)
	cancelled, ok := events[0].(train.TrainCancelled)
	require.True(t, ok)
	assert.Equal(t, 2, cancelled.CancelledAllocations)
	assert.Equal(t, train.EventTypeTrainCancelled, cancelled.EventType())

	assert.ErrorIs(t, tr.Cancel(departure, 0), errs.ErrInvalidStateTransition)
	assert.ErrorIs(t, tr.Reserve(space(t, "1")), errs.ErrInvalidStateTransition)
}

func TestRestoreTrain(t *testing.T) {
	tr, err := train.RestoreTrain(kernel.NewUUID(), "T9", space(t, "50"), departure, departure.Add(time.Hour),
		train.Scheduled, space(t, "49.99995"))
	require.NoError(t, err)

	assert.NoError(t, tr.ValidateReserve(space(t, "0.0001")))
	assert.ErrorIs(t, tr.ValidateReserve(space(t, "0.001")), errs.ErrCapacityExceeded)

	_, err = train.RestoreTrain(kernel.NewUUID(), "T9", space(t, "50"), departure, departure.Add(time.Hour),
		train.Unknown, kernel.ZeroSpace())
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseStatus(t *testing.T) {
	s, err := train.ParseStatus("Cancelled")
	require.NoError(t, err)
	assert.Equal(t, train.Cancelled, s)

	_, err = train.ParseStatus("Unknown")
	assert.Error(t, err)
}
