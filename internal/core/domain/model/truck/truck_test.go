package truck_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/truck"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruck_ReserveRelease(t *testing.T) {
	store := kernel.NewUUID()
	tr, err := truck.NewTruck(kernel.NewUUID(), store, "TR-1")
	require.NoError(t, err)
	require.True(t, tr.IsAvailable())
	assert.True(t, tr.BelongsTo(store))

	require.NoError(t, tr.Reserve())
	assert.False(t, tr.IsAvailable())

	err = tr.Reserve()
	require.ErrorIs(t, err, errs.ErrAlreadyAssigned)
	assert.EqualError(t, err, "already assigned: truck TR-1")

	tr.Release()
	assert.True(t, tr.IsAvailable())
}

func TestRestoreTruck_Validation(t *testing.T) {
	_, err := truck.RestoreTruck(kernel.NewUUID(), kernel.UUID{}, "  ", false)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
