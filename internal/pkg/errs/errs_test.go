package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("train", "T-100")

		assert.Equal(t, "train", err.ParamName)
		assert.Equal(t, "T-100", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: T-100", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "42", cause)

		assert.Equal(t,
			"object not found: param is: orderId, ID is: 42 (cause: connection reset)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestInputErrors(t *testing.T) {
	t.Run("value is invalid", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("qty", errors.New("must be positive"))
		assert.Equal(t, "value is invalid: qty (cause: must be positive)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("value is required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("store_id")
		assert.Equal(t, "value is required: store_id", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("value is out of range", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("plate", "AB\nC", 1, 10)
		assert.Equal(t, "value is invalid: AB C is plate, min value is 1, max value is 10", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("version is invalid", func(t *testing.T) {
		err := errs.NewVersionIsInvalidError("version", errors.New("stale"))
		assert.Equal(t, "version is invalid: version (cause: stale)", err.Error())
		assert.Equal(t, "version is invalid: version", errs.NewVersionIsInvalidErrorWithCause("version").Error())
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestConflictErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "capacity exceeded",
			err:      errs.NewCapacityExceededError("train", "T1", "108", "4"),
			sentinel: errs.ErrCapacityExceeded,
			message:  "capacity exceeded: train T1 requested 108, remaining 4",
		},
		{
			name:     "over allocation",
			err:      errs.NewOverAllocationError("line", "P1", 1, 0),
			sentinel: errs.ErrOverAllocation,
			message:  "over allocation: line P1 requested 1, remaining 0",
		},
		{
			name:     "already assigned",
			err:      errs.NewAlreadyAssignedError("truck", "TR-1"),
			sentinel: errs.ErrAlreadyAssigned,
			message:  "already assigned: truck TR-1",
		},
		{
			name:     "not eligible",
			err:      errs.NewNotEligibleError("employee", "E1", "on leave"),
			sentinel: errs.ErrNotEligible,
			message:  "not eligible: employee E1 (reason: on leave)",
		},
		{
			name:     "route window",
			err:      errs.NewRouteCapacityWindowExceededError("employee", "E1", 41.5, 40),
			sentinel: errs.ErrRouteCapacityWindowExceeded,
			message:  "route capacity window exceeded: employee E1 projected 41.50h, ceiling 40.00h",
		},
		{
			name:     "invalid transition",
			err:      errs.NewInvalidStateTransitionError("delivery", "Delivered", "Delivered"),
			sentinel: errs.ErrInvalidStateTransition,
			message:  "invalid state transition: delivery from Delivered to Delivered",
		},
		{
			name:     "access denied",
			err:      errs.NewAccessDeniedError("store", "S2"),
			sentinel: errs.ErrAccessDenied,
			message:  "access denied: store S2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.err), tt.sentinel)
		})
	}
}

func TestAlreadyAssignedErrorKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := errs.NewAlreadyAssignedErrorWithCause("employee", "E1", cause)

	assert.Contains(t, err.Error(), "duplicate key value")

	var target *errs.AlreadyAssignedError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, cause, target.Cause)
}
