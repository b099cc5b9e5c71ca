package employee_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 5, 9, 0, 0, 0, time.UTC)

func newEmployee(t *testing.T, role employee.Role) *employee.Employee {
	t.Helper()
	e, err := employee.NewEmployee(kernel.NewUUID(), "Ivan", role, kernel.NewUUID(), now)
	require.NoError(t, err)
	return e
}

func TestPolicyFor(t *testing.T) {
	driver := employee.PolicyFor(employee.Driver)
	assert.Equal(t, 40.0, driver.WeeklyHoursCeiling)
	assert.Equal(t, 1, driver.RestThreshold)
	assert.Equal(t, 8*time.Hour, driver.RestDuration)

	assistant := employee.PolicyFor(employee.Assistant)
	assert.Equal(t, 60.0, assistant.WeeklyHoursCeiling)
	assert.Equal(t, 2, assistant.RestThreshold)

	assert.Zero(t, employee.PolicyFor(employee.RoleUnknown))
}

func TestParseRole(t *testing.T) {
	r, err := employee.ParseRole("assistant")
	require.NoError(t, err)
	assert.Equal(t, employee.Assistant, r)

	_, err = employee.ParseRole("manager")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRestoreEmployee_Validation(t *testing.T) {
	_, err := employee.RestoreEmployee(employee.State{
		ID:                    kernel.NewUUID(),
		StoreID:               kernel.NewUUID(),
		Role:                  employee.Driver,
		Status:                employee.Available,
		ConsecutiveDeliveries: -1,
		TotalHoursWeek:        -2,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "consecutive_deliveries")
	assert.Contains(t, err.Error(), "total_hours_week")
}

func TestEmployee_DriverRestsAfterEveryDelivery(t *testing.T) {
	driver := newEmployee(t, employee.Driver)
	arrival := now.Add(2 * time.Hour)

	require.NoError(t, driver.AssignToDelivery())
	assert.Equal(t, employee.OnDuty, driver.Status())
	assert.ErrorIs(t, driver.AssignToDelivery(), errs.ErrAlreadyAssigned)

	require.NoError(t, driver.RecordCompletedDelivery(arrival, 1.5))
	assert.Equal(t, employee.OnLeave, driver.Status())
	assert.Equal(t, 0, driver.ConsecutiveDeliveries())
	assert.InDelta(t, 1.5, driver.TotalHoursWeek(), 1e-9)
	assert.Equal(t, arrival.Add(8*time.Hour), driver.NextAvailableTime())
	require.NotNil(t, driver.LastDeliveryTime())
	assert.Equal(t, arrival, *driver.LastDeliveryTime())

	assert.ErrorIs(t, driver.RecordCompletedDelivery(arrival, 1), errs.ErrInvalidStateTransition)
	assert.ErrorIs(t, driver.AssignToDelivery(), errs.ErrInvalidStateTransition)

	assert.False(t, driver.ReturnFromLeave(arrival.Add(7*time.Hour)))
	assert.True(t, driver.ReturnFromLeave(arrival.Add(8*time.Hour)))
	assert.Equal(t, employee.Available, driver.Status())
}

func TestEmployee_AssistantRestsAfterTwoDeliveries(t *testing.T) {
	assistant := newEmployee(t, employee.Assistant)
	first := now.Add(time.Hour)

	require.NoError(t, assistant.AssignToDelivery())
	require.NoError(t, assistant.RecordCompletedDelivery(first, 1))
	assert.Equal(t, employee.Available, assistant.Status())
	assert.Equal(t, 1, assistant.ConsecutiveDeliveries())
	assert.Equal(t, first, assistant.NextAvailableTime())

	second := first.Add(3 * time.Hour)
	require.NoError(t, assistant.AssignToDelivery())
	require.NoError(t, assistant.RecordCompletedDelivery(second, 2))
	assert.Equal(t, employee.OnLeave, assistant.Status())
	assert.Equal(t, 0, assistant.ConsecutiveDeliveries())
	assert.InDelta(t, 3, assistant.TotalHoursWeek(), 1e-9)
	assert.Equal(t, second.Add(employee.MandatoryRest), assistant.NextAvailableTime())
}

func TestEmployee_ReleaseAndReset(t *testing.T) {
	e := newEmployee(t, employee.Assistant)
	assert.ErrorIs(t, e.ReleaseFromDelivery(), errs.ErrInvalidStateTransition)

	require.NoError(t, e.AssignToDelivery())
	require.NoError(t, e.ReleaseFromDelivery())
	assert.Equal(t, employee.Available, e.Status())
	assert.Equal(t, 0, e.ConsecutiveDeliveries())

	require.NoError(t, e.AssignToDelivery())
	require.NoError(t, e.RecordCompletedDelivery(now, 5))
	e.ResetWeeklyHours()
	assert.Zero(t, e.TotalHoursWeek())
	assert.InDelta(t, 4.5, e.ProjectedHours(4.5), 1e-9)
}
