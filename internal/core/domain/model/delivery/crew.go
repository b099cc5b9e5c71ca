package delivery

import (
	"fmt"
	"time"

	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// CrewMember is an employee booked on a delivery for assignedHours. releasedAt is
// set when the delivery ends; until then the member counts as actively assigned.
type CrewMember struct {
	employeeID    kernel.UUID
	role          employee.Role
	assignedHours float64
	releasedAt    *time.Time
}

func NewCrewMember(employeeID kernel.UUID, role employee.Role, assignedHours float64) (CrewMember, error) {
	return RestoreCrewMember(employeeID, role, assignedHours, nil)
}

func RestoreCrewMember(
	employeeID kernel.UUID,
	role employee.Role,
	assignedHours float64,
	releasedAt *time.Time,
) (CrewMember, error) {
	if err := employeeID.Validate(); err != nil {
		return CrewMember{}, err
	}
	if err := role.Validate(); err != nil {
		return CrewMember{}, err
	}
	if assignedHours < 0 {
		return CrewMember{}, errs.NewValueIsInvalidErrorWithCause(
			"assigned_hours", fmt.Errorf("%.2f is negative", assignedHours))
	}
	return CrewMember{
		employeeID:    employeeID,
		role:          role,
		assignedHours: assignedHours,
		releasedAt:    releasedAt,
	}, nil
}

func (c CrewMember) EmployeeID() kernel.UUID { return c.employeeID }
func (c CrewMember) Role() employee.Role     { return c.role }
func (c CrewMember) AssignedHours() float64  { return c.assignedHours }
func (c CrewMember) ReleasedAt() *time.Time  { return c.releasedAt }
func (c CrewMember) IsReleased() bool        { return c.releasedAt != nil }
