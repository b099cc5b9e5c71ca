package services

import (
	"fmt"
	"time"

	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// EligibilityCriteria is the context a crew member is evaluated in.
type EligibilityCriteria struct {
	StoreID    kernel.UUID
	CrossStore bool
	RouteHours float64
	Now        time.Time
}

// Roster is the result of partitioning candidates; both lists are disjoint.
type Roster struct {
	Drivers    []*employee.Employee
	Assistants []*employee.Employee
}

// CrewEligibility evaluates the labor-compliance predicate. An employee is eligible
// for a role when:
//   - the role matches
//   - the home store is the requested store, unless the actor is cross-store
//   - the status is Available and next_available_time ≤ now
//   - consecutive_deliveries < role rest threshold
//   - total_hours_week + route hours ≤ role weekly ceiling
type CrewEligibility struct{}

func NewCrewEligibility() CrewEligibility {
	return CrewEligibility{}
}

// Evaluate returns nil for an eligible employee. An employee already on duty yields
// AlreadyAssigned, an hours overrun yields RouteCapacityWindowExceeded and every
// other failure yields NotEligible.
func (CrewEligibility) Evaluate(e *employee.Employee, role employee.Role, c EligibilityCriteria) error {
	if err := e.Validate(); err != nil {
		return err
	}
	id := e.ID().String()
	policy := e.Policy()

	switch {
	case e.Role() != role:
		return errs.NewNotEligibleError("employee", id, fmt.Sprintf("is a %s, not a %s", e.Role(), role))
	case !c.CrossStore && !e.BelongsTo(c.StoreID):
		return errs.NewNotEligibleError("employee", id, "home store differs")
	case e.Status() == employee.OnDuty:
		return errs.NewAlreadyAssignedError("employee", id)
	case e.Status() != employee.Available:
		return errs.NewNotEligibleError("employee", id, e.Status().String())
	case e.NextAvailableTime().After(c.Now):
		return errs.NewNotEligibleError("employee", id,
			"resting until "+e.NextAvailableTime().Format(time.RFC3339))
	case e.ConsecutiveDeliveries() >= policy.RestThreshold:
		return errs.NewNotEligibleError("employee", id, "rest threshold reached")
	}

	if projected := e.ProjectedHours(c.RouteHours); projected > policy.WeeklyHoursCeiling {
		return errs.NewRouteCapacityWindowExceededError("employee", id, projected, policy.WeeklyHoursCeiling)
	}
	return nil
}

// Partition keeps the eligible candidates, split by role. Input order is preserved.
func (ce CrewEligibility) Partition(candidates []*employee.Employee, c EligibilityCriteria) Roster {
	roster := Roster{
		Drivers:    make([]*employee.Employee, 0),
		Assistants: make([]*employee.Employee, 0),
	}
	for _, e := range candidates {
		if e.Validate() != nil {
			continue
		}
		if ce.Evaluate(e, e.Role(), c) != nil {
			continue
		}
		switch e.Role() {
		case employee.Driver:
			roster.Drivers = append(roster.Drivers, e)
		case employee.Assistant:
			roster.Assistants = append(roster.Assistants, e)
		}
	}
	return roster
}
