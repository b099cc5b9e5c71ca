package employee

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrEmployeeIsNotConstructed = errors.New("Employee must be created via NewEmployee or RestoreEmployee constructor")

// Employee is a driver or assistant of a store together with its fatigue ledger:
// consecutive deliveries since the last rest, hours booked this week and the time
// from which the employee may be assigned again.
type Employee struct {
	id                    kernel.UUID
	name                  string
	role                  Role
	storeID               kernel.UUID
	status                Status
	consecutiveDeliveries int
	totalHoursWeek        float64
	nextAvailableTime     time.Time
	lastDeliveryTime      *time.Time
	guard                 guard.ConstructorGuard
}

// State carries the persisted fields of an employee.
type State struct {
	ID                    kernel.UUID
	Name                  string
	Role                  Role
	StoreID               kernel.UUID
	Status                Status
	ConsecutiveDeliveries int
	TotalHoursWeek        float64
	NextAvailableTime     time.Time
	LastDeliveryTime      *time.Time
}

// NewEmployee hires an Available employee with an empty fatigue ledger.
func NewEmployee(id kernel.UUID, name string, role Role, storeID kernel.UUID, now time.Time) (*Employee, error) {
	return RestoreEmployee(State{
		ID:                id,
		Name:              name,
		Role:              role,
		StoreID:           storeID,
		Status:            Available,
		NextAvailableTime: now,
	})
}

func RestoreEmployee(s State) (*Employee, error) {
	var nameErr, counterErr, hoursErr error
	name := strings.TrimSpace(s.Name)
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if s.ConsecutiveDeliveries < 0 {
		counterErr = errs.NewValueIsInvalidErrorWithCause("consecutive_deliveries",
			fmt.Errorf("%d is negative", s.ConsecutiveDeliveries))
	}
	if s.TotalHoursWeek < 0 {
		hoursErr = errs.NewValueIsInvalidErrorWithCause("total_hours_week",
			fmt.Errorf("%.2f is negative", s.TotalHoursWeek))
	}

	if err := errors.Join(
		s.ID.Validate(),
		s.StoreID.Validate(),
		s.Role.Validate(),
		s.Status.Validate(),
		nameErr,
		counterErr,
		hoursErr,
	); err != nil {
		return nil, err
	}

	return &Employee{
		id:                    s.ID,
		name:                  name,
		role:                  s.Role,
		storeID:               s.StoreID,
		status:                s.Status,
		consecutiveDeliveries: s.ConsecutiveDeliveries,
		totalHoursWeek:        s.TotalHoursWeek,
		nextAvailableTime:     s.NextAvailableTime.UTC(),
		lastDeliveryTime:      s.LastDeliveryTime,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

func (e *Employee) Validate() error {
	if e == nil {
		return ErrEmployeeIsNotConstructed
	}
	return e.guard.Validate(ErrEmployeeIsNotConstructed)
}

func (e *Employee) ID() kernel.UUID              { return e.id }
func (e *Employee) Name() string                 { return e.name }
func (e *Employee) Role() Role                   { return e.role }
func (e *Employee) StoreID() kernel.UUID         { return e.storeID }
func (e *Employee) Status() Status               { return e.status }
func (e *Employee) ConsecutiveDeliveries() int   { return e.consecutiveDeliveries }
func (e *Employee) TotalHoursWeek() float64      { return e.totalHoursWeek }
func (e *Employee) NextAvailableTime() time.Time { return e.nextAvailableTime }
func (e *Employee) LastDeliveryTime() *time.Time { return e.lastDeliveryTime }
func (e *Employee) Policy() Policy               { return PolicyFor(e.role) }

func (e *Employee) BelongsTo(storeID kernel.UUID) bool {
	return e.storeID.IsEqual(storeID)
}

// ProjectedHours is the weekly total after taking a route of routeHours.
func (e *Employee) ProjectedHours(routeHours float64) float64 {
	return e.totalHoursWeek + routeHours
}

// AssignToDelivery puts an Available employee on duty.
func (e *Employee) AssignToDelivery() error {
	switch e.status {
	case Available:
		e.status = OnDuty
		return nil
	case OnDuty:
		return errs.NewAlreadyAssignedError("employee", e.id.String())
	default:
		return errs.NewInvalidStateTransitionError("employee", e.status.String(), OnDuty.String())
	}
}

// ReleaseFromDelivery takes an employee off a cancelled delivery without touching the
// fatigue ledger.
func (e *Employee) ReleaseFromDelivery() error {
	if e.status != OnDuty {
		return errs.NewInvalidStateTransitionError("employee", e.status.String(), Available.String())
	}
	e.status = Available
	return nil
}

// RecordCompletedDelivery rolls the fatigue ledger forward. Reaching the rest
// threshold sends the employee on leave for the mandated rest and restarts the
// consecutive counter.
func (e *Employee) RecordCompletedDelivery(arrival time.Time, assignedHours float64) error {
	if e.status != OnDuty {
		return errs.NewInvalidStateTransitionError("employee", e.status.String(), "complete delivery")
	}
	if assignedHours < 0 {
		return errs.NewValueIsInvalidErrorWithCause("assigned_hours", fmt.Errorf("%.2f is negative", assignedHours))
	}

	arrival = arrival.UTC()
	policy := e.Policy()

	e.consecutiveDeliveries++
	e.totalHoursWeek += assignedHours
	e.lastDeliveryTime = &arrival

	if e.consecutiveDeliveries >= policy.RestThreshold {
		e.status = OnLeave
		e.nextAvailableTime = arrival.Add(policy.RestDuration)
		e.consecutiveDeliveries = 0
		return nil
	}

	e.status = Available
	e.nextAvailableTime = arrival
	return nil
}

// ReturnFromLeave makes a rested employee Available again. It reports whether the
// status changed.
func (e *Employee) ReturnFromLeave(now time.Time) bool {
	if e.status != OnLeave || e.nextAvailableTime.After(now) {
		return false
	}
	e.status = Available
	return true
}

// ResetWeeklyHours starts a new labor week.
func (e *Employee) ResetWeeklyHours() {
	e.totalHoursWeek = 0
}
