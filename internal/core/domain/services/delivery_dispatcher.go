package services

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/truck"
	"logistics/internal/pkg/errs"
)

// DispatchRequest gathers the aggregates of an assignment, loaded under row locks in
// the order train → order → truck → employees. Assistant is optional.
type DispatchRequest struct {
	Actor              kernel.Actor
	StoreID            kernel.UUID
	Order              *order.Order
	Route              *route.Route
	Truck              *truck.Truck
	Driver             *employee.Employee
	Assistant          *employee.Employee
	ScheduledDeparture time.Time
	Now                time.Time
}

// DeliveryDispatcher builds a Scheduled delivery for a staged order: it reserves the
// truck, puts the crew on duty and dispatches the order's staged allocations.
//
// Every check runs before the first mutation, so a failed dispatch leaves all
// aggregates untouched.
type DeliveryDispatcher struct {
	eligibility CrewEligibility
}

func NewDeliveryDispatcher(eligibility CrewEligibility) DeliveryDispatcher {
	return DeliveryDispatcher{eligibility: eligibility}
}

func (d DeliveryDispatcher) Dispatch(req DispatchRequest) (*delivery.Delivery, error) {
	if err := req.Actor.CanActFor(req.StoreID); err != nil {
		return nil, err
	}
	if err := errors.Join(req.Order.Validate(), req.Route.Validate(), req.Truck.Validate(), req.Driver.Validate()); err != nil {
		return nil, err
	}
	if req.Assistant != nil {
		if err := req.Assistant.Validate(); err != nil {
			return nil, err
		}
		if req.Assistant.ID().IsEqual(req.Driver.ID()) {
			return nil, errs.NewValueIsInvalidErrorWithCause("assistant_id", errors.New("driver and assistant must differ"))
		}
	}
	if req.ScheduledDeparture.IsZero() {
		return nil, errs.NewValueIsRequiredError("scheduled_departure")
	}

	if !req.Order.IsDestinedTo(req.StoreID) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order_id", fmt.Errorf("order %s is destined to another store", req.Order.ID()))
	}
	if !req.Route.BelongsTo(req.StoreID) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"route_id", fmt.Errorf("route %s belongs to another store", req.Route.ID()))
	}
	if err := req.Order.ValidateDispatch(); err != nil {
		return nil, err
	}

	if !req.Actor.IsCrossStore() && !req.Truck.BelongsTo(req.StoreID) {
		return nil, errs.NewNotEligibleError("truck", req.Truck.PlateNumber(), "home store differs")
	}
	if !req.Truck.IsAvailable() {
		return nil, errs.NewAlreadyAssignedError("truck", req.Truck.PlateNumber())
	}

	criteria := EligibilityCriteria{
		StoreID:    req.StoreID,
		CrossStore: req.Actor.IsCrossStore(),
		RouteHours: req.Route.ExpectedHours(),
		Now:        req.Now,
	}
	if err := d.eligibility.Evaluate(req.Driver, employee.Driver, criteria); err != nil {
		return nil, err
	}
	if req.Assistant != nil {
		if err := d.eligibility.Evaluate(req.Assistant, employee.Assistant, criteria); err != nil {
			return nil, err
		}
	}

	crew, err := d.crew(req)
	if err != nil {
		return nil, err
	}

	result, err := delivery.NewDelivery(
		kernel.NewUUID(),
		req.Order.ID(),
		req.Route.ID(),
		req.Truck.ID(),
		req.StoreID,
		req.ScheduledDeparture,
		crew,
		req.Now,
	)
	if err != nil {
		return nil, err
	}

	if err = req.Truck.Reserve(); err != nil {
		return nil, err
	}
	if err = req.Driver.AssignToDelivery(); err != nil {
		return nil, err
	}
	if req.Assistant != nil {
		if err = req.Assistant.AssignToDelivery(); err != nil {
			return nil, err
		}
	}
	if _, err = req.Order.DispatchStaged(result.ID()); err != nil {
		return nil, err
	}

	return result, nil
}

func (d DeliveryDispatcher) crew(req DispatchRequest) ([]delivery.CrewMember, error) {
	hours := req.Route.ExpectedHours()
	driver, err := delivery.NewCrewMember(req.Driver.ID(), employee.Driver, hours)
	if err != nil {
		return nil, err
	}
	crew := []delivery.CrewMember{driver}

	if req.Assistant != nil {
		assistant, err := delivery.NewCrewMember(req.Assistant.ID(), employee.Assistant, hours)
		if err != nil {
			return nil, err
		}
		crew = append(crew, assistant)
	}
	return crew, nil
}
