package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand books a truck, a driver and an optional assistant for the
// staged cargo of an order. now is the instant eligibility is evaluated at.
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor              kernel.Actor
	storeID            kernel.UUID
	orderID            kernel.UUID
	routeID            kernel.UUID
	truckID            kernel.UUID
	driverID           kernel.UUID
	assistantID        *kernel.UUID
	scheduledDeparture time.Time
	now                time.Time

	guard guard.ConstructorGuard
}

func NewAssignDeliveryCommand(
	actor kernel.Actor,
	storeID, orderID, routeID, truckID, driverID kernel.UUID,
	assistantID *kernel.UUID,
	scheduledDeparture, now time.Time,
) (AssignDeliveryCommand, error) {
	var assistantErr, departureErr error
	if assistantID != nil {
		assistantErr = assistantID.Validate()
		if assistantErr == nil && assistantID.IsEqual(driverID) {
			assistantErr = errs.NewValueIsInvalidErrorWithCause("assistant_id", errors.New("driver and assistant must differ"))
		}
	}
	if scheduledDeparture.IsZero() {
		departureErr = errs.NewValueIsRequiredError("scheduled_departure")
	}

	if err := errors.Join(
		actor.Validate(),
		storeID.Validate(),
		orderID.Validate(),
		routeID.Validate(),
		truckID.Validate(),
		driverID.Validate(),
		assistantErr,
		departureErr,
	); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return AssignDeliveryCommand{
		actor:              actor,
		storeID:            storeID,
		orderID:            orderID,
		routeID:            routeID,
		truckID:            truckID,
		driverID:           driverID,
		assistantID:        assistantID,
		scheduledDeparture: scheduledDeparture,
		now:                now,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

func (c AssignDeliveryCommand) Actor() kernel.Actor           { return c.actor }
func (c AssignDeliveryCommand) StoreID() kernel.UUID          { return c.storeID }
func (c AssignDeliveryCommand) OrderID() kernel.UUID          { return c.orderID }
func (c AssignDeliveryCommand) RouteID() kernel.UUID          { return c.routeID }
func (c AssignDeliveryCommand) TruckID() kernel.UUID          { return c.truckID }
func (c AssignDeliveryCommand) DriverID() kernel.UUID         { return c.driverID }
func (c AssignDeliveryCommand) AssistantID() *kernel.UUID     { return c.assistantID }
func (c AssignDeliveryCommand) ScheduledDeparture() time.Time { return c.scheduledDeparture }
func (c AssignDeliveryCommand) Now() time.Time                { return c.now }

// CrewIDs lists the named crew, driver first.
func (c AssignDeliveryCommand) CrewIDs() []kernel.UUID {
	ids := []kernel.UUID{c.driverID}
	if c.assistantID != nil {
		ids = append(ids, *c.assistantID)
	}
	return ids
}
