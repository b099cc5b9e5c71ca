package services

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/truck"
	"logistics/internal/pkg/errs"
)

// Closure gathers the aggregates touched when a delivery ends. Crew holds the loaded
// employees of the delivery crew.
type Closure struct {
	Delivery *delivery.Delivery
	Order    *order.Order
	Truck    *truck.Truck
	Crew     []*employee.Employee
}

// FatigueLedger closes deliveries: it settles the delivery itself, the consumed
// allocations, the truck and the crew's fatigue state in one step.
type FatigueLedger struct{}

func NewFatigueLedger() FatigueLedger {
	return FatigueLedger{}
}

// Complete records the outcome (Delivered or Delayed). Each crew member's ledger
// grows by one delivery and by the hours they were booked for.
func (FatigueLedger) Complete(c Closure, arrival time.Time, outcome delivery.Status) error {
	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Delivery.Complete(arrival, outcome); err != nil {
		return err
	}

	c.Order.CompleteDelivery(c.Delivery.ID())
	for _, e := range c.Crew {
		hours, _ := c.Delivery.AssignedHours(e.ID())
		if err := e.RecordCompletedDelivery(arrival, hours); err != nil {
			return err
		}
	}
	c.Truck.Release()
	return nil
}

// Cancel returns the cargo to the store and frees the truck and crew without
// touching fatigue counters.
func (FatigueLedger) Cancel(c Closure, at time.Time) error {
	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Delivery.Cancel(at); err != nil {
		return err
	}

	c.Order.RevertDispatch(c.Delivery.ID())
	for _, e := range c.Crew {
		if err := e.ReleaseFromDelivery(); err != nil {
			return err
		}
	}
	c.Truck.Release()
	return nil
}

func (c Closure) validate() error {
	if err := errors.Join(c.Delivery.Validate(), c.Order.Validate(), c.Truck.Validate()); err != nil {
		return err
	}
	if !c.Order.ID().IsEqual(c.Delivery.OrderID()) {
		return errs.NewValueIsInvalidError("order does not match the delivery")
	}
	if !c.Truck.ID().IsEqual(c.Delivery.TruckID()) {
		return errs.NewValueIsInvalidError("truck does not match the delivery")
	}
	if len(c.Crew) != len(c.Delivery.Crew()) {
		return errs.NewValueIsInvalidError("crew does not match the delivery")
	}
	for _, e := range c.Crew {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, ok := c.Delivery.AssignedHours(e.ID()); !ok {
			return errs.NewValueIsInvalidError("crew does not match the delivery")
		}
	}
	return nil
}
