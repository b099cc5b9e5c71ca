package services

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/train"
	"logistics/internal/pkg/errs"
)

// CapacityLedger places order lines on trains and keeps both invariants:
//
//	per train: Σ allocated_qty × unit_space over non-cancelled allocations ≤ capacity
//	per line:  Σ allocated_qty over non-cancelled allocations ≤ ordered quantity
//
// It expects the train and the order to be loaded under row locks by the caller.
type CapacityLedger struct{}

func NewCapacityLedger() CapacityLedger {
	return CapacityLedger{}
}

// AllocateRequest describes one allocation. UnitSpace overrides the product's
// unit space when set; it must be positive.
type AllocateRequest struct {
	Train     *train.Train
	Order     *order.Order
	Product   *product.Product
	StoreID   kernel.UUID
	Quantity  int
	UnitSpace *kernel.Space
	At        time.Time
}

// Allocate checks capacity before the line quantity: when both would fail the caller
// gets CapacityExceeded.
func (CapacityLedger) Allocate(req AllocateRequest) (*order.Allocation, error) {
	if err := errors.Join(req.Train.Validate(), req.Order.Validate(), req.Product.Validate()); err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", req.Quantity))
	}
	if !req.Order.IsDestinedTo(req.StoreID) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"store_id", fmt.Errorf("order %s is destined to another store", req.Order.ID()))
	}

	unitSpace := req.Product.UnitSpace()
	if req.UnitSpace != nil {
		if !req.UnitSpace.IsPositive() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"unit_space", fmt.Errorf("%s is not greater than 0", req.UnitSpace))
		}
		unitSpace = *req.UnitSpace
	}

	if err := req.Train.Status().ValidateAllocate(); err != nil {
		return nil, err
	}
	if err := req.Order.Status().ValidateAllocate(); err != nil {
		return nil, err
	}
	if _, err := req.Order.Line(req.Product.ID()); err != nil {
		return nil, err
	}

	space := unitSpace.Times(req.Quantity)
	if err := req.Train.ValidateReserve(space); err != nil {
		return nil, err
	}

	allocation, err := req.Order.Allocate(req.Train.ID(), req.Product.ID(), req.Quantity, unitSpace, req.At)
	if err != nil {
		return nil, err
	}

	if err = req.Train.Reserve(space); err != nil {
		return nil, err
	}
	return allocation, nil
}

// MarkArrived stages the train's Allocated cargo on every order and returns the
// number of allocations moved. A second call for the same train returns 0.
func (CapacityLedger) MarkArrived(t *train.Train, orders []*order.Order, at time.Time) (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	moved := 0
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return 0, err
		}
		moved += o.MarkArrived(t.ID(), at)
	}
	return moved, nil
}

// CancelTrain cancels the train together with its not yet arrived allocations and
// returns how many allocations were cancelled.
func (CapacityLedger) CancelTrain(t *train.Train, orders []*order.Order, at time.Time) (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if _, err := t.Status().Cancel(); err != nil {
		return 0, err
	}

	cancelled := 0
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return 0, err
		}
		cancelled += o.CancelTrainAllocations(t.ID())
	}

	if err := t.Cancel(at, cancelled); err != nil {
		return 0, err
	}
	return cancelled, nil
}
