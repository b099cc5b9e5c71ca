package order

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// Allocation is a quantity of one order line placed on one train. The product's unit
// space is snapshotted at allocation time so later catalog changes do not move
// the train's utilization.
type Allocation struct {
	id           kernel.UUID
	orderID      kernel.UUID
	trainID      kernel.UUID
	productID    kernel.UUID
	allocatedQty int
	unitSpace    kernel.Space
	status       AllocationStatus
	finalized    bool
	deliveryID   *kernel.UUID
	allocatedAt  time.Time
	arrivedAt    *time.Time
}

// AllocationState carries the persisted fields of an allocation.
type AllocationState struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	TrainID      kernel.UUID
	ProductID    kernel.UUID
	AllocatedQty int
	UnitSpace    kernel.Space
	Status       AllocationStatus
	Finalized    bool
	DeliveryID   *kernel.UUID
	AllocatedAt  time.Time
	ArrivedAt    *time.Time
}

// RestoreAllocation rebuilds an allocation loaded from storage.
func RestoreAllocation(state AllocationState) (*Allocation, error) {
	var qtyErr, spaceErr, deliveryErr error
	if state.AllocatedQty <= 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("allocated_qty", fmt.Errorf("%d is not greater than 0", state.AllocatedQty))
	}
	if !state.UnitSpace.IsPositive() {
		spaceErr = errs.NewValueIsInvalidErrorWithCause("unit_space", fmt.Errorf("%s is not greater than 0", state.UnitSpace))
	}
	dispatched := state.Status == AllocationDispatched || state.Status == AllocationDelivered
	if dispatched != (state.DeliveryID != nil) {
		deliveryErr = errs.NewValueIsInvalidErrorWithCause(
			"delivery_id", fmt.Errorf("%s allocation must have a delivery only while dispatched or delivered", state.Status))
	}

	if err := errors.Join(
		state.ID.Validate(),
		state.OrderID.Validate(),
		state.TrainID.Validate(),
		state.ProductID.Validate(),
		state.Status.Validate(),
		qtyErr,
		spaceErr,
		deliveryErr,
	); err != nil {
		return nil, err
	}

	return &Allocation{
		id:           state.ID,
		orderID:      state.OrderID,
		trainID:      state.TrainID,
		productID:    state.ProductID,
		allocatedQty: state.AllocatedQty,
		unitSpace:    state.UnitSpace,
		status:       state.Status,
		finalized:    state.Finalized,
		deliveryID:   state.DeliveryID,
		allocatedAt:  state.AllocatedAt,
		arrivedAt:    state.ArrivedAt,
	}, nil
}

func (a *Allocation) ID() kernel.UUID          { return a.id }
func (a *Allocation) OrderID() kernel.UUID     { return a.orderID }
func (a *Allocation) TrainID() kernel.UUID     { return a.trainID }
func (a *Allocation) ProductID() kernel.UUID   { return a.productID }
func (a *Allocation) AllocatedQty() int        { return a.allocatedQty }
func (a *Allocation) UnitSpace() kernel.Space  { return a.unitSpace }
func (a *Allocation) Status() AllocationStatus { return a.status }
func (a *Allocation) IsFinalized() bool        { return a.finalized }
func (a *Allocation) DeliveryID() *kernel.UUID { return a.deliveryID }
func (a *Allocation) AllocatedAt() time.Time   { return a.allocatedAt }
func (a *Allocation) ArrivedAt() *time.Time    { return a.arrivedAt }

// Space is allocated_qty × unit_space.
func (a *Allocation) Space() kernel.Space {
	return a.unitSpace.Times(a.allocatedQty)
}

func (a *Allocation) belongsToDelivery(deliveryID kernel.UUID) bool {
	return a.deliveryID != nil && a.deliveryID.IsEqual(deliveryID)
}
