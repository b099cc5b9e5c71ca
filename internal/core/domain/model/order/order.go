package order

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of a customer order travelling to its destination store.
// It owns the ordered lines and every allocation made for them, which lets it enforce
// the line invariant on its own:
//
//	Σ allocated_qty over non-cancelled allocations of a line ≤ ordered quantity
//
// The order status is recomputed after every change (see reconcile).
type Order struct {
	kernel.EventRecorder

	id          kernel.UUID
	customerID  kernel.UUID
	storeID     kernel.UUID
	requiredBy  time.Time
	createdAt   time.Time
	status      Status
	lines       []*Line
	allocations []*Allocation
	guard       guard.ConstructorGuard
}

// NewOrder creates a Pending order. Every product may appear on at most one line.
//
// Orders are owned by the order catalog; this constructor exists for imports and tests.
func NewOrder(
	id, customerID, storeID kernel.UUID,
	requiredBy time.Time,
	lines []*Line,
	createdAt time.Time,
) (*Order, error) {
	return RestoreOrder(id, customerID, storeID, requiredBy, createdAt, Pending, lines, nil)
}

// RestoreOrder rebuilds the aggregate from storage. The stored status is trusted only
// when it is Cancelled; any other value is derived again from lines and allocations.
func RestoreOrder(
	id, customerID, storeID kernel.UUID,
	requiredBy, createdAt time.Time,
	status Status,
	lines []*Line,
	allocations []*Allocation,
) (*Order, error) {
	o := &Order{
		id:          id,
		customerID:  customerID,
		storeID:     storeID,
		requiredBy:  requiredBy.UTC(),
		createdAt:   createdAt.UTC(),
		status:      status,
		allocations: allocations,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		storeID.Validate(),
		status.Validate(),
		o.setLines(lines),
		o.validateAllocations(),
	); err != nil {
		return nil, err
	}

	o.reconcile()
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID         { return o.id }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) StoreID() kernel.UUID    { return o.storeID }
func (o *Order) RequiredBy() time.Time   { return o.requiredBy }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) Status() Status          { return o.status }

func (o *Order) Lines() []*Line {
	out := make([]*Line, len(o.lines))
	copy(out, o.lines)
	return out
}

func (o *Order) Allocations() []*Allocation {
	out := make([]*Allocation, len(o.allocations))
	copy(out, o.allocations)
	return out
}

func (o *Order) IsDestinedTo(storeID kernel.UUID) bool {
	return o.storeID.IsEqual(storeID)
}

// Line returns the line ordering productID.
func (o *Order) Line(productID kernel.UUID) (*Line, error) {
	for _, l := range o.lines {
		if l.productID.IsEqual(productID) {
			return l, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order line", productID.String())
}

// Coverage is the quantity of productID covered by non-cancelled allocations.
func (o *Order) Coverage(productID kernel.UUID) int {
	covered := 0
	for _, a := range o.allocations {
		if a.productID.IsEqual(productID) && !a.status.IsCancelled() {
			covered += a.allocatedQty
		}
	}
	return covered
}

// Remaining is the quantity of the line still to be allocated.
func (o *Order) Remaining(productID kernel.UUID) (int, error) {
	line, err := o.Line(productID)
	if err != nil {
		return 0, err
	}
	return max(line.quantity-o.Coverage(productID), 0), nil
}

// ValidateAllocate runs every order-side precondition of Allocate without changing state.
func (o *Order) ValidateAllocate(productID kernel.UUID, qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", qty))
	}
	if err := o.status.ValidateAllocate(); err != nil {
		return err
	}
	remaining, err := o.Remaining(productID)
	if err != nil {
		return err
	}
	if qty > remaining {
		return errs.NewOverAllocationError("line", productID.String(), qty, remaining)
	}
	return nil
}

// Allocate records qty units of productID on trainID. The train-side capacity check
// is the caller's job and must happen first.
func (o *Order) Allocate(
	trainID, productID kernel.UUID,
	qty int,
	unitSpace kernel.Space,
	at time.Time,
) (*Allocation, error) {
	if err := o.ValidateAllocate(productID, qty); err != nil {
		return nil, err
	}

	allocation, err := RestoreAllocation(AllocationState{
		ID:           kernel.NewUUID(),
		OrderID:      o.id,
		TrainID:      trainID,
		ProductID:    productID,
		AllocatedQty: qty,
		UnitSpace:    unitSpace,
		Status:       AllocationAllocated,
		AllocatedAt:  at.UTC(),
	})
	if err != nil {
		return nil, err
	}

	o.allocations = append(o.allocations, allocation)
	line, _ := o.Line(productID)
	o.refreshLine(line)
	o.reconcile()

	o.Record(AllocationCreated{
		Event:        kernel.NewEvent(EventTypeAllocationCreated, o.id, at),
		AllocationID: allocation.id,
		TrainID:      trainID,
		ProductID:    productID,
		AllocatedQty: qty,
		UnitSpace:    unitSpace.String(),
		Finalized:    allocation.finalized,
		OrderStatus:  o.status.String(),
	})

	return allocation, nil
}

// MarkArrived stages every Allocated allocation carried by trainID and returns how
// many moved. Calling it again for the same train returns 0.
func (o *Order) MarkArrived(trainID kernel.UUID, at time.Time) int {
	arrivedAt := at.UTC()
	moved := 0
	for _, a := range o.allocations {
		if !a.trainID.IsEqual(trainID) {
			continue
		}
		next, err := a.status.Arrive()
		if err != nil {
			continue
		}
		a.status = next
		a.arrivedAt = &arrivedAt
		moved++
	}
	if moved > 0 {
		o.reconcile()
	}
	return moved
}

// HasStagedAllocations reports whether some cargo is waiting at the store.
func (o *Order) HasStagedAllocations() bool {
	for _, a := range o.allocations {
		if a.status == AllocationAtStore {
			return true
		}
	}
	return false
}

// ValidateDispatch fails with InvalidStateTransition when there is nothing staged.
func (o *Order) ValidateDispatch() error {
	if o.status == Cancelled {
		return errs.NewInvalidStateTransitionError("order", o.status.String(), Dispatched.String())
	}
	if !o.HasStagedAllocations() {
		return errs.NewInvalidStateTransitionError("order", o.status.String()+" without staged allocations", Dispatched.String())
	}
	return nil
}

// DispatchStaged attaches all AtStore allocations to deliveryID.
func (o *Order) DispatchStaged(deliveryID kernel.UUID) (int, error) {
	if err := deliveryID.Validate(); err != nil {
		return 0, err
	}
	if err := o.ValidateDispatch(); err != nil {
		return 0, err
	}

	dispatched := 0
	for _, a := range o.allocations {
		next, err := a.status.Dispatch()
		if err != nil {
			continue
		}
		id := deliveryID
		a.status = next
		a.deliveryID = &id
		dispatched++
	}
	o.reconcile()
	return dispatched, nil
}

// CompleteDelivery marks the allocations consumed by deliveryID as Delivered.
func (o *Order) CompleteDelivery(deliveryID kernel.UUID) int {
	return o.moveDeliveryAllocations(deliveryID, AllocationStatus.Deliver, false)
}

// RevertDispatch returns the allocations of a cancelled delivery to the store.
func (o *Order) RevertDispatch(deliveryID kernel.UUID) int {
	return o.moveDeliveryAllocations(deliveryID, AllocationStatus.Restage, true)
}

// CancelTrainAllocations cancels the not yet arrived allocations carried by trainID.
// The affected lines lose their coverage and are no longer finalized.
func (o *Order) CancelTrainAllocations(trainID kernel.UUID) int {
	cancelled := 0
	touched := make(map[kernel.UUID]struct{})
	for _, a := range o.allocations {
		if !a.trainID.IsEqual(trainID) {
			continue
		}
		next, err := a.status.Cancel()
		if err != nil {
			continue
		}
		a.status = next
		touched[a.productID] = struct{}{}
		cancelled++
	}
	for productID := range touched {
		if line, err := o.Line(productID); err == nil {
			o.refreshLine(line)
		}
	}
	if cancelled > 0 {
		o.reconcile()
	}
	return cancelled
}

func (o *Order) moveDeliveryAllocations(
	deliveryID kernel.UUID,
	transition func(AllocationStatus) (AllocationStatus, error),
	detach bool,
) int {
	moved := 0
	for _, a := range o.allocations {
		if !a.belongsToDelivery(deliveryID) {
			continue
		}
		next, err := transition(a.status)
		if err != nil {
			continue
		}
		a.status = next
		if detach {
			a.deliveryID = nil
		}
		moved++
	}
	if moved > 0 {
		o.reconcile()
	}
	return moved
}

// refreshLine recomputes finalized for a line and copies it onto the line's allocations.
func (o *Order) refreshLine(line *Line) {
	line.finalized = o.Coverage(line.productID) >= line.quantity
	for _, a := range o.allocations {
		if a.productID.IsEqual(line.productID) {
			a.finalized = line.finalized && !a.status.IsCancelled()
		}
	}
}

// reconcile derives the order status. Cancelled is sticky. While a line is not
// finalized the order is Pending or PartiallyAllocated; afterwards it takes the least
// advanced stage among its non-cancelled allocations.
func (o *Order) reconcile() {
	if o.status == Cancelled {
		return
	}

	allFinalized := true
	for _, l := range o.lines {
		if !l.finalized {
			allFinalized = false
			break
		}
	}

	if !allFinalized {
		o.status = Pending
		for _, a := range o.allocations {
			if !a.status.IsCancelled() {
				o.status = PartiallyAllocated
				break
			}
		}
		return
	}

	least := AllocationDelivered
	for _, a := range o.allocations {
		if !a.status.IsCancelled() && a.status < least {
			least = a.status
		}
	}
	o.status = stageStatus(least)
}

func stageStatus(s AllocationStatus) Status {
	switch s {
	case AllocationAllocated:
		return Allocated
	case AllocationAtStore:
		return AtStore
	case AllocationDispatched:
		return Dispatched
	default:
		return Delivered
	}
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, l := range lines {
		if l == nil {
			return errs.NewValueIsRequiredError("line")
		}
		if _, dup := seen[l.productID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("lines", fmt.Errorf("product %s ordered twice", l.productID))
		}
		seen[l.productID] = struct{}{}
	}
	o.lines = lines
	return nil
}

func (o *Order) validateAllocations() error {
	for _, a := range o.allocations {
		if a == nil || !a.orderID.IsEqual(o.id) {
			return errs.NewValueIsInvalidErrorWithCause("allocations", errors.New("allocation belongs to another order"))
		}
	}
	return nil
}
