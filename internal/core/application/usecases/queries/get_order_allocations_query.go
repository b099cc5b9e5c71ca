package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var ErrGetOrderAllocationsQueryIsNotConstructed = errors.New(
	"GetOrderAllocationsQuery must be created via NewGetOrderAllocationsQuery constructor",
)

// GetOrderAllocationsQuery returns the coverage of an order: its lines and the
// allocations placed for them. The actor must be allowed to act for the order's store.
type GetOrderAllocationsQuery struct {
	actor   kernel.Actor
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderAllocationsQuery(actor kernel.Actor, orderID kernel.UUID) (GetOrderAllocationsQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderAllocationsQuery{}, err
	}
	return GetOrderAllocationsQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderAllocationsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderAllocationsQueryIsNotConstructed)
}

func (q GetOrderAllocationsQuery) Actor() kernel.Actor  { return q.actor }
func (q GetOrderAllocationsQuery) OrderID() kernel.UUID { return q.orderID }

// LineCoverage is one order line with the quantity covered by non-cancelled allocations.
type LineCoverage struct {
	ProductID kernel.UUID
	Quantity  int
	Covered   int
	Finalized bool
}

// OrderAllocations is the read model behind GET /orders/{id}/allocations.
type OrderAllocations struct {
	OrderID     kernel.UUID
	StoreID     kernel.UUID
	Status      order.Status
	Lines       []LineCoverage
	Allocations []AllocationView
}
