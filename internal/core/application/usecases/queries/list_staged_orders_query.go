package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/guard"
)

var ErrListStagedOrdersQueryIsNotConstructed = errors.New(
	"ListStagedOrdersQuery must be created via NewListStagedOrdersQuery constructor",
)

// ListStagedOrdersQuery lists the orders whose cargo is fully staged at a store and
// is waiting for a truck.
type ListStagedOrdersQuery struct {
	actor   kernel.Actor
	storeID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewListStagedOrdersQuery(actor kernel.Actor, storeID kernel.UUID) (ListStagedOrdersQuery, error) {
	if err := errors.Join(actor.Validate(), storeID.Validate()); err != nil {
		return ListStagedOrdersQuery{}, err
	}
	return ListStagedOrdersQuery{actor: actor, storeID: storeID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListStagedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListStagedOrdersQueryIsNotConstructed)
}

func (q ListStagedOrdersQuery) Actor() kernel.Actor  { return q.actor }
func (q ListStagedOrdersQuery) StoreID() kernel.UUID { return q.storeID }

// StagedOrderView summarizes an order sitting at its store.
type StagedOrderView struct {
	OrderID           kernel.UUID
	CustomerID        kernel.UUID
	RequiredBy        time.Time
	Status            order.Status
	StagedAllocations int
	StagedSpace       kernel.Space
}
