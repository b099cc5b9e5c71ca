package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrListPendingAllocationsQueryIsNotConstructed = errors.New(
	"ListPendingAllocationsQuery must be created via NewListPendingAllocationsQuery constructor",
)

// ListPendingAllocationsQuery lists cargo still on the rail leg towards a store:
// Allocated rows on trains that have not been marked arrived.
type ListPendingAllocationsQuery struct {
	actor   kernel.Actor
	storeID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewListPendingAllocationsQuery(actor kernel.Actor, storeID kernel.UUID) (ListPendingAllocationsQuery, error) {
	if err := errors.Join(actor.Validate(), storeID.Validate()); err != nil {
		return ListPendingAllocationsQuery{}, err
	}
	return ListPendingAllocationsQuery{actor: actor, storeID: storeID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPendingAllocationsQuery) Validate() error {
	return q.guard.Validate(ErrListPendingAllocationsQueryIsNotConstructed)
}

func (q ListPendingAllocationsQuery) Actor() kernel.Actor  { return q.actor }
func (q ListPendingAllocationsQuery) StoreID() kernel.UUID { return q.storeID }
