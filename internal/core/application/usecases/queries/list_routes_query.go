package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrListRoutesQueryIsNotConstructed = errors.New(
	"ListRoutesQuery must be created via NewListRoutesQuery constructor",
)

type ListRoutesQuery struct {
	actor   kernel.Actor
	storeID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewListRoutesQuery(actor kernel.Actor, storeID kernel.UUID) (ListRoutesQuery, error) {
	if err := errors.Join(actor.Validate(), storeID.Validate()); err != nil {
		return ListRoutesQuery{}, err
	}
	return ListRoutesQuery{actor: actor, storeID: storeID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListRoutesQuery) Validate() error {
	return q.guard.Validate(ErrListRoutesQueryIsNotConstructed)
}

func (q ListRoutesQuery) Actor() kernel.Actor  { return q.actor }
func (q ListRoutesQuery) StoreID() kernel.UUID { return q.storeID }
