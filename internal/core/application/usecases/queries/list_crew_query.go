package queries

import (
	"errors"

	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrListCrewQueryIsNotConstructed = errors.New(
	"ListCrewQuery must be created via NewListCrewQuery constructor",
)

// ListCrewQuery returns the fatigue snapshots of a store's employees, optionally
// restricted to one role.
type ListCrewQuery struct {
	actor   kernel.Actor
	storeID kernel.UUID
	role    *employee.Role
	guard   guard.ConstructorGuard
}

func NewListCrewQuery(actor kernel.Actor, storeID kernel.UUID, role *employee.Role) (ListCrewQuery, error) {
	var roleErr error
	if role != nil {
		roleErr = role.Validate()
	}
	if err := errors.Join(actor.Validate(), storeID.Validate(), roleErr); err != nil {
		return ListCrewQuery{}, err
	}
	return ListCrewQuery{actor: actor, storeID: storeID, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCrewQuery) Validate() error {
	return q.guard.Validate(ErrListCrewQueryIsNotConstructed)
}

func (q ListCrewQuery) Actor() kernel.Actor  { return q.actor }
func (q ListCrewQuery) StoreID() kernel.UUID { return q.storeID }
func (q ListCrewQuery) Role() *employee.Role { return q.role }
