package queries

import (
	"errors"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

// ListDeliveriesQuery lists a store's deliveries, newest departure first. Route and
// status filters are optional.
type ListDeliveriesQuery struct {
	actor   kernel.Actor
	storeID kernel.UUID
	routeID *kernel.UUID
	status  *delivery.Status
	guard   guard.ConstructorGuard
}

func NewListDeliveriesQuery(
	actor kernel.Actor,
	storeID kernel.UUID,
	routeID *kernel.UUID,
	status *delivery.Status,
) (ListDeliveriesQuery, error) {
	var routeErr, statusErr error
	if routeID != nil {
		routeErr = routeID.Validate()
	}
	if status != nil {
		statusErr = status.Validate()
	}
	if err := errors.Join(actor.Validate(), storeID.Validate(), routeErr, statusErr); err != nil {
		return ListDeliveriesQuery{}, err
	}
	return ListDeliveriesQuery{
		actor:   actor,
		storeID: storeID,
		routeID: routeID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

func (q ListDeliveriesQuery) Actor() kernel.Actor      { return q.actor }
func (q ListDeliveriesQuery) StoreID() kernel.UUID     { return q.storeID }
func (q ListDeliveriesQuery) RouteID() *kernel.UUID    { return q.routeID }
func (q ListDeliveriesQuery) Status() *delivery.Status { return q.status }
