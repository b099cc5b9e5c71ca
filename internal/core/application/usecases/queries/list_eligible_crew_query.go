package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrListEligibleCrewQueryIsNotConstructed = errors.New(
	"ListEligibleCrewQuery must be created via NewListEligibleCrewQuery constructor",
)

// ListEligibleCrewQuery returns who may be assigned to a route at a given time,
// split into drivers and assistants. Admins see candidates of every store.
type ListEligibleCrewQuery struct {
	actor   kernel.Actor
	storeID kernel.UUID
	routeID kernel.UUID
	at      time.Time
	guard   guard.ConstructorGuard
}

func NewListEligibleCrewQuery(
	actor kernel.Actor,
	storeID, routeID kernel.UUID,
	at time.Time,
) (ListEligibleCrewQuery, error) {
	var atErr error
	if at.IsZero() {
		atErr = errs.NewValueIsRequiredError("at")
	}
	if err := errors.Join(actor.Validate(), storeID.Validate(), routeID.Validate(), atErr); err != nil {
		return ListEligibleCrewQuery{}, err
	}
	return ListEligibleCrewQuery{
		actor:   actor,
		storeID: storeID,
		routeID: routeID,
		at:      at,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListEligibleCrewQuery) Validate() error {
	return q.guard.Validate(ErrListEligibleCrewQueryIsNotConstructed)
}

func (q ListEligibleCrewQuery) Actor() kernel.Actor  { return q.actor }
func (q ListEligibleCrewQuery) StoreID() kernel.UUID { return q.storeID }
func (q ListEligibleCrewQuery) RouteID() kernel.UUID { return q.routeID }
func (q ListEligibleCrewQuery) At() time.Time        { return q.at }

// EligibleCrew is the roster for one route.
type EligibleCrew struct {
	RouteID       kernel.UUID
	ExpectedHours float64
	Drivers       []CrewView
	Assistants    []CrewView
}
