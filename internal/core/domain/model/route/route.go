// Package route holds the store route reference used to size crew assignments.
package route

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")

// Route is a serviceable area of a store with a maximum allowed delivery duration.
// The duration is what a crew member is booked for when assigned to the route.
type Route struct {
	id              kernel.UUID
	storeID         kernel.UUID
	name            string
	area            string
	maxDeliveryTime time.Duration
	guard           guard.ConstructorGuard
}

func NewRoute(id, storeID kernel.UUID, name, area string, maxDeliveryTime time.Duration) (*Route, error) {
	r := &Route{guard: guard.NewConstructorGuard(), area: strings.TrimSpace(area)}
	if err := errors.Join(
		id.Validate(),
		storeID.Validate(),
		r.setName(name),
		r.setMaxDeliveryTime(maxDeliveryTime),
	); err != nil {
		return nil, err
	}
	r.id = id
	r.storeID = storeID
	return r, nil
}

func (r *Route) Validate() error {
	if r == nil {
		return ErrRouteIsNotConstructed
	}
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r *Route) ID() kernel.UUID                { return r.id }
func (r *Route) StoreID() kernel.UUID           { return r.storeID }
func (r *Route) Name() string                   { return r.name }
func (r *Route) Area() string                   { return r.area }
func (r *Route) MaxDeliveryTime() time.Duration { return r.maxDeliveryTime }

// ExpectedHours is the route's maximum delivery time expressed in hours.
func (r *Route) ExpectedHours() float64 {
	return r.maxDeliveryTime.Hours()
}

func (r *Route) BelongsTo(storeID kernel.UUID) bool {
	return r.storeID.IsEqual(storeID)
}

func (r *Route) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Route) setMaxDeliveryTime(d time.Duration) error {
	if d <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("max_delivery_time", fmt.Errorf("%s is not positive", d))
	}
	r.maxDeliveryTime = d
	return nil
}
