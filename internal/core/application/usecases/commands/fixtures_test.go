package commands_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/train"
	"logistics/internal/core/domain/model/truck"
	"logistics/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 5, 9, 0, 0, 0, time.UTC)

func space(t *testing.T, v string) kernel.Space {
	t.Helper()
	s, err := kernel.SpaceFromString(v)
	require.NoError(t, err)
	return s
}

func newTrain(t *testing.T, capacity string) *train.Train {
	t.Helper()
	tr, err := train.NewTrain(kernel.NewUUID(), "T1", space(t, capacity), now, now.Add(5*time.Hour))
	require.NoError(t, err)
	return tr
}

func newProduct(t *testing.T, unit string) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), "Crate", space(t, unit))
	require.NoError(t, err)
	return p
}

func newOrder(t *testing.T, storeID kernel.UUID, p *product.Product, qty int) *order.Order {
	t.Helper()
	line, err := order.NewLine(p.ID(), qty)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), storeID, now.Add(48*time.Hour), []*order.Line{line}, now)
	require.NoError(t, err)
	return o
}

// stagedOrder returns an order whose single line is fully allocated and already at the store.
func stagedOrder(t *testing.T, storeID kernel.UUID) *order.Order {
	t.Helper()
	p := newProduct(t, "1")
	tr := newTrain(t, "100")
	o := newOrder(t, storeID, p, 5)
	_, err := o.Allocate(tr.ID(), p.ID(), 5, p.UnitSpace(), now)
	require.NoError(t, err)
	require.Equal(t, 1, o.MarkArrived(tr.ID(), now))
	return o
}

func newEmployee(t *testing.T, role employee.Role, storeID kernel.UUID) *employee.Employee {
	t.Helper()
	e, err := employee.NewEmployee(kernel.NewUUID(), "Crew", role, storeID, now.Add(-time.Hour))
	require.NoError(t, err)
	return e
}

func newRoute(t *testing.T, storeID kernel.UUID, d time.Duration) *route.Route {
	t.Helper()
	r, err := route.NewRoute(kernel.NewUUID(), storeID, "Loop", "North", d)
	require.NoError(t, err)
	return r
}

func newTruck(t *testing.T, storeID kernel.UUID) *truck.Truck {
	t.Helper()
	tr, err := truck.NewTruck(kernel.NewUUID(), storeID, "TR-1")
	require.NoError(t, err)
	return tr
}

func newActor(t *testing.T, role kernel.ActorRole, storeID kernel.UUID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor("tester", role, &storeID)
	require.NoError(t, err)
	return a
}

// dispatched is a Scheduled delivery together with everything it holds.
type dispatched struct {
	store    kernel.UUID
	actor    kernel.Actor
	order    *order.Order
	route    *route.Route
	truck    *truck.Truck
	driver   *employee.Employee
	delivery *delivery.Delivery
}

func newDispatched(t *testing.T) dispatched {
	t.Helper()
	store := kernel.NewUUID()
	f := dispatched{
		store:  store,
		actor:  newActor(t, kernel.ActorRoleManager, store),
		order:  stagedOrder(t, store),
		route:  newRoute(t, store, 4*time.Hour),
		truck:  newTruck(t, store),
		driver: newEmployee(t, employee.Driver, store),
	}
	d, err := services.NewDeliveryDispatcher(services.NewCrewEligibility()).Dispatch(services.DispatchRequest{
		Actor:              f.actor,
		StoreID:            store,
		Order:              f.order,
		Route:              f.route,
		Truck:              f.truck,
		Driver:             f.driver,
		ScheduledDeparture: now.Add(time.Hour),
		Now:                now,
	})
	require.NoError(t, err)
	f.delivery = d
	return f
}
