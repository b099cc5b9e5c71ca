package services_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/train"
	"logistics/internal/core/domain/model/truck"

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

func newEmployee(t *testing.T, role employee.Role, storeID kernel.UUID) *employee.Employee {
	t.Helper()
	e, err := employee.NewEmployee(kernel.NewUUID(), "Crew", role, storeID, now.Add(-time.Hour))
	require.NoError(t, err)
	return e
}

func restoreEmployee(t *testing.T, s employee.State) *employee.Employee {
	t.Helper()
	if s.Name == "" {
		s.Name = "Crew"
	}
	e, err := employee.RestoreEmployee(s)
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
	tr, err := truck.NewTruck(kernel.NewUUID(), storeID, "TR-"+kernel.NewUUID().String()[:4])
	require.NoError(t, err)
	return tr
}

func newActor(t *testing.T, role kernel.ActorRole, storeID kernel.UUID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor("tester", role, &storeID)
	require.NoError(t, err)
	return a
}
