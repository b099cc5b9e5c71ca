package services_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/train"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityLedger_Allocate_TrainCapacity(t *testing.T) {
	store := kernel.NewUUID()
	tr := newTrain(t, "100")
	p := newProduct(t, "12")
	o := newOrder(t, store, p, 20)
	ledger := services.NewCapacityLedger()

	allocation, err := ledger.Allocate(services.AllocateRequest{
		Train: tr, Order: o, Product: p, StoreID: store, Quantity: 8, At: now,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, allocation.AllocatedQty())
	assert.Equal(t, "96", tr.Used().String())

	_, err = ledger.Allocate(services.AllocateRequest{
		Train: tr, Order: o, Product: p, StoreID: store, Quantity: 1, At: now,
	})
	require.ErrorIs(t, err, errs.ErrCapacityExceeded)
	assert.Equal(t, "96", tr.Used().String())
	assert.Equal(t, 8, o.Coverage(p.ID()), "rejected allocation leaves the order untouched")
}

func TestCapacityLedger_Allocate_LineQuantity(t *testing.T) {
	store := kernel.NewUUID()
	tr := newTrain(t, "1000")
	p := newProduct(t, "1")
	o := newOrder(t, store, p, 5)
	ledger := services.NewCapacityLedger()

	allocate := func(qty int) (*order.Allocation, error) {
		return ledger.Allocate(services.AllocateRequest{
			Train: tr, Order: o, Product: p, StoreID: store, Quantity: qty, At: now,
		})
	}

	a, err := allocate(3)
	require.NoError(t, err)
	assert.False(t, a.IsFinalized())

	a, err = allocate(2)
	require.NoError(t, err)
	assert.True(t, a.IsFinalized())

	_, err = allocate(1)
	require.ErrorIs(t, err, errs.ErrOverAllocation)
	assert.Equal(t, "5", tr.Used().String())
}

func TestCapacityLedger_Allocate_Preconditions(t *testing.T) {
	store := kernel.NewUUID()
	p := newProduct(t, "10")
	ledger := services.NewCapacityLedger()

	t.Run("capacity is checked before the line", func(t *testing.T) {
		tr := newTrain(t, "15")
		o := newOrder(t, store, p, 1)
		_, err := ledger.Allocate(services.AllocateRequest{Train: tr, Order: o, Product: p, StoreID: store, Quantity: 2, At: now})
		assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})

	t.Run("non positive quantity", func(t *testing.T) {
		_, err := ledger.Allocate(services.AllocateRequest{
			Train: newTrain(t, "100"), Order: newOrder(t, store, p, 1), Product: p, StoreID: store, Quantity: 0,
		})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("other store", func(t *testing.T) {
		_, err := ledger.Allocate(services.AllocateRequest{
			Train: newTrain(t, "100"), Order: newOrder(t, store, p, 1), Product: p, StoreID: kernel.NewUUID(), Quantity: 1,
		})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("product not on the order", func(t *testing.T) {
		_, err := ledger.Allocate(services.AllocateRequest{
			Train: newTrain(t, "100"), Order: newOrder(t, store, p, 1), Product: newProduct(t, "1"), StoreID: store, Quantity: 1,
		})
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("cancelled train", func(t *testing.T) {
		tr := newTrain(t, "100")
		require.NoError(t, tr.Cancel(now, 0))
		_, err := ledger.Allocate(services.AllocateRequest{Train: tr, Order: newOrder(t, store, p, 1), Product: p, StoreID: store, Quantity: 1})
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("unit space override", func(t *testing.T) {
		tr := newTrain(t, "100")
		override := space(t, "0.5")
		a, err := ledger.Allocate(services.AllocateRequest{
			Train: tr, Order: newOrder(t, store, p, 4), Product: p, StoreID: store, Quantity: 4, UnitSpace: &override, At: now,
		})
		require.NoError(t, err)
		assert.Equal(t, "0.5", a.UnitSpace().String())
		assert.Equal(t, "2", tr.Used().String())

		zero := kernel.ZeroSpace()
		_, err = ledger.Allocate(services.AllocateRequest{
			Train: tr, Order: newOrder(t, store, p, 4), Product: p, StoreID: store, Quantity: 1, UnitSpace: &zero,
		})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCapacityLedger_MarkArrived(t *testing.T) {
	store := kernel.NewUUID()
	tr := newTrain(t, "100")
	p := newProduct(t, "1")
	o1 := newOrder(t, store, p, 2)
	o2 := newOrder(t, store, p, 1)
	ledger := services.NewCapacityLedger()

	for _, req := range []struct {
		o   *order.Order
		qty int
	}{{o1, 1}, {o1, 1}, {o2, 1}} {
		_, err := ledger.Allocate(services.AllocateRequest{Train: tr, Order: req.o, Product: p, StoreID: store, Quantity: req.qty, At: now})
		require.NoError(t, err)
	}

	moved, err := ledger.MarkArrived(tr, []*order.Order{o1, o2}, now)
	require.NoError(t, err)
	assert.Equal(t, 3, moved)
	assert.Equal(t, order.AtStore, o1.Status())

	moved, err = ledger.MarkArrived(tr, []*order.Order{o1, o2}, now)
	require.NoError(t, err)
	assert.Zero(t, moved)
}

func TestCapacityLedger_CancelTrain(t *testing.T) {
	store := kernel.NewUUID()
	tr := newTrain(t, "100")
	p := newProduct(t, "10")
	o := newOrder(t, store, p, 3)
	ledger := services.NewCapacityLedger()

	_, err := ledger.Allocate(services.AllocateRequest{Train: tr, Order: o, Product: p, StoreID: store, Quantity: 3, At: now})
	require.NoError(t, err)
	require.Equal(t, order.Allocated, o.Status())

	cancelled, err := ledger.CancelTrain(tr, []*order.Order{o}, now)
	require.NoError(t, err)
	assert.Equal(t, 1, cancelled)
	assert.Equal(t, train.Cancelled, tr.Status())
	assert.Equal(t, order.Pending, o.Status())
	assert.Zero(t, o.Coverage(p.ID()))

	_, err = ledger.CancelTrain(tr, []*order.Order{o}, now)
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
}
