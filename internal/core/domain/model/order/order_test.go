package order_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 5, 9, 0, 0, 0, time.UTC)

type fixture struct {
	order    *order.Order
	productA kernel.UUID
	productB kernel.UUID
	unit     kernel.Space
}

func newFixture(t *testing.T, qtyA, qtyB int) fixture {
	t.Helper()
	f := fixture{productA: kernel.NewUUID(), productB: kernel.NewUUID()}

	lineA, err := order.NewLine(f.productA, qtyA)
	require.NoError(t, err)
	lines := []*order.Line{lineA}
	if qtyB > 0 {
		lineB, err := order.NewLine(f.productB, qtyB)
		require.NoError(t, err)
		lines = append(lines, lineB)
	}

	f.order, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now.Add(72*time.Hour), lines, now)
	require.NoError(t, err)
	f.unit, err = kernel.SpaceFromString("2.5")
	require.NoError(t, err)
	return f
}

func TestNewOrder(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		f := newFixture(t, 5, 0)
		assert.Equal(t, order.Pending, f.order.Status())
		assert.NoError(t, f.order.Validate())
		assert.Len(t, f.order.Lines(), 1)
	})

	t.Run("rejects duplicate products and empty lines", func(t *testing.T) {
		product := kernel.NewUUID()
		l1, _ := order.NewLine(product, 1)
		l2, _ := order.NewLine(product, 2)

		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now, []*order.Line{l1, l2}, now)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now, nil, now)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects non positive line quantity", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), 0)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Allocate_LineScenario(t *testing.T) {
	f := newFixture(t, 5, 0)
	trainID := kernel.NewUUID()

	first, err := f.order.Allocate(trainID, f.productA, 3, f.unit, now)
	require.NoError(t, err)
	assert.False(t, first.IsFinalized())
	assert.Equal(t, order.PartiallyAllocated, f.order.Status())
	assert.Equal(t, "7.5", first.Space().String())

	second, err := f.order.Allocate(trainID, f.productA, 2, f.unit, now)
	require.NoError(t, err)
	assert.True(t, second.IsFinalized())
	assert.True(t, first.IsFinalized(), "finalized is propagated to every allocation of the line")
	line, err := f.order.Line(f.productA)
	require.NoError(t, err)
	assert.True(t, line.IsFinalized())
	assert.Equal(t, order.Allocated, f.order.Status())

	_, err = f.order.Allocate(trainID, f.productA, 1, f.unit, now)
	require.ErrorIs(t, err, errs.ErrOverAllocation)
	assert.Contains(t, err.Error(), "requested 1, remaining 0")
	assert.Equal(t, 5, f.order.Coverage(f.productA))
	assert.Len(t, f.order.Allocations(), 2)

	events := f.order.DomainEvents()
	require.Len(t, events, 2)
	created, ok := events[1].(order.AllocationCreated)
	require.True(t, ok)
	assert.True(t, created.Finalized)
	assert.Equal(t, "Allocated", created.OrderStatus)
}

func TestOrder_Allocate_Rejections(t *testing.T) {
	f := newFixture(t, 5, 0)

	_, err := f.order.Allocate(kernel.NewUUID(), f.productA, 0, f.unit, now)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = f.order.Allocate(kernel.NewUUID(), kernel.NewUUID(), 1, f.unit, now)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = f.order.Allocate(kernel.NewUUID(), f.productA, 1, kernel.ZeroSpace(), now)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Empty(t, f.order.Allocations())
}

func TestOrder_StatusDerivation(t *testing.T) {
	f := newFixture(t, 2, 1)
	trainA := kernel.NewUUID()
	trainB := kernel.NewUUID()

	_, err := f.order.Allocate(trainA, f.productA, 2, f.unit, now)
	require.NoError(t, err)
	assert.Equal(t, order.PartiallyAllocated, f.order.Status(), "second line not finalized")

	_, err = f.order.Allocate(trainB, f.productB, 1, f.unit, now)
	require.NoError(t, err)
	assert.Equal(t, order.Allocated, f.order.Status())

	assert.Equal(t, 1, f.order.MarkArrived(trainA, now))
	assert.Equal(t, order.Allocated, f.order.Status(), "least advanced stage wins")

	assert.Equal(t, 1, f.order.MarkArrived(trainB, now))
	assert.Equal(t, order.AtStore, f.order.Status())

	deliveryID := kernel.NewUUID()
	n, err := f.order.DispatchStaged(deliveryID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, order.Dispatched, f.order.Status())

	assert.Equal(t, 2, f.order.CompleteDelivery(deliveryID))
	assert.Equal(t, order.Delivered, f.order.Status())
	assert.Equal(t, 0, f.order.CompleteDelivery(deliveryID))

	_, err = f.order.Allocate(trainA, f.productA, 1, f.unit, now)
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
}

func TestOrder_MarkArrived_Idempotent(t *testing.T) {
	f := newFixture(t, 6, 0)
	trainID := kernel.NewUUID()
	for i := 0; i < 3; i++ {
		_, err := f.order.Allocate(trainID, f.productA, 1, f.unit, now)
		require.NoError(t, err)
	}
	_, err := f.order.Allocate(kernel.NewUUID(), f.productA, 1, f.unit, now)
	require.NoError(t, err)

	assert.Equal(t, 3, f.order.MarkArrived(trainID, now))
	assert.Equal(t, 0, f.order.MarkArrived(trainID, now.Add(time.Minute)))

	for _, a := range f.order.Allocations() {
		if a.TrainID().IsEqual(trainID) {
			assert.Equal(t, order.AllocationAtStore, a.Status())
			require.NotNil(t, a.ArrivedAt())
			assert.Equal(t, now, *a.ArrivedAt())
		} else {
			assert.Equal(t, order.AllocationAllocated, a.Status())
			assert.Nil(t, a.ArrivedAt())
		}
	}
}

func TestOrder_DispatchAndRevert(t *testing.T) {
	f := newFixture(t, 1, 0)
	trainID := kernel.NewUUID()
	deliveryID := kernel.NewUUID()

	_, err := f.order.Allocate(trainID, f.productA, 1, f.unit, now)
	require.NoError(t, err)

	_, err = f.order.DispatchStaged(deliveryID)
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)

	f.order.MarkArrived(trainID, now)
	_, err = f.order.DispatchStaged(deliveryID)
	require.NoError(t, err)
	allocation := f.order.Allocations()[0]
	require.NotNil(t, allocation.DeliveryID())
	assert.True(t, allocation.DeliveryID().IsEqual(deliveryID))

	assert.Equal(t, 0, f.order.RevertDispatch(kernel.NewUUID()))
	assert.Equal(t, 1, f.order.RevertDispatch(deliveryID))
	assert.Nil(t, allocation.DeliveryID())
	assert.Equal(t, order.AllocationAtStore, allocation.Status())
	assert.Equal(t, order.AtStore, f.order.Status())
	assert.True(t, f.order.HasStagedAllocations())
}

func TestOrder_CancelTrainAllocations(t *testing.T) {
	f := newFixture(t, 4, 0)
	cancelledTrain := kernel.NewUUID()
	otherTrain := kernel.NewUUID()

	_, err := f.order.Allocate(cancelledTrain, f.productA, 3, f.unit, now)
	require.NoError(t, err)
	kept, err := f.order.Allocate(otherTrain, f.productA, 1, f.unit, now)
	require.NoError(t, err)
	require.True(t, kept.IsFinalized())

	assert.Equal(t, 1, f.order.CancelTrainAllocations(cancelledTrain))
	assert.Equal(t, 1, f.order.Coverage(f.productA))
	assert.False(t, kept.IsFinalized())
	assert.Equal(t, order.PartiallyAllocated, f.order.Status())

	remaining, err := f.order.Remaining(f.productA)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)

	f.order.MarkArrived(otherTrain, now)
	assert.Equal(t, 0, f.order.CancelTrainAllocations(otherTrain), "arrived cargo is not cancelled")
}

func TestRestoreOrder_CancelledIsSticky(t *testing.T) {
	product := kernel.NewUUID()
	line, _ := order.RestoreLine(product, 2, false)

	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now, now,
		order.Cancelled, []*order.Line{line}, nil)
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, o.Status())

	_, err = o.Allocate(kernel.NewUUID(), product, 1, kernel.ZeroSpace(), now)
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
}

func TestRestoreOrder_RejectsForeignAllocation(t *testing.T) {
	product := kernel.NewUUID()
	line, _ := order.RestoreLine(product, 2, false)
	unit, _ := kernel.SpaceFromString("1")
	foreign, err := order.RestoreAllocation(order.AllocationState{
		ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), TrainID: kernel.NewUUID(), ProductID: product,
		AllocatedQty: 1, UnitSpace: unit, Status: order.AllocationAllocated, AllocatedAt: now,
	})
	require.NoError(t, err)

	_, err = order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now, now,
		order.Pending, []*order.Line{line}, []*order.Allocation{foreign})
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
