package queries

import (
	"database/sql"
	"time"

	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// allocationColumns is the select list matching allocationRow.
const allocationColumns = `
	a.id, a.order_id, o.store_id, a.train_id, t.code, t.scheduled_arrival, a.product_id,
	a.allocated_qty, a.unit_space, a.status, a.finalized, a.delivery_id, a.allocated_at, a.arrived_at`

type allocationRow struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	StoreID      uuid.UUID
	TrainID      uuid.UUID
	TrainCode    string
	TrainArrival time.Time
	ProductID    uuid.UUID
	AllocatedQty int
	UnitSpace    decimal.Decimal
	Status       int
	Finalized    bool
	DeliveryID   uuid.NullUUID
	AllocatedAt  time.Time
	ArrivedAt    sql.NullTime
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAllocation(s scanner) (AllocationView, error) {
	var r allocationRow
	if err := s.Scan(
		&r.ID, &r.OrderID, &r.StoreID, &r.TrainID, &r.TrainCode, &r.TrainArrival, &r.ProductID,
		&r.AllocatedQty, &r.UnitSpace, &r.Status, &r.Finalized, &r.DeliveryID, &r.AllocatedAt, &r.ArrivedAt,
	); err != nil {
		return AllocationView{}, err
	}

	ids, err := toKernelIDs(r.ID, r.OrderID, r.StoreID, r.TrainID, r.ProductID)
	if err != nil {
		return AllocationView{}, err
	}
	unitSpace, err := kernel.NewSpace(r.UnitSpace)
	if err != nil {
		return AllocationView{}, err
	}

	view := AllocationView{
		ID:           ids[0],
		OrderID:      ids[1],
		StoreID:      ids[2],
		TrainID:      ids[3],
		TrainCode:    r.TrainCode,
		TrainArrival: r.TrainArrival.UTC(),
		ProductID:    ids[4],
		AllocatedQty: r.AllocatedQty,
		UnitSpace:    unitSpace,
		Space:        unitSpace.Times(r.AllocatedQty),
		Status:       order.AllocationStatus(r.Status),
		Finalized:    r.Finalized,
		AllocatedAt:  r.AllocatedAt.UTC(),
		ArrivedAt:    nullTime(r.ArrivedAt),
	}
	if r.DeliveryID.Valid {
		id, idErr := kernel.UUIDFromBytes(r.DeliveryID.UUID[:])
		if idErr != nil {
			return AllocationView{}, idErr
		}
		view.DeliveryID = &id
	}
	return view, nil
}

// employeeRow mirrors the employees table for gorm Scan.
type employeeRow struct {
	ID                    uuid.UUID
	Name                  string
	Role                  int
	StoreID               uuid.UUID
	Status                int
	ConsecutiveDeliveries int
	TotalHoursWeek        float64
	NextAvailableTime     time.Time
	LastDeliveryTime      *time.Time
}

func (r employeeRow) toDomain() (*employee.Employee, error) {
	ids, err := toKernelIDs(r.ID, r.StoreID)
	if err != nil {
		return nil, err
	}
	return employee.RestoreEmployee(employee.State{
		ID:                    ids[0],
		Name:                  r.Name,
		Role:                  employee.Role(r.Role),
		StoreID:               ids[1],
		Status:                employee.Status(r.Status),
		ConsecutiveDeliveries: r.ConsecutiveDeliveries,
		TotalHoursWeek:        r.TotalHoursWeek,
		NextAvailableTime:     r.NextAvailableTime,
		LastDeliveryTime:      r.LastDeliveryTime,
	})
}

func toKernelIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
