// Package orderrepo persists the Order aggregate: the order row, its lines and every
// allocation placed for it.
package orderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null"`
	StoreID    uuid.UUID `gorm:"type:uuid;not null;index:idx_orders_store_status"`
	RequiredBy time.Time `gorm:"not null"`
	Status     int       `gorm:"not null;index:idx_orders_store_status"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type LineDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int       `gorm:"not null"`
	Finalized bool      `gorm:"not null"`
}

func (LineDTO) TableName() string {
	return "order_lines"
}

type AllocationDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TrainID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_allocations_train_status"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	AllocatedQty int             `gorm:"not null"`
	UnitSpace    decimal.Decimal `gorm:"type:numeric(14,4);not null"`
	Status       int             `gorm:"not null;index:idx_allocations_train_status"`
	Finalized    bool            `gorm:"not null"`
	DeliveryID   *uuid.UUID      `gorm:"type:uuid;index"`
	AllocatedAt  time.Time       `gorm:"not null"`
	ArrivedAt    *time.Time
}

func (AllocationDTO) TableName() string {
	return "allocations"
}

func fromDomain(o *order.Order) (OrderDTO, []LineDTO, []AllocationDTO) {
	dto := OrderDTO{
		ID:         o.ID().Bytes(),
		CustomerID: o.CustomerID().Bytes(),
		StoreID:    o.StoreID().Bytes(),
		RequiredBy: o.RequiredBy().UTC(),
		Status:     int(o.Status()),
		CreatedAt:  o.CreatedAt().UTC(),
	}

	lines := make([]LineDTO, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, LineDTO{
			OrderID:   dto.ID,
			ProductID: l.ProductID().Bytes(),
			Quantity:  l.Quantity(),
			Finalized: l.IsFinalized(),
		})
	}

	allocations := make([]AllocationDTO, 0, len(o.Allocations()))
	for _, a := range o.Allocations() {
		allocations = append(allocations, allocationFromDomain(a))
	}

	return dto, lines, allocations
}

func allocationFromDomain(a *order.Allocation) AllocationDTO {
	var deliveryID *uuid.UUID
	if id := a.DeliveryID(); id != nil {
		raw := id.Bytes()
		deliveryID = &raw
	}

	return AllocationDTO{
		ID:           a.ID().Bytes(),
		OrderID:      a.OrderID().Bytes(),
		TrainID:      a.TrainID().Bytes(),
		ProductID:    a.ProductID().Bytes(),
		AllocatedQty: a.AllocatedQty(),
		UnitSpace:    a.UnitSpace().Decimal(),
		Status:       int(a.Status()),
		Finalized:    a.IsFinalized(),
		DeliveryID:   deliveryID,
		AllocatedAt:  a.AllocatedAt().UTC(),
		ArrivedAt:    a.ArrivedAt(),
	}
}

func toDomain(dto OrderDTO, lineDTOs []LineDTO, allocationDTOs []AllocationDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(lineDTOs))
	for _, l := range lineDTOs {
		productID, idErr := kernel.UUIDFromBytes(l.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		line, lineErr := order.RestoreLine(productID, l.Quantity, l.Finalized)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	allocations := make([]*order.Allocation, 0, len(allocationDTOs))
	for _, a := range allocationDTOs {
		allocation, allocErr := allocationToDomain(a)
		if allocErr != nil {
			return nil, allocErr
		}
		allocations = append(allocations, allocation)
	}

	return order.RestoreOrder(
		id,
		customerID,
		storeID,
		dto.RequiredBy,
		dto.CreatedAt,
		order.Status(dto.Status),
		lines,
		allocations,
	)
}

func allocationToDomain(dto AllocationDTO) (*order.Allocation, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.TrainID, dto.ProductID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	var deliveryID *kernel.UUID
	if dto.DeliveryID != nil {
		id, err := kernel.UUIDFromBytes((*dto.DeliveryID)[:])
		if err != nil {
			return nil, err
		}
		deliveryID = &id
	}

	unitSpace, err := kernel.NewSpace(dto.UnitSpace)
	if err != nil {
		return nil, err
	}

	return order.RestoreAllocation(order.AllocationState{
		ID:           ids[0],
		OrderID:      ids[1],
		TrainID:      ids[2],
		ProductID:    ids[3],
		AllocatedQty: dto.AllocatedQty,
		UnitSpace:    unitSpace,
		Status:       order.AllocationStatus(dto.Status),
		Finalized:    dto.Finalized,
		DeliveryID:   deliveryID,
		AllocatedAt:  dto.AllocatedAt,
		ArrivedAt:    dto.ArrivedAt,
	})
}
