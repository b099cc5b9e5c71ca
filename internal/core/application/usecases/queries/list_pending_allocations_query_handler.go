package queries

import (
	"context"

	"logistics/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type ListPendingAllocationsQueryHandler struct {
	db *gorm.DB
}

func NewListPendingAllocationsQueryHandler(db *gorm.DB) ListPendingAllocationsQueryHandler {
	return ListPendingAllocationsQueryHandler{db: db}
}

func (h ListPendingAllocationsQueryHandler) Handle(
	ctx context.Context,
	query ListPendingAllocationsQuery,
) ([]AllocationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.Actor().CanActFor(query.StoreID()); err != nil {
		return nil, err
	}

	return listAllocations(ctx, h.db, `o.store_id = ? AND a.status = ?`,
		query.StoreID().Bytes(), int(order.AllocationAllocated))
}
