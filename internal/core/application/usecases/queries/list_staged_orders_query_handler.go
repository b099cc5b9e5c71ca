package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListStagedOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListStagedOrdersQueryHandler(db *gorm.DB) ListStagedOrdersQueryHandler {
	return ListStagedOrdersQueryHandler{db: db}
}

// Handle returns AtStore orders, most urgent first.
func (h ListStagedOrdersQueryHandler) Handle(ctx context.Context, query ListStagedOrdersQuery) ([]StagedOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.Actor().CanActFor(query.StoreID()); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			o.required_by,
			o.status,
			COUNT(a.id) AS staged_allocations,
			COALESCE(SUM(a.allocated_qty * a.unit_space), 0) AS staged_space
		FROM orders o
		LEFT JOIN allocations a ON a.order_id = o.id AND a.status = ?
		WHERE o.store_id = ? AND o.status = ?
		GROUP BY o.id, o.customer_id, o.required_by, o.status
		ORDER BY o.required_by, o.id
	`, int(order.AllocationAtStore), query.StoreID().Bytes(), int(order.AtStore)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]StagedOrderView, 0)
	for rows.Next() {
		var (
			id, customerID uuid.UUID
			requiredBy     time.Time
			status, staged int
			space          decimal.Decimal
		)
		if err = rows.Scan(&id, &customerID, &requiredBy, &status, &staged, &space); err != nil {
			return nil, err
		}

		ids, idErr := toKernelIDs(id, customerID)
		if idErr != nil {
			return nil, idErr
		}
		stagedSpace, spaceErr := kernel.NewSpace(space.Round(4))
		if spaceErr != nil {
			return nil, spaceErr
		}

		orders = append(orders, StagedOrderView{
			OrderID:           ids[0],
			CustomerID:        ids[1],
			RequiredBy:        requiredBy.UTC(),
			Status:            order.Status(status),
			StagedAllocations: staged,
			StagedSpace:       stagedSpace,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
