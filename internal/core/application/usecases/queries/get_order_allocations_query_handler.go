package queries

import (
	"context"
	"database/sql"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderAllocationsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderAllocationsQueryHandler(db *gorm.DB) GetOrderAllocationsQueryHandler {
	return GetOrderAllocationsQueryHandler{db: db}
}

func (h GetOrderAllocationsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderAllocationsQuery,
) (OrderAllocations, error) {
	if err := query.Validate(); err != nil {
		return OrderAllocations{}, err
	}

	db := h.db.WithContext(ctx)

	var (
		rawStore uuid.UUID
		status   int
	)
	err := db.Raw(`SELECT store_id, status FROM orders WHERE id = ?`, query.OrderID().Bytes()).
		Row().Scan(&rawStore, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderAllocations{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderAllocations{}, err
	}

	storeID, err := kernel.UUIDFromBytes(rawStore[:])
	if err != nil {
		return OrderAllocations{}, err
	}
	if err = query.Actor().CanActFor(storeID); err != nil {
		return OrderAllocations{}, err
	}

	lines, err := h.lines(ctx, query.OrderID())
	if err != nil {
		return OrderAllocations{}, err
	}

	allocations, err := listAllocations(ctx, db, `a.order_id = ?`, query.OrderID().Bytes())
	if err != nil {
		return OrderAllocations{}, err
	}

	return OrderAllocations{
		OrderID:     query.OrderID(),
		StoreID:     storeID,
		Status:      order.Status(status),
		Lines:       lines,
		Allocations: allocations,
	}, nil
}

func (h GetOrderAllocationsQueryHandler) lines(ctx context.Context, orderID kernel.UUID) ([]LineCoverage, error) {
	type lineRow struct {
		ProductID uuid.UUID
		Quantity  int
		Covered   int
		Finalized bool
	}

	var rows []lineRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.product_id,
			l.quantity,
			COALESCE((
				SELECT SUM(a.allocated_qty)
				FROM allocations a
				WHERE a.order_id = l.order_id AND a.product_id = l.product_id AND a.status <> ?
			), 0) AS covered,
			l.finalized
		FROM order_lines l
		WHERE l.order_id = ?
		ORDER BY l.product_id
	`, int(order.AllocationCancelled), orderID.Bytes()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	lines := make([]LineCoverage, 0, len(rows))
	for _, r := range rows {
		productID, idErr := kernel.UUIDFromBytes(r.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		lines = append(lines, LineCoverage{
			ProductID: productID,
			Quantity:  r.Quantity,
			Covered:   r.Covered,
			Finalized: r.Finalized,
		})
	}
	return lines, nil
}
