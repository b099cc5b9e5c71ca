package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderRepository persists the Order aggregate together with its lines and allocations.
type OrderRepository interface {
	// Add persists a new order with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order status, line finalization and all allocations.
	// New allocations are inserted, existing ones updated.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads an order and holds its row lock until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByTrainForUpdate loads every order with an allocation on trainID,
	// locking the order rows in id order.
	ListByTrainForUpdate(ctx context.Context, trainID kernel.UUID) ([]*order.Order, error)
}
