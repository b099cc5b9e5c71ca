package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/train"
)

// TrainRepository persists trains. Loaded trains carry their utilization, derived
// from the non-cancelled allocations at read time.
type TrainRepository interface {
	Add(ctx context.Context, aggregate *train.Train) error
	Update(ctx context.Context, aggregate *train.Train) error
	Get(ctx context.Context, id kernel.UUID) (*train.Train, error)

	// GetForUpdate locks the train row first and derives utilization afterwards, so
	// concurrent allocations on the same train are serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*train.Train, error)
}
