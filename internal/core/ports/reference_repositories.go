package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/product"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/truck"
)

// ProductRepository reads the product catalog. Add is used by imports and tests.
type ProductRepository interface {
	Add(ctx context.Context, p *product.Product) error
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
}

// RouteRepository reads store routes.
type RouteRepository interface {
	Add(ctx context.Context, r *route.Route) error
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)
}

// TruckRepository persists the truck availability flag.
type TruckRepository interface {
	Add(ctx context.Context, t *truck.Truck) error
	Update(ctx context.Context, t *truck.Truck) error
	Get(ctx context.Context, id kernel.UUID) (*truck.Truck, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*truck.Truck, error)
}
