// Package commands contains the write operations of the logistics core. Every
// handler follows the same shape: validate the command, open a unit of work, lock
// the aggregates in the fixed order train → order → truck → employees → delivery,
// run the domain service and commit. The deferred rollback releases the transaction
// on every exit path.
package commands

import (
	"context"

	"logistics/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	TrainRepoFactory interface {
		TrainRepository() ports.TrainRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	TruckRepoFactory interface {
		TruckRepository() ports.TruckRepository
	}

	EmployeeRepoFactory interface {
		EmployeeRepository() ports.EmployeeRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// TrainUoW manages transactions that touch trains only.
	TrainUoW interface {
		TxManager
		TrainRepoFactory
	}

	TrainUoWFactory interface {
		Create() TrainUoW
	}

	// AllocationUoW manages the rail leg: trains, orders and the product catalog.
	AllocationUoW interface {
		TxManager
		TrainRepoFactory
		OrderRepoFactory
		ProductRepoFactory
	}

	AllocationUoWFactory interface {
		Create() AllocationUoW
	}

	// DispatchUoW manages the road leg: orders, routes, trucks, crew and deliveries.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		RouteRepoFactory
		TruckRepoFactory
		EmployeeRepoFactory
		DeliveryRepoFactory
	}

	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// CrewUoW manages crew maintenance.
	CrewUoW interface {
		TxManager
		EmployeeRepoFactory
	}

	CrewUoWFactory interface {
		Create() CrewUoW
	}
)
