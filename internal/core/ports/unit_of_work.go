// Package ports defines the contracts between the logistics core and its adapters:
// repositories, the unit of work and the event publisher.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from it after
// Begin share the transaction; domain events of the aggregates they save are written
// to the outbox on Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active.
	Rollback(ctx context.Context) error

	TrainRepository() TrainRepository
	OrderRepository() OrderRepository
	ProductRepository() ProductRepository
	RouteRepository() RouteRepository
	TruckRepository() TruckRepository
	EmployeeRepository() EmployeeRepository
	DeliveryRepository() DeliveryRepository
}
