package postgres

import (
	"fmt"

	"logistics/internal/adapters/out/postgres/deliveryrepo"
	"logistics/internal/adapters/out/postgres/employeerepo"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/adapters/out/postgres/outboxrepo"
	"logistics/internal/adapters/out/postgres/productrepo"
	"logistics/internal/adapters/out/postgres/routerepo"
	"logistics/internal/adapters/out/postgres/trainrepo"
	"logistics/internal/adapters/out/postgres/truckrepo"

	"gorm.io/gorm"
)

// activeAssignmentIndexes are the partial unique indexes that reject a second active
// booking of a truck or an employee. The syntax is shared by PostgreSQL and SQLite.
var activeAssignmentIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_deliveries_active_truck ON deliveries (truck_id) WHERE status IN (1, 2)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_delivery_crew_active_employee ON delivery_crew (employee_id) WHERE released_at IS NULL`,
}

// AutoMigrate creates the schema from the DTOs. It backs the SQLite mode; PostgreSQL
// deployments run the goose migrations instead.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&productrepo.ProductDTO{},
		&trainrepo.TrainDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&orderrepo.AllocationDTO{},
		&routerepo.RouteDTO{},
		&truckrepo.TruckDTO{},
		&employeerepo.EmployeeDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.CrewDTO{},
		&outboxrepo.OutboxDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range activeAssignmentIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
