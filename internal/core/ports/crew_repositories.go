package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
)

// EmployeeRepository persists crew members and their fatigue ledger.
type EmployeeRepository interface {
	Add(ctx context.Context, e *employee.Employee) error
	Update(ctx context.Context, e *employee.Employee) error
	Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error)

	// GetForUpdate locks the given employees in id order and returns them in that
	// order. A missing id yields ObjectNotFound.
	GetForUpdate(ctx context.Context, ids ...kernel.UUID) ([]*employee.Employee, error)

	// ListRestedForUpdate locks OnLeave employees whose rest ended at or before now.
	ListRestedForUpdate(ctx context.Context, now time.Time, limit int) ([]*employee.Employee, error)

	// ResetWeeklyHours zeroes total_hours_week for every employee.
	ResetWeeklyHours(ctx context.Context) (int64, error)
}

// DeliveryRepository persists deliveries and their crew. Add reports AlreadyAssigned
// when the truck or a crew member is already on an active delivery.
type DeliveryRepository interface {
	Add(ctx context.Context, d *delivery.Delivery) error
	Update(ctx context.Context, d *delivery.Delivery) error
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)
}
