package employeerepo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"logistics/internal/adapters/out/postgres/sqlkit"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements ports.EmployeeRepository using GORM.
type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

func (r *GormEmployeeRepository) Add(ctx context.Context, e *employee.Employee) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the mutable part of the employee: status and fatigue ledger.
func (r *GormEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	result := r.db.WithContext(ctx).Model(&EmployeeDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":                 dto.Status,
		"consecutive_deliveries": dto.ConsecutiveDeliveries,
		"total_hours_week":       dto.TotalHoursWeek,
		"next_available_time":    dto.NextAvailableTime,
		"last_delivery_time":     dto.LastDeliveryTime,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormEmployeeRepository) Get(ctx context.Context, id kernel.UUID) (*employee.Employee, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EmployeeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("employee", id.String())
		}
		return nil, err
	}
	return ToDomain(dto)
}

// GetForUpdate locks the employees in id order. Duplicate ids are collapsed.
func (r *GormEmployeeRepository) GetForUpdate(ctx context.Context, ids ...kernel.UUID) ([]*employee.Employee, error) {
	if len(ids) == 0 {
		return []*employee.Employee{}, nil
	}

	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b kernel.UUID) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	sorted = slices.CompactFunc(sorted, kernel.UUID.IsEqual)

	raw := make([]uuid.UUID, 0, len(sorted))
	for _, id := range sorted {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []EmployeeDTO
	if err := sqlkit.ForUpdate(r.db.WithContext(ctx)).
		Where("id IN ?", raw).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]EmployeeDTO, len(dtos))
	for _, dto := range dtos {
		byID[dto.ID] = dto
	}

	employees := make([]*employee.Employee, 0, len(sorted))
	for _, id := range sorted {
		dto, ok := byID[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("employee", id.String())
		}
		e, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}

// ListRestedForUpdate locks up to limit OnLeave employees whose rest is over.
func (r *GormEmployeeRepository) ListRestedForUpdate(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*employee.Employee, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []EmployeeDTO
	if err := sqlkit.ForUpdate(r.db.WithContext(ctx)).
		Where("status = ? AND next_available_time <= ?", int(employee.OnLeave), now.UTC()).
		Order("id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	employees := make([]*employee.Employee, 0, len(dtos))
	for _, dto := range dtos {
		e, err := ToDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("restore employee %s: %w", dto.ID, err)
		}
		employees = append(employees, e)
	}
	return employees, nil
}

// ResetWeeklyHours zeroes the weekly counter of every employee that has worked.
func (r *GormEmployeeRepository) ResetWeeklyHours(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&EmployeeDTO{}).
		Where("total_hours_week > 0").
		Update("total_hours_week", 0)
	return result.RowsAffected, result.Error
}
