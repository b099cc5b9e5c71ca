// Package employeerepo persists crew members with their fatigue ledger.
package employeerepo

import (
	"time"

	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type EmployeeDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                  string    `gorm:"not null"`
	Role                  int       `gorm:"not null;index:idx_employees_store_role"`
	StoreID               uuid.UUID `gorm:"type:uuid;not null;index:idx_employees_store_role"`
	Status                int       `gorm:"not null;index:idx_employees_store_role"`
	ConsecutiveDeliveries int       `gorm:"not null"`
	TotalHoursWeek        float64   `gorm:"not null"`
	NextAvailableTime     time.Time `gorm:"not null"`
	LastDeliveryTime      *time.Time
}

func (EmployeeDTO) TableName() string {
	return "employees"
}

func fromDomain(e *employee.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:                    e.ID().Bytes(),
		Name:                  e.Name(),
		Role:                  int(e.Role()),
		StoreID:               e.StoreID().Bytes(),
		Status:                int(e.Status()),
		ConsecutiveDeliveries: e.ConsecutiveDeliveries(),
		TotalHoursWeek:        e.TotalHoursWeek(),
		NextAvailableTime:     e.NextAvailableTime().UTC(),
		LastDeliveryTime:      e.LastDeliveryTime(),
	}
}

// ToDomain is shared with the crew queries.
func ToDomain(dto EmployeeDTO) (*employee.Employee, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	return employee.RestoreEmployee(employee.State{
		ID:                    id,
		Name:                  dto.Name,
		Role:                  employee.Role(dto.Role),
		StoreID:               storeID,
		Status:                employee.Status(dto.Status),
		ConsecutiveDeliveries: dto.ConsecutiveDeliveries,
		TotalHoursWeek:        dto.TotalHoursWeek,
		NextAvailableTime:     dto.NextAvailableTime,
		LastDeliveryTime:      dto.LastDeliveryTime,
	})
}
