// Package deliveryrepo persists deliveries together with their crew rows. The
// active-truck and active-employee partial unique indexes are the storage half of
// the double-booking guard.
package deliveryrepo

import (
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type DeliveryDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID `gorm:"type:uuid;not null"`
	RouteID            uuid.UUID `gorm:"type:uuid;not null"`
	TruckID            uuid.UUID `gorm:"type:uuid;not null"`
	StoreID            uuid.UUID `gorm:"type:uuid;not null;index:idx_deliveries_store_status"`
	ScheduledDeparture time.Time `gorm:"not null"`
	ActualDeparture    *time.Time
	ActualArrival      *time.Time
	Status             int       `gorm:"not null;index:idx_deliveries_store_status"`
	CreatedAt          time.Time `gorm:"not null"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

type CrewDTO struct {
	DeliveryID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role          int       `gorm:"not null"`
	AssignedHours float64   `gorm:"not null"`
	ReleasedAt    *time.Time
}

func (CrewDTO) TableName() string {
	return "delivery_crew"
}

func fromDomain(d *delivery.Delivery) (DeliveryDTO, []CrewDTO) {
	dto := DeliveryDTO{
		ID:                 d.ID().Bytes(),
		OrderID:            d.OrderID().Bytes(),
		RouteID:            d.RouteID().Bytes(),
		TruckID:            d.TruckID().Bytes(),
		StoreID:            d.StoreID().Bytes(),
		ScheduledDeparture: d.ScheduledDeparture().UTC(),
		ActualDeparture:    d.ActualDeparture(),
		ActualArrival:      d.ActualArrival(),
		Status:             int(d.Status()),
		CreatedAt:          d.CreatedAt().UTC(),
	}

	crew := make([]CrewDTO, 0, len(d.Crew()))
	for _, c := range d.Crew() {
		crew = append(crew, CrewDTO{
			DeliveryID:    dto.ID,
			EmployeeID:    c.EmployeeID().Bytes(),
			Role:          int(c.Role()),
			AssignedHours: c.AssignedHours(),
			ReleasedAt:    c.ReleasedAt(),
		})
	}
	return dto, crew
}

// ToDomain is shared with the delivery queries.
func ToDomain(dto DeliveryDTO, crewDTOs []CrewDTO) (*delivery.Delivery, error) {
	ids := make([]kernel.UUID, 0, 5)
	for _, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.RouteID, dto.TruckID, dto.StoreID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	crew := make([]delivery.CrewMember, 0, len(crewDTOs))
	for _, c := range crewDTOs {
		employeeID, err := kernel.UUIDFromBytes(c.EmployeeID[:])
		if err != nil {
			return nil, err
		}
		member, err := delivery.RestoreCrewMember(employeeID, employee.Role(c.Role), c.AssignedHours, c.ReleasedAt)
		if err != nil {
			return nil, err
		}
		crew = append(crew, member)
	}

	return delivery.RestoreDelivery(delivery.State{
		ID:                 ids[0],
		OrderID:            ids[1],
		RouteID:            ids[2],
		TruckID:            ids[3],
		StoreID:            ids[4],
		ScheduledDeparture: dto.ScheduledDeparture,
		ActualDeparture:    dto.ActualDeparture,
		ActualArrival:      dto.ActualArrival,
		Status:             delivery.Status(dto.Status),
		CreatedAt:          dto.CreatedAt,
		Crew:               crew,
	})
}
