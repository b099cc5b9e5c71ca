package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewListDeliveriesQueryHandler(db *gorm.DB) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{db: db}
}

type deliveryRow struct {
	ID                 uuid.UUID
	OrderID            uuid.UUID
	RouteID            uuid.UUID
	TruckID            uuid.UUID
	StoreID            uuid.UUID
	Status             int
	ScheduledDeparture time.Time
	ActualDeparture    *time.Time
	ActualArrival      *time.Time
	CreatedAt          time.Time
}

type crewRow struct {
	DeliveryID    uuid.UUID
	EmployeeID    uuid.UUID
	Role          int
	AssignedHours float64
	ReleasedAt    *time.Time
}

func (h ListDeliveriesQueryHandler) Handle(ctx context.Context, query ListDeliveriesQuery) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.Actor().CanActFor(query.StoreID()); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	q := db.Table("deliveries").Where("store_id = ?", query.StoreID().Bytes())
	if query.RouteID() != nil {
		q = q.Where("route_id = ?", query.RouteID().Bytes())
	}
	if query.Status() != nil {
		q = q.Where("status = ?", int(*query.Status()))
	}

	var rows []deliveryRow
	if err := q.Select(`id, order_id, route_id, truck_id, store_id, status,
		scheduled_departure, actual_departure, actual_arrival, created_at`).
		Order("scheduled_departure DESC, id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []DeliveryView{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	var crew []crewRow
	if err := db.Table("delivery_crew").
		Select("delivery_id, employee_id, role, assigned_hours, released_at").
		Where("delivery_id IN ?", ids).
		Order("role, employee_id").
		Scan(&crew).Error; err != nil {
		return nil, err
	}

	crewByDelivery := make(map[uuid.UUID][]CrewAssignmentView, len(rows))
	for _, c := range crew {
		employeeID, err := kernel.UUIDFromBytes(c.EmployeeID[:])
		if err != nil {
			return nil, err
		}
		crewByDelivery[c.DeliveryID] = append(crewByDelivery[c.DeliveryID], CrewAssignmentView{
			EmployeeID:    employeeID,
			Role:          employee.Role(c.Role),
			AssignedHours: c.AssignedHours,
			ReleasedAt:    c.ReleasedAt,
		})
	}

	views := make([]DeliveryView, 0, len(rows))
	for _, r := range rows {
		kernelIDs, err := toKernelIDs(r.ID, r.OrderID, r.RouteID, r.TruckID, r.StoreID)
		if err != nil {
			return nil, err
		}
		views = append(views, DeliveryView{
			ID:                 kernelIDs[0],
			OrderID:            kernelIDs[1],
			RouteID:            kernelIDs[2],
			TruckID:            kernelIDs[3],
			StoreID:            kernelIDs[4],
			Status:             delivery.Status(r.Status),
			ScheduledDeparture: r.ScheduledDeparture.UTC(),
			ActualDeparture:    r.ActualDeparture,
			ActualArrival:      r.ActualArrival,
			CreatedAt:          r.CreatedAt.UTC(),
			Crew:               crewByDelivery[r.ID],
		})
	}
	return views, nil
}
