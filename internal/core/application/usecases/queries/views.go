// Package queries holds the read side of the logistics core. Handlers read the
// database directly through GORM and return flat views; they never lock rows.
package queries

import (
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/train"
)

// TrainView is a train with its utilization derived from non-cancelled allocations.
type TrainView struct {
	ID                 kernel.UUID
	Code               string
	Capacity           kernel.Space
	Used               kernel.Space
	Remaining          kernel.Space
	UtilizationPercent float64
	DepartureTime      time.Time
	ArrivalTime        time.Time
	Status             train.Status
}

func newTrainView(t *train.Train) TrainView {
	return TrainView{
		ID:                 t.ID(),
		Code:               t.Code(),
		Capacity:           t.Capacity(),
		Used:               t.Used(),
		Remaining:          t.Remaining(),
		UtilizationPercent: t.UtilizationPercent(),
		DepartureTime:      t.DepartureTime(),
		ArrivalTime:        t.ArrivalTime(),
		Status:             t.Status(),
	}
}

// AllocationView is one allocation row joined with its train and order.
type AllocationView struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	StoreID      kernel.UUID
	TrainID      kernel.UUID
	TrainCode    string
	TrainArrival time.Time
	ProductID    kernel.UUID
	AllocatedQty int
	UnitSpace    kernel.Space
	Space        kernel.Space
	Status       order.AllocationStatus
	Finalized    bool
	DeliveryID   *kernel.UUID
	AllocatedAt  time.Time
	ArrivedAt    *time.Time
}

// CrewView is the fatigue snapshot of an employee.
type CrewView struct {
	ID                    kernel.UUID
	Name                  string
	Role                  employee.Role
	StoreID               kernel.UUID
	Status                employee.Status
	ConsecutiveDeliveries int
	TotalHoursWeek        float64
	RemainingWeeklyHours  float64
	NextAvailableTime     time.Time
	LastDeliveryTime      *time.Time
}

func newCrewView(e *employee.Employee) CrewView {
	remaining := e.Policy().WeeklyHoursCeiling - e.TotalHoursWeek()
	if remaining < 0 {
		remaining = 0
	}
	return CrewView{
		ID:                    e.ID(),
		Name:                  e.Name(),
		Role:                  e.Role(),
		StoreID:               e.StoreID(),
		Status:                e.Status(),
		ConsecutiveDeliveries: e.ConsecutiveDeliveries(),
		TotalHoursWeek:        e.TotalHoursWeek(),
		RemainingWeeklyHours:  remaining,
		NextAvailableTime:     e.NextAvailableTime(),
		LastDeliveryTime:      e.LastDeliveryTime(),
	}
}

// RouteView is a store route.
type RouteView struct {
	ID              kernel.UUID
	StoreID         kernel.UUID
	Name            string
	Area            string
	MaxDeliveryTime time.Duration
}

// CrewAssignmentView is one crew row of a delivery.
type CrewAssignmentView struct {
	EmployeeID    kernel.UUID
	Role          employee.Role
	AssignedHours float64
	ReleasedAt    *time.Time
}

// DeliveryView is a delivery with its crew.
type DeliveryView struct {
	ID                 kernel.UUID
	OrderID            kernel.UUID
	RouteID            kernel.UUID
	TruckID            kernel.UUID
	StoreID            kernel.UUID
	Status             delivery.Status
	ScheduledDeparture time.Time
	ActualDeparture    *time.Time
	ActualArrival      *time.Time
	CreatedAt          time.Time
	Crew               []CrewAssignmentView
}

// NewDeliveryView maps a loaded delivery aggregate.
func NewDeliveryView(d *delivery.Delivery) DeliveryView {
	crew := make([]CrewAssignmentView, 0, len(d.Crew()))
	for _, c := range d.Crew() {
		crew = append(crew, CrewAssignmentView{
			EmployeeID:    c.EmployeeID(),
			Role:          c.Role(),
			AssignedHours: c.AssignedHours(),
			ReleasedAt:    c.ReleasedAt(),
		})
	}
	return DeliveryView{
		ID:                 d.ID(),
		OrderID:            d.OrderID(),
		RouteID:            d.RouteID(),
		TruckID:            d.TruckID(),
		StoreID:            d.StoreID(),
		Status:             d.Status(),
		ScheduledDeparture: d.ScheduledDeparture(),
		ActualDeparture:    d.ActualDeparture(),
		ActualArrival:      d.ActualArrival(),
		CreatedAt:          d.CreatedAt(),
		Crew:               crew,
	}
}
