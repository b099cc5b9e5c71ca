package http

import (
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type createTrainRequest struct {
	Code          string           `json:"code" validate:"required,max=32"`
	Capacity      *decimal.Decimal `json:"capacity" validate:"required"`
	DepartureTime *time.Time       `json:"departure_time" validate:"required"`
	ArrivalTime   *time.Time       `json:"arrival_time" validate:"required"`
}

type allocateRequest struct {
	TrainID   string           `json:"train_id" validate:"required,uuid"`
	ProductID string           `json:"product_id" validate:"required,uuid"`
	StoreID   string           `json:"store_id" validate:"required,uuid"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	UnitSpace *decimal.Decimal `json:"unit_space,omitempty"`
}

type assignDeliveryRequest struct {
	OrderID            string     `json:"order_id" validate:"required,uuid"`
	RouteID            string     `json:"route_id" validate:"required,uuid"`
	TruckID            string     `json:"truck_id" validate:"required,uuid"`
	DriverID           string     `json:"driver_id" validate:"required,uuid"`
	AssistantID        *string    `json:"assistant_id,omitempty" validate:"omitempty,uuid"`
	ScheduledDeparture *time.Time `json:"scheduled_departure" validate:"required"`
}

type startDeliveryRequest struct {
	ActualDeparture *time.Time `json:"actual_departure" validate:"required"`
}

type completeDeliveryRequest struct {
	ActualArrival *time.Time `json:"actual_arrival" validate:"required"`
	Status        string     `json:"status" validate:"required,oneof=Delivered Delayed"`
}

type countResponse struct {
	Affected int `json:"affected"`
}

type trainResponse struct {
	ID                 kernel.UUID `json:"id"`
	Code               string      `json:"code"`
	Capacity           string      `json:"capacity"`
	Used               string      `json:"used"`
	Remaining          string      `json:"remaining"`
	UtilizationPercent float64     `json:"utilization_percent"`
	DepartureTime      time.Time   `json:"departure_time"`
	ArrivalTime        time.Time   `json:"arrival_time"`
	Status             string      `json:"status"`
}

func newTrainResponse(v queries.TrainView) trainResponse {
	return trainResponse{
		ID:                 v.ID,
		Code:               v.Code,
		Capacity:           v.Capacity.String(),
		Used:               v.Used.String(),
		Remaining:          v.Remaining.String(),
		UtilizationPercent: v.UtilizationPercent,
		DepartureTime:      v.DepartureTime,
		ArrivalTime:        v.ArrivalTime,
		Status:             v.Status.String(),
	}
}

type trainDetailResponse struct {
	trainResponse
	Allocations []allocationResponse `json:"allocations"`
}

type allocationResponse struct {
	ID           kernel.UUID  `json:"id"`
	OrderID      kernel.UUID  `json:"order_id"`
	StoreID      kernel.UUID  `json:"store_id"`
	TrainID      kernel.UUID  `json:"train_id"`
	TrainCode    string       `json:"train_code"`
	TrainArrival time.Time    `json:"train_arrival"`
	ProductID    kernel.UUID  `json:"product_id"`
	AllocatedQty int          `json:"allocated_qty"`
	UnitSpace    string       `json:"unit_space"`
	Space        string       `json:"space"`
	Status       string       `json:"status"`
	Finalized    bool         `json:"finalized"`
	DeliveryID   *kernel.UUID `json:"delivery_id"`
	AllocatedAt  time.Time    `json:"allocated_at"`
	ArrivedAt    *time.Time   `json:"arrived_at"`
}

func newAllocationResponses(views []queries.AllocationView) []allocationResponse {
	out := make([]allocationResponse, 0, len(views))
	for _, v := range views {
		out = append(out, allocationResponse{
			ID:           v.ID,
			OrderID:      v.OrderID,
			StoreID:      v.StoreID,
			TrainID:      v.TrainID,
			TrainCode:    v.TrainCode,
			TrainArrival: v.TrainArrival,
			ProductID:    v.ProductID,
			AllocatedQty: v.AllocatedQty,
			UnitSpace:    v.UnitSpace.String(),
			Space:        v.Space.String(),
			Status:       v.Status.String(),
			Finalized:    v.Finalized,
			DeliveryID:   v.DeliveryID,
			AllocatedAt:  v.AllocatedAt,
			ArrivedAt:    v.ArrivedAt,
		})
	}
	return out
}

type allocateResponse struct {
	AllocationID       kernel.UUID `json:"allocation_id"`
	Finalized          bool        `json:"finalized"`
	OrderStatus        string      `json:"order_status"`
	TrainUsed          string      `json:"train_used"`
	TrainRemaining     string      `json:"train_remaining"`
	UtilizationPercent float64     `json:"utilization_percent"`
}

func newAllocateResponse(r commands.AllocateResult) allocateResponse {
	return allocateResponse{
		AllocationID:       r.AllocationID,
		Finalized:          r.Finalized,
		OrderStatus:        r.OrderStatus.String(),
		TrainUsed:          r.TrainUsed.String(),
		TrainRemaining:     r.TrainRemaining.String(),
		UtilizationPercent: r.UtilizationPercent,
	}
}

type lineCoverageResponse struct {
	ProductID kernel.UUID `json:"product_id"`
	Quantity  int         `json:"quantity"`
	Covered   int         `json:"covered"`
	Finalized bool        `json:"finalized"`
}

type orderAllocationsResponse struct {
	OrderID     kernel.UUID            `json:"order_id"`
	StoreID     kernel.UUID            `json:"store_id"`
	Status      string                 `json:"status"`
	Lines       []lineCoverageResponse `json:"lines"`
	Allocations []allocationResponse   `json:"allocations"`
}

func newOrderAllocationsResponse(v queries.OrderAllocations) orderAllocationsResponse {
	lines := make([]lineCoverageResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, lineCoverageResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Covered:   l.Covered,
			Finalized: l.Finalized,
		})
	}
	return orderAllocationsResponse{
		OrderID:     v.OrderID,
		StoreID:     v.StoreID,
		Status:      v.Status.String(),
		Lines:       lines,
		Allocations: newAllocationResponses(v.Allocations),
	}
}

type stagedOrderResponse struct {
	OrderID           kernel.UUID `json:"order_id"`
	CustomerID        kernel.UUID `json:"customer_id"`
	RequiredBy        time.Time   `json:"required_by"`
	Status            string      `json:"status"`
	StagedAllocations int         `json:"staged_allocations"`
	StagedSpace       string      `json:"staged_space"`
}

func newStagedOrderResponses(views []queries.StagedOrderView) []stagedOrderResponse {
	out := make([]stagedOrderResponse, 0, len(views))
	for _, v := range views {
		out = append(out, stagedOrderResponse{
			OrderID:           v.OrderID,
			CustomerID:        v.CustomerID,
			RequiredBy:        v.RequiredBy,
			Status:            v.Status.String(),
			StagedAllocations: v.StagedAllocations,
			StagedSpace:       v.StagedSpace.String(),
		})
	}
	return out
}

type routeResponse struct {
	ID                 kernel.UUID `json:"id"`
	StoreID            kernel.UUID `json:"store_id"`
	Name               string      `json:"name"`
	Area               string      `json:"area"`
	MaxDeliveryMinutes int         `json:"max_delivery_minutes"`
}

func newRouteResponses(views []queries.RouteView) []routeResponse {
	out := make([]routeResponse, 0, len(views))
	for _, v := range views {
		out = append(out, routeResponse{
			ID:                 v.ID,
			StoreID:            v.StoreID,
			Name:               v.Name,
			Area:               v.Area,
			MaxDeliveryMinutes: int(v.MaxDeliveryTime / time.Minute),
		})
	}
	return out
}

type crewResponse struct {
	ID                    kernel.UUID `json:"id"`
	Name                  string      `json:"name"`
	Role                  string      `json:"role"`
	StoreID               kernel.UUID `json:"store_id"`
	Status                string      `json:"status"`
	ConsecutiveDeliveries int         `json:"consecutive_deliveries"`
	TotalHoursWeek        float64     `json:"total_hours_week"`
	RemainingWeeklyHours  float64     `json:"remaining_weekly_hours"`
	NextAvailableTime     time.Time   `json:"next_available_time"`
	LastDeliveryTime      *time.Time  `json:"last_delivery_time"`
}

func newCrewResponses(views []queries.CrewView) []crewResponse {
	out := make([]crewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, crewResponse{
			ID:                    v.ID,
			Name:                  v.Name,
			Role:                  v.Role.String(),
			StoreID:               v.StoreID,
			Status:                v.Status.String(),
			ConsecutiveDeliveries: v.ConsecutiveDeliveries,
			TotalHoursWeek:        v.TotalHoursWeek,
			RemainingWeeklyHours:  v.RemainingWeeklyHours,
			NextAvailableTime:     v.NextAvailableTime,
			LastDeliveryTime:      v.LastDeliveryTime,
		})
	}
	return out
}

type eligibleCrewResponse struct {
	RouteID       kernel.UUID    `json:"route_id"`
	ExpectedHours float64        `json:"expected_hours"`
	Drivers       []crewResponse `json:"drivers"`
	Assistants    []crewResponse `json:"assistants"`
}

func newEligibleCrewResponse(v queries.EligibleCrew) eligibleCrewResponse {
	return eligibleCrewResponse{
		RouteID:       v.RouteID,
		ExpectedHours: v.ExpectedHours,
		Drivers:       newCrewResponses(v.Drivers),
		Assistants:    newCrewResponses(v.Assistants),
	}
}

type crewAssignmentResponse struct {
	EmployeeID    kernel.UUID `json:"employee_id"`
	Role          string      `json:"role"`
	AssignedHours float64     `json:"assigned_hours"`
	ReleasedAt    *time.Time  `json:"released_at"`
}

type deliveryResponse struct {
	ID                 kernel.UUID              `json:"id"`
	OrderID            kernel.UUID              `json:"order_id"`
	RouteID            kernel.UUID              `json:"route_id"`
	TruckID            kernel.UUID              `json:"truck_id"`
	StoreID            kernel.UUID              `json:"store_id"`
	Status             string                   `json:"status"`
	ScheduledDeparture time.Time                `json:"scheduled_departure"`
	ActualDeparture    *time.Time               `json:"actual_departure"`
	ActualArrival      *time.Time               `json:"actual_arrival"`
	CreatedAt          time.Time                `json:"created_at"`
	Crew               []crewAssignmentResponse `json:"crew"`
}

func newDeliveryResponse(v queries.DeliveryView) deliveryResponse {
	crew := make([]crewAssignmentResponse, 0, len(v.Crew))
	for _, c := range v.Crew {
		crew = append(crew, crewAssignmentResponse{
			EmployeeID:    c.EmployeeID,
			Role:          c.Role.String(),
			AssignedHours: c.AssignedHours,
			ReleasedAt:    c.ReleasedAt,
		})
	}
	return deliveryResponse{
		ID:                 v.ID,
		OrderID:            v.OrderID,
		RouteID:            v.RouteID,
		TruckID:            v.TruckID,
		StoreID:            v.StoreID,
		Status:             v.Status.String(),
		ScheduledDeparture: v.ScheduledDeparture,
		ActualDeparture:    v.ActualDeparture,
		ActualArrival:      v.ActualArrival,
		CreatedAt:          v.CreatedAt,
		Crew:               crew,
	}
}

type crewReceiptResponse struct {
	EmployeeID            kernel.UUID `json:"employee_id"`
	Role                  string      `json:"role"`
	Status                string      `json:"status"`
	ConsecutiveDeliveries int         `json:"consecutive_deliveries"`
	TotalHoursWeek        float64     `json:"total_hours_week"`
	NextAvailableTime     time.Time   `json:"next_available_time"`
}

type completionReceiptResponse struct {
	DeliveryID    kernel.UUID           `json:"delivery_id"`
	Status        string                `json:"status"`
	ActualArrival time.Time             `json:"actual_arrival"`
	Crew          []crewReceiptResponse `json:"crew"`
}

func newCompletionReceiptResponse(r commands.CompleteDeliveryResult) completionReceiptResponse {
	crew := make([]crewReceiptResponse, 0, len(r.Crew))
	for _, c := range r.Crew {
		crew = append(crew, crewReceiptResponse{
			EmployeeID:            c.EmployeeID,
			Role:                  c.Role.String(),
			Status:                c.Status.String(),
			ConsecutiveDeliveries: c.ConsecutiveDeliveries,
			TotalHoursWeek:        c.TotalHoursWeek,
			NextAvailableTime:     c.NextAvailableTime,
		})
	}
	return completionReceiptResponse{
		DeliveryID:    r.DeliveryID,
		Status:        r.Status.String(),
		ActualArrival: r.ActualArrival,
		Crew:          crew,
	}
}
