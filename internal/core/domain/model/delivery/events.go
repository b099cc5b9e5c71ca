package delivery

import "logistics/internal/core/domain/model/kernel"

const (
	EventTypeDeliveryAssigned  = "delivery.assigned"
	EventTypeDeliveryStarted   = "delivery.started"
	EventTypeDeliveryCompleted = "delivery.completed"
	EventTypeDeliveryCancelled = "delivery.cancelled"
)

type DeliveryAssigned struct {
	kernel.Event
	OrderID   kernel.UUID   `json:"order_id"`
	RouteID   kernel.UUID   `json:"route_id"`
	TruckID   kernel.UUID   `json:"truck_id"`
	StoreID   kernel.UUID   `json:"store_id"`
	CrewIDs   []kernel.UUID `json:"crew_ids"`
	Departure string        `json:"scheduled_departure"`
}

type DeliveryStarted struct {
	kernel.Event
	ActualDeparture string `json:"actual_departure"`
}

type DeliveryCompleted struct {
	kernel.Event
	OrderID       kernel.UUID `json:"order_id"`
	Outcome       string      `json:"outcome"`
	ActualArrival string      `json:"actual_arrival"`
}

type DeliveryCancelled struct {
	kernel.Event
	OrderID kernel.UUID `json:"order_id"`
}
