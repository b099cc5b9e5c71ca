package order

import "logistics/internal/core/domain/model/kernel"

const EventTypeAllocationCreated = "allocation.created"

// AllocationCreated is raised for every accepted allocation.
type AllocationCreated struct {
	kernel.Event
	AllocationID kernel.UUID `json:"allocation_id"`
	TrainID      kernel.UUID `json:"train_id"`
	ProductID    kernel.UUID `json:"product_id"`
	AllocatedQty int         `json:"allocated_qty"`
	UnitSpace    string      `json:"unit_space"`
	Finalized    bool        `json:"finalized"`
	OrderStatus  string      `json:"order_status"`
}
