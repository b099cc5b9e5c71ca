package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/employee"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
)

// CrewReceipt is the fatigue state of one crew member after a completion.
type CrewReceipt struct {
	EmployeeID            kernel.UUID
	Role                  employee.Role
	Status                employee.Status
	ConsecutiveDeliveries int
	TotalHoursWeek        float64
	NextAvailableTime     time.Time
}

// CompleteDeliveryResult is returned to the caller reporting the arrival.
type CompleteDeliveryResult struct {
	DeliveryID    kernel.UUID
	Status        delivery.Status
	ActualArrival time.Time
	Crew          []CrewReceipt
}

type CompleteDeliveryCommandHandler struct {
	uowFactory DispatchUoWFactory
	ledger     services.FatigueLedger
}

func NewCompleteDeliveryCommandHandler(uowFactory DispatchUoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewFatigueLedger(),
	}
}

func (h CompleteDeliveryCommandHandler) Handle(
	ctx context.Context,
	command CompleteDeliveryCommand,
) (CompleteDeliveryResult, error) {
	if err := command.Validate(); err != nil {
		return CompleteDeliveryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CompleteDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	closure, err := loadClosure(ctx, uow, command.Actor(), command.DeliveryID())
	if err != nil {
		return CompleteDeliveryResult{}, err
	}

	if err = h.ledger.Complete(closure, command.Arrival(), command.Outcome()); err != nil {
		return CompleteDeliveryResult{}, err
	}

	if err = saveClosure(ctx, uow, closure); err != nil {
		return CompleteDeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CompleteDeliveryResult{}, err
	}

	return receiptOf(closure), nil
}

func receiptOf(c services.Closure) CompleteDeliveryResult {
	result := CompleteDeliveryResult{
		DeliveryID: c.Delivery.ID(),
		Status:     c.Delivery.Status(),
		Crew:       make([]CrewReceipt, 0, len(c.Crew)),
	}
	if arrival := c.Delivery.ActualArrival(); arrival != nil {
		result.ActualArrival = *arrival
	}
	for _, e := range c.Crew {
		result.Crew = append(result.Crew, CrewReceipt{
			EmployeeID:            e.ID(),
			Role:                  e.Role(),
			Status:                e.Status(),
			ConsecutiveDeliveries: e.ConsecutiveDeliveries(),
			TotalHoursWeek:        e.TotalHoursWeek(),
			NextAvailableTime:     e.NextAvailableTime(),
		})
	}
	return result
}
