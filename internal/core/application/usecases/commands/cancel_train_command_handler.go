package commands

import (
	"context"

	"logistics/internal/core/domain/services"
)

// CancelTrainCommandHandler cancels a train and the allocations it had not yet
// delivered to a store. It returns the number of cancelled allocations.
type CancelTrainCommandHandler struct {
	uowFactory AllocationUoWFactory
	ledger     services.CapacityLedger
}

func NewCancelTrainCommandHandler(uowFactory AllocationUoWFactory) CancelTrainCommandHandler {
	return CancelTrainCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewCapacityLedger(),
	}
}

func (h CancelTrainCommandHandler) Handle(ctx context.Context, command CancelTrainCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trainRepo := uow.TrainRepository()
	orderRepo := uow.OrderRepository()

	t, err := trainRepo.GetForUpdate(ctx, command.TrainID())
	if err != nil {
		return 0, err
	}

	orders, err := orderRepo.ListByTrainForUpdate(ctx, t.ID())
	if err != nil {
		return 0, err
	}

	cancelled, err := h.ledger.CancelTrain(t, orders, command.At())
	if err != nil {
		return 0, err
	}

	if err = trainRepo.Update(ctx, t); err != nil {
		return 0, err
	}
	for _, o := range orders {
		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return cancelled, nil
}
