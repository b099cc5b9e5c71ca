package commands

import (
	"context"

	"logistics/internal/core/domain/services"
)

// MarkArrivedCommandHandler is the arrival gate between the rail and road legs. It
// returns the number of allocations moved to AtStore; repeating the call returns 0.
type MarkArrivedCommandHandler struct {
	uowFactory AllocationUoWFactory
	ledger     services.CapacityLedger
}

func NewMarkArrivedCommandHandler(uowFactory AllocationUoWFactory) MarkArrivedCommandHandler {
	return MarkArrivedCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewCapacityLedger(),
	}
}

func (h MarkArrivedCommandHandler) Handle(ctx context.Context, command MarkArrivedCommand) (int, error) {
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

	orderRepo := uow.OrderRepository()

	t, err := uow.TrainRepository().GetForUpdate(ctx, command.TrainID())
	if err != nil {
		return 0, err
	}

	orders, err := orderRepo.ListByTrainForUpdate(ctx, t.ID())
	if err != nil {
		return 0, err
	}

	moved, err := h.ledger.MarkArrived(t, orders, command.At())
	if err != nil {
		return 0, err
	}
	if moved == 0 {
		return 0, nil
	}

	for _, o := range orders {
		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return moved, nil
}
