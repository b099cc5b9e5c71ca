package commands

import (
	"context"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/services"
)

// CancelDeliveryCommandHandler cancels a Scheduled or InTransit delivery. The cargo
// goes back to AtStore and the truck and crew become available again.
type CancelDeliveryCommandHandler struct {
	uowFactory DispatchUoWFactory
	ledger     services.FatigueLedger
}

func NewCancelDeliveryCommandHandler(uowFactory DispatchUoWFactory) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewFatigueLedger(),
	}
}

func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, command CancelDeliveryCommand) (*delivery.Delivery, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	closure, err := loadClosure(ctx, uow, command.Actor(), command.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = h.ledger.Cancel(closure, command.At()); err != nil {
		return nil, err
	}

	if err = saveClosure(ctx, uow, closure); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return closure.Delivery, nil
}
