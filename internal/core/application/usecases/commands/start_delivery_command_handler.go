package commands

import (
	"context"

	"logistics/internal/core/domain/model/delivery"
)

// StartDeliveryCommandHandler moves a Scheduled delivery to InTransit. Only the
// delivery row is touched.
type StartDeliveryCommandHandler struct {
	uowFactory DispatchUoWFactory
}

func NewStartDeliveryCommandHandler(uowFactory DispatchUoWFactory) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h StartDeliveryCommandHandler) Handle(ctx context.Context, command StartDeliveryCommand) (*delivery.Delivery, error) {
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

	deliveryRepo := uow.DeliveryRepository()

	d, err := deliveryRepo.GetForUpdate(ctx, command.DeliveryID())
	if err != nil {
		return nil, err
	}
	if err = command.Actor().CanActFor(d.StoreID()); err != nil {
		return nil, err
	}

	if err = d.Start(command.Departure()); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
