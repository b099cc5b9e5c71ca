package commands

import (
	"context"

	"logistics/internal/core/domain/model/train"
)

type CreateTrainCommandHandler struct {
	uowFactory TrainUoWFactory
}

func NewCreateTrainCommandHandler(uowFactory TrainUoWFactory) CreateTrainCommandHandler {
	return CreateTrainCommandHandler{uowFactory: uowFactory}
}

func (h CreateTrainCommandHandler) Handle(ctx context.Context, command CreateTrainCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	t, err := train.NewTrain(command.TrainID(), command.Code(), command.Capacity(), command.Departure(), command.Arrival())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TrainRepository().Add(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
