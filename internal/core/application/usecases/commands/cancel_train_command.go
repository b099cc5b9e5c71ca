package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCancelTrainCommandIsNotConstructed = errors.New(
	"CancelTrainCommand must be created via NewCancelTrainCommand constructor",
)

type CancelTrainCommand struct { //nolint:recvcheck //using for validation
	trainID kernel.UUID
	at      time.Time

	guard guard.ConstructorGuard
}

func NewCancelTrainCommand(trainID kernel.UUID, at time.Time) (CancelTrainCommand, error) {
	if err := trainID.Validate(); err != nil {
		return CancelTrainCommand{}, err
	}
	return CancelTrainCommand{trainID: trainID, at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelTrainCommand) Validate() error {
	return c.guard.Validate(ErrCancelTrainCommandIsNotConstructed)
}

func (c CancelTrainCommand) TrainID() kernel.UUID { return c.trainID }
func (c CancelTrainCommand) At() time.Time        { return c.at }
