package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrMarkArrivedCommandIsNotConstructed = errors.New(
	"MarkArrivedCommand must be created via NewMarkArrivedCommand constructor",
)

// MarkArrivedCommand stages the cargo of a train at its destination stores.
type MarkArrivedCommand struct { //nolint:recvcheck //using for validation
	trainID kernel.UUID
	at      time.Time

	guard guard.ConstructorGuard
}

func NewMarkArrivedCommand(trainID kernel.UUID, at time.Time) (MarkArrivedCommand, error) {
	if err := trainID.Validate(); err != nil {
		return MarkArrivedCommand{}, err
	}
	return MarkArrivedCommand{trainID: trainID, at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkArrivedCommand) Validate() error {
	return c.guard.Validate(ErrMarkArrivedCommandIsNotConstructed)
}

func (c MarkArrivedCommand) TrainID() kernel.UUID { return c.trainID }
func (c MarkArrivedCommand) At() time.Time        { return c.at }
