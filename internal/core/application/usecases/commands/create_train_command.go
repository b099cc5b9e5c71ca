package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateTrainCommandIsNotConstructed = errors.New(
	"CreateTrainCommand must be created via NewCreateTrainCommand constructor",
)

// CreateTrainCommand schedules a new train. The schedule itself is validated by the
// Train aggregate.
type CreateTrainCommand struct { //nolint:recvcheck //using for validation
	trainID   kernel.UUID
	code      string
	capacity  kernel.Space
	departure time.Time
	arrival   time.Time

	guard guard.ConstructorGuard
}

func NewCreateTrainCommand(
	trainID kernel.UUID,
	code string,
	capacity kernel.Space,
	departure, arrival time.Time,
) (CreateTrainCommand, error) {
	var codeErr error
	if code == "" {
		codeErr = errs.NewValueIsRequiredError("code")
	}
	if err := errors.Join(trainID.Validate(), codeErr); err != nil {
		return CreateTrainCommand{}, err
	}

	return CreateTrainCommand{
		trainID:   trainID,
		code:      code,
		capacity:  capacity,
		departure: departure,
		arrival:   arrival,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTrainCommand) Validate() error {
	return c.guard.Validate(ErrCreateTrainCommandIsNotConstructed)
}

func (c CreateTrainCommand) TrainID() kernel.UUID   { return c.trainID }
func (c CreateTrainCommand) Code() string           { return c.code }
func (c CreateTrainCommand) Capacity() kernel.Space { return c.capacity }
func (c CreateTrainCommand) Departure() time.Time   { return c.departure }
func (c CreateTrainCommand) Arrival() time.Time     { return c.arrival }
