package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetTrainQueryIsNotConstructed = errors.New(
	"GetTrainQuery must be created via NewGetTrainQuery constructor",
)

// GetTrainQuery returns one train with every allocation placed on it.
type GetTrainQuery struct {
	trainID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetTrainQuery(trainID kernel.UUID) (GetTrainQuery, error) {
	if err := trainID.Validate(); err != nil {
		return GetTrainQuery{}, err
	}
	return GetTrainQuery{trainID: trainID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTrainQuery) Validate() error {
	return q.guard.Validate(ErrGetTrainQueryIsNotConstructed)
}

func (q GetTrainQuery) TrainID() kernel.UUID { return q.trainID }

// TrainDetail is the train view plus its allocations, oldest first.
type TrainDetail struct {
	TrainView
	Allocations []AllocationView
}
