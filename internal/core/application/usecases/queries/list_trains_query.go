package queries

import (
	"errors"

	"logistics/internal/core/domain/model/train"
	"logistics/internal/pkg/guard"
)

var ErrListTrainsQueryIsNotConstructed = errors.New(
	"ListTrainsQuery must be created via NewListTrainsQuery constructor",
)

// ListTrainsQuery returns the train schedule ordered by departure. A nil status
// returns trains in every status.
//
// Example:
//
//	scheduled := train.Scheduled
//	query, err := NewListTrainsQuery(&scheduled)
//	trains, err := handler.Handle(ctx, query)
type ListTrainsQuery struct {
	status *train.Status
	guard  guard.ConstructorGuard
}

func NewListTrainsQuery(status *train.Status) (ListTrainsQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListTrainsQuery{}, err
		}
	}
	return ListTrainsQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q ListTrainsQuery) Validate() error {
	return q.guard.Validate(ErrListTrainsQueryIsNotConstructed)
}

func (q ListTrainsQuery) Status() *train.Status { return q.status }
