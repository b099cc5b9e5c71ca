package commands

import (
	"errors"
	"time"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrReleaseRestedCrewCommandIsNotConstructed = errors.New(
	"ReleaseRestedCrewCommand must be created via NewReleaseRestedCrewCommand constructor",
)

// ReleaseRestedCrewCommand returns to Available the OnLeave crew whose mandatory
// rest ended at or before now. At most limit employees are handled per run.
type ReleaseRestedCrewCommand struct { //nolint:recvcheck //using for validation
	now   time.Time
	limit int

	guard guard.ConstructorGuard
}

func NewReleaseRestedCrewCommand(now time.Time, limit int) (ReleaseRestedCrewCommand, error) {
	if limit <= 0 {
		return ReleaseRestedCrewCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	return ReleaseRestedCrewCommand{now: now, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (c ReleaseRestedCrewCommand) Validate() error {
	return c.guard.Validate(ErrReleaseRestedCrewCommandIsNotConstructed)
}

func (c ReleaseRestedCrewCommand) Now() time.Time { return c.now }
func (c ReleaseRestedCrewCommand) Limit() int     { return c.limit }
