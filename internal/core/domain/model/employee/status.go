package employee

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the duty state of a crew member.
//
//	Available ──> OnDuty ──┬──> Available (completed, below rest threshold; or delivery cancelled)
//	    ^                  └──> OnLeave (rest threshold reached)
//	    └──────────────────────── OnLeave (rest elapsed)
type Status int

const (
	StatusUnknown Status = iota
	Available
	OnDuty
	OnLeave
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Available:     "Available",
		OnDuty:        "OnDuty",
		OnLeave:       "OnLeave",
	}
}

func (s Status) Validate() error {
	if s < Available || s > OnLeave {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid employee status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
