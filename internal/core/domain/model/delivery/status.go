package delivery

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status of a road delivery.
//
//	Scheduled ──> InTransit ──┬──> Delivered
//	    │             │       └──> Delayed
//	    └─────────────┴──> Cancelled
//
// Completion is also accepted straight from Scheduled when the departure was never
// reported.
type Status int

const (
	StatusUnknown Status = iota
	Scheduled
	InTransit
	Delivered
	Delayed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Scheduled:     "Scheduled",
		InTransit:     "InTransit",
		Delivered:     "Delivered",
		Delayed:       "Delayed",
		Cancelled:     "Cancelled",
	}
}

func (s Status) Validate() error {
	if s < Scheduled || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func ParseStatus(value string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == value && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid delivery status", value))
}

// IsActive reports whether the delivery still holds its truck and crew.
func (s Status) IsActive() bool {
	return s == Scheduled || s == InTransit
}

// IsOutcome reports whether s is an accepted completion outcome.
func (s Status) IsOutcome() bool {
	return s == Delivered || s == Delayed
}

func (s Status) Start() (Status, error) {
	if s != Scheduled {
		return StatusUnknown, errs.NewInvalidStateTransitionError("delivery", s.String(), InTransit.String())
	}
	return InTransit, nil
}

func (s Status) Complete(outcome Status) (Status, error) {
	if !outcome.IsOutcome() {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a completion outcome", outcome))
	}
	if !s.IsActive() {
		return StatusUnknown, errs.NewInvalidStateTransitionError("delivery", s.String(), outcome.String())
	}
	return outcome, nil
}

func (s Status) Cancel() (Status, error) {
	if !s.IsActive() {
		return StatusUnknown, errs.NewInvalidStateTransitionError("delivery", s.String(), Cancelled.String())
	}
	return Cancelled, nil
}
