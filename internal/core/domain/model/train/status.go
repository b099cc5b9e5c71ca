package train

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the scheduling state of a train.
//
//	Scheduled ──> Cancelled
type Status int

const (
	Unknown Status = iota
	Scheduled
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Scheduled: "Scheduled",
		Cancelled: "Cancelled",
	}
}

func (s Status) Validate() error {
	if s != Scheduled && s != Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid train status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus maps the persisted name back to a Status.
func ParseStatus(value string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == value && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid train status", value))
}

// ValidateAllocate fails unless the train still accepts cargo.
func (s Status) ValidateAllocate() error {
	if s != Scheduled {
		return errs.NewInvalidStateTransitionError("train", s.String(), "allocate")
	}
	return nil
}

func (s Status) Cancel() (Status, error) {
	if s != Scheduled {
		return Unknown, errs.NewInvalidStateTransitionError("train", s.String(), Cancelled.String())
	}
	return Cancelled, nil
}
