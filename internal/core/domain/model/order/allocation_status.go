package order

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// AllocationStatus tracks a single allocation through both legs.
//
//	Allocated ──> AtStore ──> Dispatched ──> Delivered
//	    │            ^            │
//	    v            └────────────┘ (delivery cancelled)
//	Cancelled (train cancelled)
//
// The numeric order of the non-cancelled stages is the progress order used to
// derive the order status.
type AllocationStatus int

const (
	AllocationUnknown AllocationStatus = iota
	AllocationAllocated
	AllocationAtStore
	AllocationDispatched
	AllocationDelivered
	AllocationCancelled
)

func getAllocationStatusStrings() map[AllocationStatus]string {
	return map[AllocationStatus]string{
		AllocationUnknown:    "Unknown",
		AllocationAllocated:  "Allocated",
		AllocationAtStore:    "AtStore",
		AllocationDispatched: "Dispatched",
		AllocationDelivered:  "Delivered",
		AllocationCancelled:  "Cancelled",
	}
}

func (s AllocationStatus) Validate() error {
	if s < AllocationAllocated || s > AllocationCancelled {
		return errs.NewValueIsInvalidErrorWithCause("allocation_status", fmt.Errorf("%d is not a valid allocation status", s))
	}
	return nil
}

func (s AllocationStatus) String() string {
	if str, ok := getAllocationStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseAllocationStatus is used by read endpoints filtering by status name.
func ParseAllocationStatus(value string) (AllocationStatus, error) {
	for status, name := range getAllocationStatusStrings() {
		if name == value && status != AllocationUnknown {
			return status, nil
		}
	}
	return AllocationUnknown, errs.NewValueIsInvalidErrorWithCause(
		"allocation_status", fmt.Errorf("%q is not a valid allocation status", value))
}

func (s AllocationStatus) IsCancelled() bool {
	return s == AllocationCancelled
}

func (s AllocationStatus) transition(allowed, next AllocationStatus) (AllocationStatus, error) {
	if s != allowed {
		return AllocationUnknown, errs.NewInvalidStateTransitionError("allocation", s.String(), next.String())
	}
	return next, nil
}

// Arrive moves Allocated cargo to the destination store.
func (s AllocationStatus) Arrive() (AllocationStatus, error) {
	return s.transition(AllocationAllocated, AllocationAtStore)
}

func (s AllocationStatus) Dispatch() (AllocationStatus, error) {
	return s.transition(AllocationAtStore, AllocationDispatched)
}

func (s AllocationStatus) Deliver() (AllocationStatus, error) {
	return s.transition(AllocationDispatched, AllocationDelivered)
}

// Restage returns Dispatched cargo to the store when its delivery is cancelled.
func (s AllocationStatus) Restage() (AllocationStatus, error) {
	return s.transition(AllocationDispatched, AllocationAtStore)
}

// Cancel is only possible before arrival.
func (s AllocationStatus) Cancel() (AllocationStatus, error) {
	return s.transition(AllocationAllocated, AllocationCancelled)
}
