package order

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the aggregate fulfillment state of an order. It is derived from the
// order's lines and allocations, except for Cancelled which is set explicitly and
// never left.
//
//	Pending ──> PartiallyAllocated ──> Allocated ──> AtStore ──> Dispatched ──> Delivered
//	   └──────────────────────────────────┴────────────┴─────────────┴──────> Cancelled
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota

	// Pending orders have no allocation coverage yet.
	Pending

	// PartiallyAllocated orders have coverage but at least one line is not finalized.
	PartiallyAllocated

	// Allocated orders have every line finalized and cargo still on the rail leg.
	Allocated

	// AtStore orders have all their cargo staged at the destination store.
	AtStore

	// Dispatched orders are on a truck.
	Dispatched

	// Delivered is final.
	Delivered

	// Cancelled is final and sticky: derivation never overrides it.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Pending:            "Pending",
		PartiallyAllocated: "PartiallyAllocated",
		Allocated:          "Allocated",
		AtStore:            "AtStore",
		Dispatched:         "Dispatched",
		Delivered:          "Delivered",
		Cancelled:          "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:            "Pending",
		PartiallyAllocated: "PartiallyAllocated",
		Allocated:          "Allocated",
		AtStore:            "AtStore",
		Dispatched:         "Dispatched",
		Delivered:          "Delivered",
		Cancelled:          "Cancelled",
	}
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateAllocate rejects allocation against cancelled or already delivered orders.
func (s Status) ValidateAllocate() error {
	if s == Cancelled || s == Delivered || s == Unknown {
		return errs.NewInvalidStateTransitionError("order", s.String(), "allocate")
	}
	return nil
}

// IsFinal reports whether no further transition can change the status.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}
