package errs

import (
	"errors"
	"fmt"
)

// Conflict-class kinds. Callers are expected to re-read state and decide whether to retry.
var (
	ErrCapacityExceeded            = errors.New("capacity exceeded")
	ErrOverAllocation              = errors.New("over allocation")
	ErrAlreadyAssigned             = errors.New("already assigned")
	ErrNotEligible                 = errors.New("not eligible")
	ErrRouteCapacityWindowExceeded = errors.New("route capacity window exceeded")
)

var (
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrAccessDenied           = errors.New("access denied")
)

// CapacityExceededError is returned when a reservation would push a container
// (a train) past its capacity.
type CapacityExceededError struct {
	ParamName string
	ID        any
	Requested any
	Remaining any
}

func NewCapacityExceededError(paramName string, id, requested, remaining any) *CapacityExceededError {
	return &CapacityExceededError{ParamName: paramName, ID: id, Requested: requested, Remaining: remaining}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: %s %v requested %s, remaining %s",
		ErrCapacityExceeded, e.ParamName, e.ID, sanitize(e.Requested), sanitize(e.Remaining))
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// OverAllocationError is returned when an order line would be covered beyond its quantity.
type OverAllocationError struct {
	ParamName string
	ID        any
	Requested int
	Remaining int
}

func NewOverAllocationError(paramName string, id any, requested, remaining int) *OverAllocationError {
	return &OverAllocationError{ParamName: paramName, ID: id, Requested: requested, Remaining: remaining}
}

func (e *OverAllocationError) Error() string {
	return fmt.Sprintf("%s: %s %v requested %d, remaining %d",
		ErrOverAllocation, e.ParamName, e.ID, e.Requested, e.Remaining)
}

func (e *OverAllocationError) Unwrap() error {
	return ErrOverAllocation
}

// AlreadyAssignedError reports a double booking of a truck or crew member.
type AlreadyAssignedError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewAlreadyAssignedError(paramName string, id any) *AlreadyAssignedError {
	return &AlreadyAssignedError{ParamName: paramName, ID: id}
}

func NewAlreadyAssignedErrorWithCause(paramName string, id any, cause error) *AlreadyAssignedError {
	return &AlreadyAssignedError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *AlreadyAssignedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %v (cause: %v)", ErrAlreadyAssigned, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s %v", ErrAlreadyAssigned, e.ParamName, e.ID)
}

func (e *AlreadyAssignedError) Unwrap() error {
	return ErrAlreadyAssigned
}

// NotEligibleError reports a resource failing an eligibility predicate.
type NotEligibleError struct {
	ParamName string
	ID        any
	Reason    string
}

func NewNotEligibleError(paramName string, id any, reason string) *NotEligibleError {
	return &NotEligibleError{ParamName: paramName, ID: id, Reason: reason}
}

func (e *NotEligibleError) Error() string {
	return fmt.Sprintf("%s: %s %v (reason: %s)", ErrNotEligible, e.ParamName, e.ID, e.Reason)
}

func (e *NotEligibleError) Unwrap() error {
	return ErrNotEligible
}

// RouteCapacityWindowExceededError reports that a route's duration would push a
// crew member's weekly hours over the ceiling.
type RouteCapacityWindowExceededError struct {
	ParamName string
	ID        any
	Projected float64
	Ceiling   float64
}

func NewRouteCapacityWindowExceededError(
	paramName string,
	id any,
	projected, ceiling float64,
) *RouteCapacityWindowExceededError {
	return &RouteCapacityWindowExceededError{ParamName: paramName, ID: id, Projected: projected, Ceiling: ceiling}
}

func (e *RouteCapacityWindowExceededError) Error() string {
	return fmt.Sprintf("%s: %s %v projected %.2fh, ceiling %.2fh",
		ErrRouteCapacityWindowExceeded, e.ParamName, e.ID, e.Projected, e.Ceiling)
}

func (e *RouteCapacityWindowExceededError) Unwrap() error {
	return ErrRouteCapacityWindowExceeded
}

// InvalidStateTransitionError reports an operation attempted from a state that does not allow it.
type InvalidStateTransitionError struct {
	ParamName string
	From      string
	To        string
}

func NewInvalidStateTransitionError(paramName, from, to string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{ParamName: paramName, From: from, To: to}
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: %s from %s to %s", ErrInvalidStateTransition, e.ParamName, e.From, e.To)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// AccessDeniedError reports an actor operating outside its scope.
type AccessDeniedError struct {
	ParamName string
	ID        any
}

func NewAccessDeniedError(paramName string, id any) *AccessDeniedError {
	return &AccessDeniedError{ParamName: paramName, ID: id}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: %s %v", ErrAccessDenied, e.ParamName, e.ID)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}
