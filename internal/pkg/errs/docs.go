// Package errs defines the typed errors shared by the domain, application and adapter
// layers of the logistics service.
//
// Every kind follows the same shape: a sentinel (ErrObjectNotFound, ErrCapacityExceeded, ...),
// a struct carrying the details, constructors and an Unwrap method returning the sentinel,
// so callers classify failures with errors.Is and inspect details with errors.As.
//
// Kinds fall into three groups:
//   - input errors: ValueIsRequired, ValueIsInvalid, ValueIsOutOfRange, VersionIsInvalid
//   - lookup errors: ObjectNotFound
//   - conflict errors: CapacityExceeded, OverAllocation, AlreadyAssigned, NotEligible,
//     RouteCapacityWindowExceeded, InvalidStateTransition and AccessDenied
//
// The inbound HTTP adapter maps each group to a status code; nothing in this package
// knows about transport.
package errs
