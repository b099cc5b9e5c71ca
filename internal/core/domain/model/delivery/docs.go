// Package delivery models the road leg: one truck, a driver and an optional
// assistant running a route for a staged order.
//
// A delivery holds its truck and crew while Scheduled or InTransit. Completion
// (Delivered or Delayed) and cancellation release them; the storage layer backs this
// with partial unique indexes on the active rows.
package delivery
