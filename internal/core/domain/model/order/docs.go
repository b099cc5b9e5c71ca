// Package order holds the Order aggregate: ordered lines, the allocations that
// place them on trains, and the derived fulfillment status.
//
// Key business rules:
//   - per (order, product) the non-cancelled allocated quantity never exceeds the
//     ordered quantity; a line is finalized once it is fully covered
//   - allocations move Allocated → AtStore (train arrival) → Dispatched (truck
//     assigned) → Delivered, and back to AtStore if the delivery is cancelled
//   - allocations of a cancelled train are Cancelled and give their coverage back
//   - the order status is derived; Cancelled is sticky
package order
