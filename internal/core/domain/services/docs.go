// Package services holds the domain services that coordinate several aggregates of
// the logistics core:
//   - CapacityLedger: allocation, arrival and train cancellation
//   - CrewEligibility: the labor-compliance predicate and roster partitioning
//   - DeliveryDispatcher: truck and crew assignment for a staged order
//   - FatigueLedger: delivery completion and cancellation
//
// Services are stateless; the application layer loads the aggregates under row
// locks and persists them in the same unit of work.
package services
