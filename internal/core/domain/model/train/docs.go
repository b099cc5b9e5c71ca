// Package train models scheduled rail runs and their volumetric capacity.
//
// A train accepts allocations while Scheduled. Its utilization is the sum of
// allocated_qty × unit_space over the non-cancelled allocations and must never exceed
// the capacity (beyond a 0.0001 comparison tolerance). Cancelling a train is final.
package train
