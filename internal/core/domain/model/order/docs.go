// Package order provides the delivery order aggregate and its lifecycle state
// machine.
//
// The package includes:
//   - Order: the aggregate root snapshotting the priced quote it was created from
//   - Status: the eleven-state lifecycle with a static adjacency table
//
// Key business rules:
//   - the forward path is linear from Created to Completed, with a single
//     shortcut from SearchingRider to ToMerchant
//   - every non-terminal status may move to Canceled
//   - Completed and Canceled are terminal
//   - the breakdown total always equals the sum of the breakdown addends
//   - a rider is bound exactly once, on offer acceptance
package order
