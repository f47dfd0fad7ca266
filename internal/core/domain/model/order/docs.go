// Package order provides the Order aggregate of the order service: order lines,
// the status state machine and the append-only status history.
//
// Key business rules:
//   - An order has at least one item; items are fixed after creation
//   - totalAmount is computed once, at creation, from items and the delivery fee
//   - Status follows Pending -> Confirmed -> Processing -> ReadyForDelivery -> Completed,
//     with Pending -> Processing allowed and Cancelled reachable from every non-final status
//   - Every status change, including the initial one, produces exactly one history entry
package order
