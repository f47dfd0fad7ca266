// Package delivery provides the Delivery aggregate of the delivery service and its
// assignment and progression state machine.
//
// A delivery fulfils exactly one order. It captures the order number when created and
// never re-synchronises it. The deliverer reference is a plain id that is checked against
// the deliverer service before it is stored.
package delivery
