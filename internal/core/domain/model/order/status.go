package order

import (
	"fmt"

	"deliveryapp/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──┬──> Confirmed ──> Processing ──> ReadyForDelivery ──> Completed
//	          │                      ^
//	          └──────────────────────┘
//	    (delivery assigned straight away)
//
// Every non-terminal status may also move to Cancelled. Completed and Cancelled are final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the status of a freshly created order.
	Pending

	// Confirmed indicates the order was accepted for fulfilment.
	Confirmed

	// Processing indicates a deliverer has been assigned to the order's delivery.
	Processing

	// ReadyForDelivery indicates the parcel was picked up.
	ReadyForDelivery

	// Completed indicates the parcel was delivered. Final.
	Completed

	// Cancelled indicates the order was abandoned. Final.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		Pending:          "PENDING",
		Confirmed:        "CONFIRMED",
		Processing:       "PROCESSING",
		ReadyForDelivery: "READY_FOR_DELIVERY",
		Completed:        "COMPLETED",
		Cancelled:        "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:          "PENDING",
		Confirmed:        "CONFIRMED",
		Processing:       "PROCESSING",
		ReadyForDelivery: "READY_FOR_DELIVERY",
		Completed:        "COMPLETED",
		Cancelled:        "CANCELLED",
	}
}

// getTransitions lists, for every status, the statuses it may move to.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		Pending:          {Confirmed, Processing, Cancelled},
		Confirmed:        {Processing, Cancelled},
		Processing:       {ReadyForDelivery, Cancelled},
		ReadyForDelivery: {Completed, Cancelled},
	}
}

// ParseStatus converts the wire name (e.g. "READY_FOR_DELIVERY") into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the defined order statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next if the move is allowed.
//
// Returns:
//   - (next, nil) on a valid transition
//   - (Unknown, ValueIsInvalidError) if next is not a valid status
//   - (Unknown, InvalidStateTransitionError) if the table forbids the move
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewInvalidStateTransitionError("order", s.String(), next.String())
	}
	return next, nil
}
