package delivery

import (
	"fmt"

	"deliveryapp/internal/pkg/errs"
)

// Status represents the progress of a delivery.
//
// State transitions:
//
//	PendingAssignment ──> Assigned ──> PickedUp ──> InTransit ──> Arrived ──> Delivered
//	        │                │             │            │            │
//	        v                v             └────────────┴────────────┴──> Failed
//	    Cancelled      Cancelled|Failed
//
// Delivered, Failed and Cancelled are final.
type Status int

const (
	Unknown Status = iota
	PendingAssignment
	Assigned
	PickedUp
	InTransit
	Arrived
	Delivered
	Failed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "UNKNOWN",
		PendingAssignment: "PENDING_ASSIGNMENT",
		Assigned:          "ASSIGNED",
		PickedUp:          "PICKED_UP",
		InTransit:         "IN_TRANSIT",
		Arrived:           "ARRIVED",
		Delivered:         "DELIVERED",
		Failed:            "FAILED",
		Cancelled:         "CANCELLED",
	}
}

func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		PendingAssignment: {Assigned, Cancelled},
		Assigned:          {PickedUp, Cancelled, Failed},
		PickedUp:          {InTransit, Failed},
		InTransit:         {Arrived, Failed},
		Arrived:           {Delivered, Failed},
	}
}

// ParseStatus converts a wire name such as "PICKED_UP" into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid delivery status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed || s == Cancelled
}

// TransitionTo returns next if the transition table allows it.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return next, nil
		}
	}
	return Unknown, errs.NewInvalidStateTransitionError("delivery", s.String(), next.String())
}
