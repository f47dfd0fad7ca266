// Package deliverer holds the Deliverer aggregate of the deliverer service: personal data,
// employment status, performance counters and vehicles.
package deliverer

import (
	"fmt"

	"deliveryapp/internal/pkg/errs"
)

// Status is the employment state of a deliverer. Unlike orders and deliveries, a
// deliverer may move freely between statuses.
type Status int

const (
	UnknownStatus Status = iota
	Inactive
	Active
	OnLeave
	OffDuty
	Suspended
	Terminated
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Inactive:      "INACTIVE",
		Active:        "ACTIVE",
		OnLeave:       "ON_LEAVE",
		OffDuty:       "OFF_DUTY",
		Suspended:     "SUSPENDED",
		Terminated:    "TERMINATED",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != UnknownStatus && name == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid deliverer status", s))
}

func (s Status) Validate() error {
	if s <= UnknownStatus || s > Terminated {
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

// IsAvailable reports whether the deliverer can take deliveries.
func (s Status) IsAvailable() bool {
	return s == Active
}
