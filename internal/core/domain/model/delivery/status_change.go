package delivery

import "time"

// StatusChange records one committed transition of a delivery.
type StatusChange struct {
	From  Status
	To    Status
	Notes *string
	At    time.Time
}
