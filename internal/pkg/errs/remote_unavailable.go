package errs

import (
	"errors"
	"fmt"
)

var ErrRemoteUnavailable = errors.New("remote service unavailable")

// RemoteUnavailableError reports a failed or timed out call to a peer service.
type RemoteUnavailableError struct {
	Service   string
	Operation string
	Timeout   bool
	Cause     error
}

func NewRemoteUnavailableError(service, operation string, cause error) *RemoteUnavailableError {
	return &RemoteUnavailableError{Service: service, Operation: operation, Cause: cause}
}

func NewRemoteTimeoutError(service, operation string, cause error) *RemoteUnavailableError {
	return &RemoteUnavailableError{Service: service, Operation: operation, Timeout: true, Cause: cause}
}

func (e *RemoteUnavailableError) Error() string {
	kind := "failed"
	if e.Timeout {
		kind = "timed out"
	}
	msg := fmt.Sprintf("%s: %s %s %s", ErrRemoteUnavailable, e.Service, e.Operation, kind)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *RemoteUnavailableError) Unwrap() error {
	return ErrRemoteUnavailable
}
