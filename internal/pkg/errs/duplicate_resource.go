package errs

import (
	"errors"
	"fmt"
)

var ErrDuplicateResource = errors.New("duplicate resource")

// DuplicateResourceError reports that a unique attribute of an entity is already taken.
type DuplicateResourceError struct {
	Resource string
	Field    string
	Value    any
	Cause    error
}

func NewDuplicateResourceError(resource, field string, value any) *DuplicateResourceError {
	return &DuplicateResourceError{Resource: resource, Field: field, Value: value}
}

func NewDuplicateResourceErrorWithCause(resource, field string, value any, cause error) *DuplicateResourceError {
	return &DuplicateResourceError{Resource: resource, Field: field, Value: value, Cause: cause}
}

func (e *DuplicateResourceError) Error() string {
	msg := fmt.Sprintf("%s: %s with %s %v already exists", ErrDuplicateResource, e.Resource, e.Field, sanitize(e.Value))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *DuplicateResourceError) Unwrap() error {
	return ErrDuplicateResource
}

// IsDuplicateOf reports whether err is a DuplicateResourceError on the given field.
func IsDuplicateOf(err error, field string) bool {
	var dup *DuplicateResourceError
	return errors.As(err, &dup) && dup.Field == field
}
