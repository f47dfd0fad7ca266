package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"deliveryapp/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "not found",
			err:      errs.NewObjectNotFoundError("order", 42),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: order 42",
		},
		{
			name:     "not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("order", 42, cause),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: order, ID is: 42 (cause: connection refused)",
		},
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("deliveryAddress"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: deliveryAddress",
		},
		{
			name:     "invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("status", errors.New(`"LOST" is not a valid order status`)),
			sentinel: errs.ErrValueIsInvalid,
			message:  `value is invalid: status (cause: "LOST" is not a valid order status)`,
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("quantity", 0, 1, 1000),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 0 is quantity, min value is 1, max value is 1000",
		},
		{
			name:     "duplicate",
			err:      errs.NewDuplicateResourceError("deliverer", "licensePlate", "AB-123"),
			sentinel: errs.ErrDuplicateResource,
			message:  "duplicate resource: deliverer with licensePlate AB-123 already exists",
		},
		{
			name:     "transition",
			err:      errs.NewInvalidStateTransitionError("delivery", "DELIVERED", "IN_TRANSIT"),
			sentinel: errs.ErrInvalidStateTransition,
			message:  "invalid state transition: delivery cannot move from DELIVERED to IN_TRANSIT",
		},
		{
			name:     "transition from unknown status",
			err:      errs.NewInvalidStateTransitionError("order", "", "COMPLETED"),
			sentinel: errs.ErrInvalidStateTransition,
			message:  "invalid state transition: order cannot move to COMPLETED",
		},
		{
			name:     "remote failure",
			err:      errs.NewRemoteUnavailableError("order-service", "GET /api/orders/1", cause),
			sentinel: errs.ErrRemoteUnavailable,
			message:  "remote service unavailable: order-service GET /api/orders/1 failed (cause: connection refused)",
		},
		{
			name:     "remote timeout",
			err:      errs.NewRemoteTimeoutError("deliverer-service", "GET /api/deliverers/available", nil),
			sentinel: errs.ErrRemoteUnavailable,
			message:  "remote service unavailable: deliverer-service GET /api/deliverers/available timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, fmt.Errorf("handler: %w", tt.err), tt.sentinel)
		})
	}
}

func TestErrorFields(t *testing.T) {
	t.Run("cause is kept but not unwrapped", func(t *testing.T) {
		cause := errors.New("bad digit")
		err := errs.NewValueIsInvalidErrorWithCause("id", cause)

		assert.Equal(t, "id", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.NotErrorIs(t, err, cause)
	})

	t.Run("out of range strips line breaks from values", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("notes", "first\r\nsecond\nthird", 0, 10)

		assert.Contains(t, err.Error(), "first second third")
		assert.NotContains(t, err.Error(), "\n")
	})

	t.Run("remote errors carry the timeout flag", func(t *testing.T) {
		var remoteErr *errs.RemoteUnavailableError

		require.ErrorAs(t, fmt.Errorf("call: %w", errs.NewRemoteTimeoutError("order-service", "GET /x", nil)), &remoteErr)
		assert.True(t, remoteErr.Timeout)

		require.ErrorAs(t, errs.NewRemoteUnavailableError("order-service", "GET /x", nil), &remoteErr)
		assert.False(t, remoteErr.Timeout)
	})
}

func TestIsDuplicateOf(t *testing.T) {
	err := fmt.Errorf("insert: %w", errs.NewDuplicateResourceError("order", "orderNumber", "ORD-1"))

	assert.True(t, errs.IsDuplicateOf(err, "orderNumber"))
	assert.False(t, errs.IsDuplicateOf(err, "email"))
	assert.False(t, errs.IsDuplicateOf(errs.NewObjectNotFoundError("order", 1), "orderNumber"))
	assert.False(t, errs.IsDuplicateOf(nil, "orderNumber"))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		errs.ErrObjectNotFound,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsOutOfRange,
		errs.ErrValueIsRequired,
		errs.ErrDuplicateResource,
		errs.ErrInvalidStateTransition,
		errs.ErrRemoteUnavailable,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
