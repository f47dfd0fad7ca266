package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"deliveryapp/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{"not found", errs.NewObjectNotFoundError("order", 1), http.StatusNotFound, KindNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", errs.NewObjectNotFoundError("order", 1)),
			http.StatusNotFound, KindNotFound},
		{"duplicate", errs.NewDuplicateResourceError("customer", "email", "a@b.c"),
			http.StatusConflict, KindDuplicateResource},
		{"invalid transition", errs.NewInvalidStateTransitionError("order", "DELIVERED", "PENDING"),
			http.StatusConflict, KindInvalidStateTransition},
		{"required", errs.NewValueIsRequiredError("email"), http.StatusBadRequest, KindValidation},
		{"invalid", errs.NewValueIsInvalidError("status"), http.StatusBadRequest, KindValidation},
		{"out of range", errs.NewValueIsOutOfRangeError("priority", 99, 0, 20), http.StatusBadRequest, KindValidation},
		{"joined validation", errors.Join(errs.NewValueIsRequiredError("a"), errs.NewValueIsInvalidError("b")),
			http.StatusBadRequest, KindValidation},
		{"remote failure", errs.NewRemoteUnavailableError("order-service", "GET /api/orders/1", nil),
			http.StatusBadGateway, KindRemoteUnavailable},
		{"remote timeout", errs.NewRemoteTimeoutError("order-service", "GET /api/orders/1", nil),
			http.StatusGatewayTimeout, KindRemoteUnavailable},
		{"unknown route", echo.ErrNotFound, http.StatusNotFound, KindNotFound},
		{"method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, KindValidation},
		{"echo internal", echo.ErrInternalServerError, http.StatusInternalServerError, KindInternal},
		{"anything else", errors.New("connection reset"), http.StatusInternalServerError, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, kind := classify(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestNewError(t *testing.T) {
	t.Run("internal errors hide their cause", func(t *testing.T) {
		body := newError(errors.New("pq: password authentication failed"))

		assert.Equal(t, Error{Code: 500, Kind: KindInternal, Message: "Internal Server Error"}, body)
	})

	t.Run("domain errors keep their message", func(t *testing.T) {
		body := newError(errs.NewObjectNotFoundError("deliverer", 3))

		assert.Equal(t, "object not found: deliverer 3", body.Message)
	})

	t.Run("validator errors name the JSON fields", func(t *testing.T) {
		type request struct {
			Status   string `json:"status"   validate:"required"`
			Priority int    `json:"priority" validate:"max=20"`
		}
		err := NewRequestValidator().Validate(request{Priority: 21})
		require.Error(t, err)

		body := newError(err)
		assert.Equal(t, KindValidation, body.Kind)
		assert.Equal(t, "invalid request: status: required, priority: max=20", body.Message)
	})

	t.Run("echo errors use their own message", func(t *testing.T) {
		body := newError(echo.ErrNotFound)

		assert.Equal(t, "Not Found", body.Message)
	})
}
