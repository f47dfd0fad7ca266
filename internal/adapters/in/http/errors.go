package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"deliveryapp/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Error kinds carried in error bodies.
const (
	KindValidation             = "validation"
	KindNotFound               = "not_found"
	KindDuplicateResource      = "duplicate_resource"
	KindInvalidStateTransition = "invalid_state_transition"
	KindRemoteUnavailable      = "remote_unavailable"
	KindInternal               = "internal"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// classify maps an application error onto its status code and kind.
func classify(err error) (int, string) {
	var (
		remoteErr     *errs.RemoteUnavailableError
		httpErr       *echo.HTTPError
		validationErr validator.ValidationErrors
	)

	switch {
	case errors.As(err, &remoteErr):
		if remoteErr.Timeout {
			return http.StatusGatewayTimeout, KindRemoteUnavailable
		}
		return http.StatusBadGateway, KindRemoteUnavailable
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, KindNotFound
	case errors.Is(err, errs.ErrDuplicateResource):
		return http.StatusConflict, KindDuplicateResource
	case errors.Is(err, errs.ErrInvalidStateTransition):
		return http.StatusConflict, KindInvalidStateTransition
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.As(err, &validationErr):
		return http.StatusBadRequest, KindValidation
	case errors.As(err, &httpErr):
		switch {
		case httpErr.Code == http.StatusNotFound:
			return httpErr.Code, KindNotFound
		case httpErr.Code < http.StatusInternalServerError:
			return httpErr.Code, KindValidation
		default:
			return httpErr.Code, KindInternal
		}
	default:
		return http.StatusInternalServerError, KindInternal
	}
}

func newError(err error) Error {
	code, kind := classify(err)

	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		message = describe(validationErr)
	}
	if kind == KindInternal {
		message = http.StatusText(code)
	}

	return Error{Code: code, Kind: kind, Message: message}
}

func describe(validationErr validator.ValidationErrors) string {
	fields := make([]string, 0, len(validationErr))
	for _, fieldErr := range validationErr {
		// Namespace starts with the request type name.
		_, field, _ := strings.Cut(fieldErr.Namespace(), ".")
		if fieldErr.Param() != "" {
			fields = append(fields, fmt.Sprintf("%s: %s=%s", field, fieldErr.Tag(), fieldErr.Param()))
			continue
		}
		fields = append(fields, fmt.Sprintf("%s: %s", field, fieldErr.Tag()))
	}
	return "invalid request: " + strings.Join(fields, ", ")
}

// writeError answers with the mapped error body. Internal errors are logged; their
// details never reach the client.
func writeError(ctx echo.Context, logger *slog.Logger, err error) error {
	body := newError(err)
	if body.Kind == KindInternal {
		logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method, "uri", ctx.Request().RequestURI, "error", err)
	}
	return ctx.JSON(body.Code, body)
}

// ErrorHandler renders errors that escape handlers, such as unknown routes and panics
// recovered by the middleware.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}
		if writeErr := writeError(ctx, logger, err); writeErr != nil {
			logger.ErrorContext(ctx.Request().Context(), "Failed to write error response", "error", writeErr)
		}
	}
}
