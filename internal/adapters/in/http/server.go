// Package http is the inbound REST adapter. Each service has its own server type that
// holds the use case handlers it exposes; NewEcho wraps any of them with the shared
// middleware, error rendering and operational endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

func init() {
	// Decimals are JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}

// Router registers the API routes of one service.
type Router interface {
	Register(e *echo.Echo)
}

// NewEcho builds the echo instance of service with router mounted behind request id,
// request logging, panic recovery and metrics. It also serves /health, /metrics and the
// API documents.
func NewEcho(ctx context.Context, service string, logger *slog.Logger, router Router) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx, service)
	if err != nil {
		return nil, err
	}

	logger = logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(RequestID())
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(Metrics(service))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	if err = registerDocs(e, service, doc); err != nil {
		return nil, err
	}

	router.Register(e)
	return e, nil
}

// MutationResponse carries the result of a delivery write with the order status updates
// that could not be applied.
type MutationResponse[T any] struct {
	Data     T        `json:"data"`
	Warnings []string `json:"warnings"`
}

func newMutationResponse[T any](data T, warnings []string) MutationResponse[T] {
	if warnings == nil {
		warnings = []string{}
	}
	return MutationResponse[T]{Data: data, Warnings: warnings}
}
