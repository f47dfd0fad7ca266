package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"deliveryapp/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEcho mounts servers whose handlers are never reached: every request below is
// rejected before a use case runs.
func newTestEcho(t *testing.T, service string) *echo.Echo {
	t.Helper()

	var router Router
	switch service {
	case ports.OrderServiceName:
		router = NewOrderServer(OrderHandlers{}, discardLogger())
	case ports.DeliveryServiceName:
		router = NewDeliveryServer(DeliveryHandlers{}, discardLogger())
	case ports.DelivererServiceName:
		router = NewDelivererServer(DelivererHandlers{}, discardLogger())
	}

	e, err := NewEcho(context.Background(), service, discardLogger(), router)
	require.NoError(t, err)
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()

	var body Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestNewEcho_OperationalEndpoints(t *testing.T) {
	e := newTestEcho(t, ports.OrderServiceName)

	t.Run("health", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Healthy", rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("request id is propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(echo.HeaderXRequestID, "abc-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("api document", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/openapi.json", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.3", doc["openapi"])
		assert.Contains(t, doc["paths"], "/api/orders/{id}/status")
	})

	t.Run("metrics count requests by route", func(t *testing.T) {
		serve(e, http.MethodGet, "/health", "")

		rec := serve(e, http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(),
			`deliveryapp_http_requests_total{method="GET",route="/health",service="order-service",status="200"}`)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/nothing", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, KindNotFound, decodeError(t, rec).Kind)
	})
}

func TestOrderServer_RejectsBadRequests(t *testing.T) {
	e := newTestEcho(t, ports.OrderServiceName)

	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		message string
	}{
		{
			name:    "customer without required fields",
			method:  http.MethodPost,
			target:  "/api/customers",
			body:    `{"firstName":"Ada"}`,
			message: "lastName: required",
		},
		{
			name:    "malformed body",
			method:  http.MethodPost,
			target:  "/api/customers",
			body:    `{"firstName":`,
			message: "value is invalid: body",
		},
		{
			name:    "order without items",
			method:  http.MethodPost,
			target:  "/api/orders",
			body:    `{"customerId":1,"deliveryAddress":"1 Main St","deliveryCity":"X","deliveryPostalCode":"1","items":[]}`,
			message: "items: min=1",
		},
		{
			name:    "item with zero quantity",
			method:  http.MethodPost,
			target:  "/api/orders",
			body:    `{"customerId":1,"deliveryAddress":"1 Main St","deliveryCity":"X","deliveryPostalCode":"1","items":[{"productName":"Tea","quantity":0,"unitPrice":1}]}`,
			message: "quantity: gte=1",
		},
		{
			name:    "non numeric id",
			method:  http.MethodGet,
			target:  "/api/orders/abc",
			message: "value is invalid: id",
		},
		{
			name:    "non positive id",
			method:  http.MethodDelete,
			target:  "/api/customers/0",
			message: "value is invalid: id",
		},
		{
			name:    "non numeric page",
			method:  http.MethodGet,
			target:  "/api/orders?page=first",
			message: "value is invalid: page",
		},
		{
			name:    "unknown status filter",
			method:  http.MethodGet,
			target:  "/api/orders?status=LOST",
			message: "status",
		},
		{
			name:    "status change without status",
			method:  http.MethodPatch,
			target:  "/api/orders/1/status",
			body:    `{"notes":"x"}`,
			message: "status: required",
		},
		{
			name:    "changedBy too long",
			method:  http.MethodPatch,
			target:  "/api/orders/1/status",
			body:    `{"status":"PROCESSING","changedBy":"` + strings.Repeat("u", 101) + `"}`,
			message: "changedBy: max=100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, tt.method, tt.target, tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			body := decodeError(t, rec)
			assert.Equal(t, KindValidation, body.Kind)
			assert.Equal(t, http.StatusBadRequest, body.Code)
			assert.Contains(t, body.Message, tt.message)
		})
	}
}

func TestDeliveryServer_RejectsBadRequests(t *testing.T) {
	e := newTestEcho(t, ports.DeliveryServiceName)

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"delivery without order", http.MethodPost, "/api/deliveries", `{"pickupAddress":"1 Depot Rd"}`},
		{"priority too long", http.MethodPut, "/api/deliveries/1", `{"priority":"URGENT-URGENT-URGENT-X"}`},
		{"negative duration", http.MethodPut, "/api/deliveries/1", `{"estimatedDuration":-5}`},
		{"deliverer id zero", http.MethodPut, "/api/deliveries/1", `{"delivererId":0}`},
		{"from order with bad id", http.MethodPost, "/api/deliveries/from-order/zero", ""},
		{"complete with bad id", http.MethodPost, "/api/deliveries/orders/-1/complete", ""},
		{"tracking with bad id", http.MethodGet, "/api/deliveries/x/track", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, tt.method, tt.target, tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, KindValidation, decodeError(t, rec).Kind)
		})
	}
}

func TestDelivererServer_RejectsBadRequests(t *testing.T) {
	e := newTestEcho(t, ports.DelivererServiceName)

	const valid = `"firstName":"Bo","lastName":"Rider","email":"bo@example.com","phone":"555",` +
		`"address":"2 Side St","city":"X","postalCode":"1"`

	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		message string
	}{
		{"missing email", http.MethodPost, "/api/deliverers", `{"firstName":"Bo"}`, "email: required"},
		{"unknown status", http.MethodPost, "/api/deliverers", `{` + valid + `,"status":"RESTING"}`, "status"},
		{"unknown vehicle", http.MethodPost, "/api/deliverers", `{` + valid + `,"vehicleType":"BOAT"}`, "vehicleType"},
		{"malformed date", http.MethodPost, "/api/deliverers", `{` + valid + `,"hireDate":"yesterday"}`, "body"},
		{"unknown status on update", http.MethodPut, "/api/deliverers/4", `{"status":"RESTING"}`, "status"},
		{"bad id on location", http.MethodGet, "/api/deliverers/none/location", "", "id"},
		{
			"national id too long", http.MethodPost, "/api/deliverers",
			`{` + valid + `,"nationalId":"` + strings.Repeat("1", 51) + `"}`, "nationalId: max=50",
		},
		{
			"emergency contact name too long", http.MethodPost, "/api/deliverers",
			`{` + valid + `,"emergencyContactName":"` + strings.Repeat("n", 201) + `"}`, "emergencyContactName: max=200",
		},
		{
			"emergency contact phone too long", http.MethodPut, "/api/deliverers/4",
			`{"emergencyContactPhone":"` + strings.Repeat("5", 21) + `"}`, "emergencyContactPhone: max=20",
		},
		{
			"photo url too long", http.MethodPut, "/api/deliverers/4",
			`{"profilePhotoUrl":"https://cdn.example/` + strings.Repeat("p", 500) + `"}`, "profilePhotoUrl: max=500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, tt.method, tt.target, tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			body := decodeError(t, rec)
			assert.Equal(t, KindValidation, body.Kind)
			assert.Contains(t, body.Message, tt.message)
		})
	}
}

func TestLoadOpenAPI(t *testing.T) {
	for _, service := range []string{ports.OrderServiceName, ports.DeliveryServiceName, ports.DelivererServiceName} {
		t.Run(service, func(t *testing.T) {
			doc, err := LoadOpenAPI(context.Background(), service)
			require.NoError(t, err)
			assert.NotEmpty(t, doc.Paths.Map())
		})
	}

	t.Run("unknown service", func(t *testing.T) {
		_, err := LoadOpenAPI(context.Background(), "billing-service")
		require.Error(t, err)
	})
}
