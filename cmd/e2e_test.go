package cmd_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deliveryapp/cmd"
	postgresadapter "deliveryapp/internal/adapters/out/postgres"
	"deliveryapp/internal/adapters/out/postgres/pgtest"
	"deliveryapp/internal/core/ports"
	"deliveryapp/internal/pkg/discovery"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type runningService struct {
	app      *cmd.App
	server   *httptest.Server
	instance discovery.Instance
}

// EndToEndTestSuite runs the three services in-process against one database. Peers find
// each other through a shared static registry.
type EndToEndTestSuite struct {
	suite.Suite
	database *pgtest.Database
	db       *gorm.DB
	registry *discovery.StaticRegistry
	services map[string]*runningService
}

func TestEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a postgres container")
	}
	suite.Run(t, new(EndToEndTestSuite))
}

func (suite *EndToEndTestSuite) SetupSuite() {
	ctx := context.Background()

	database, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.database = database

	suite.db, err = database.OpenGorm()
	suite.Require().NoError(err)

	suite.registry = discovery.NewStaticRegistry(nil)
	suite.services = make(map[string]*runningService)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, name := range []string{ports.OrderServiceName, ports.DeliveryServiceName, ports.DelivererServiceName} {
		config := cmd.Config{
			Env:               "development",
			Service:           name,
			HTTPPort:          "0",
			AdvertiseURL:      "http://localhost",
			DatabaseURL:       database.DSN,
			DBMaxOpenConns:    5,
			HeartbeatInterval: time.Second,
			RemoteTimeout:     2 * time.Second,
			Pickup:            cmd.Pickup{Address: "1 Depot Road", City: "Central", PostalCode: "00000"},
		}
		app, appErr := cmd.NewApp(ctx, config, logger, cmd.WithRegistry(suite.registry))
		suite.Require().NoError(appErr)

		suite.services[name] = &runningService{app: app}
		suite.start(name)
	}
}

func (suite *EndToEndTestSuite) SetupTest() {
	tables := append(postgresadapter.OrderSchema.Tables(), postgresadapter.DeliverySchema.Tables()...)
	tables = append(tables, postgresadapter.DelivererSchema.Tables()...)
	suite.Require().NoError(pgtest.Truncate(suite.db, tables...))

	// Every test starts with all services up.
	for name, service := range suite.services {
		if service.server == nil {
			suite.restart(name)
		}
	}
}

func (suite *EndToEndTestSuite) TearDownSuite() {
	for _, service := range suite.services {
		if service.server != nil {
			service.server.Close()
		}
		service.app.Close()
	}
	if pool, err := suite.db.DB(); err == nil {
		_ = pool.Close()
	}
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *EndToEndTestSuite) start(name string) {
	service := suite.services[name]
	service.server = httptest.NewServer(service.app.Handler())
	service.instance = discovery.NewInstance(name, service.server.URL)
	suite.Require().NoError(suite.registry.Register(context.Background(), service.instance))
}

// stop closes the server but leaves its registration behind, as a crashed instance would.
func (suite *EndToEndTestSuite) stop(name string) {
	service := suite.services[name]
	service.server.Close()
	service.server = nil
}

// restart brings a stopped service back under a new address.
func (suite *EndToEndTestSuite) restart(name string) {
	suite.Require().NoError(suite.registry.Deregister(context.Background(), suite.services[name].instance))
	suite.start(name)
}

func (suite *EndToEndTestSuite) call(service, method, path string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, suite.services[service].server.URL+path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)
	return resp.StatusCode, raw
}

func (suite *EndToEndTestSuite) mustCall(service, method, path string, body any, want int, dest any) {
	code, raw := suite.call(service, method, path, body)
	suite.Require().Equal(want, code, "%s %s: %s", method, path, raw)
	if dest != nil {
		suite.Require().NoError(json.Unmarshal(raw, dest))
	}
}

type errorBody struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type orderBody struct {
	ID          int64   `json:"id"`
	OrderNumber string  `json:"orderNumber"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
}

type historyBody struct {
	Status    string `json:"status"`
	ChangedBy string `json:"changedBy"`
}

type deliveryEnvelope struct {
	Data struct {
		ID             int64  `json:"id"`
		DeliveryNumber string `json:"deliveryNumber"`
		OrderNumber    string `json:"orderNumber"`
		Status         string `json:"status"`
		DelivererID    *int64 `json:"delivererId"`
	} `json:"data"`
	Warnings []string `json:"warnings"`
}

func (suite *EndToEndTestSuite) createCustomer(email string) int64 {
	var customer struct {
		ID int64 `json:"id"`
	}
	suite.mustCall(ports.OrderServiceName, http.MethodPost, "/api/customers", map[string]any{
		"firstName": "Ada", "lastName": "Lovelace", "email": email, "phone": "555-0100",
		"address": "12 Analytical St", "city": "London", "postalCode": "N1",
	}, http.StatusCreated, &customer)
	return customer.ID
}

func (suite *EndToEndTestSuite) createOrder(customerID int64) orderBody {
	var order orderBody
	suite.mustCall(ports.OrderServiceName, http.MethodPost, "/api/orders", map[string]any{
		"customerId":         customerID,
		"deliveryAddress":    "221B Baker St",
		"deliveryCity":       "London",
		"deliveryPostalCode": "NW1",
		"deliveryFee":        3.50,
		"items": []map[string]any{
			{"productName": "Tea", "quantity": 2, "unitPrice": 10.00},
		},
	}, http.StatusCreated, &order)
	return order
}

func (suite *EndToEndTestSuite) createDeliverer() int64 {
	var deliverer struct {
		ID             int64  `json:"id"`
		EmployeeNumber string `json:"employeeNumber"`
	}
	suite.mustCall(ports.DelivererServiceName, http.MethodPost, "/api/deliverers", map[string]any{
		"firstName": "Bo", "lastName": "Rider", "email": "bo@example.com", "phone": "555-0200",
		"dateOfBirth": "1990-04-01", "address": "3 Side St", "city": "London", "postalCode": "E1",
		"status": "ACTIVE", "vehicleType": "BIKE",
	}, http.StatusCreated, &deliverer)
	suite.NotEmpty(deliverer.EmployeeNumber)
	return deliverer.ID
}

func (suite *EndToEndTestSuite) createDelivery(orderID int64) deliveryEnvelope {
	var created deliveryEnvelope
	suite.mustCall(ports.DeliveryServiceName, http.MethodPost, "/api/deliveries", map[string]any{
		"orderId":          orderID,
		"pickupAddress":    "1 Depot Road",
		"pickupCity":       "Central",
		"pickupPostalCode": "00000",
	}, http.StatusCreated, &created)
	return created
}

func (suite *EndToEndTestSuite) moveDelivery(id int64, body map[string]any) deliveryEnvelope {
	var updated deliveryEnvelope
	suite.mustCall(ports.DeliveryServiceName, http.MethodPut, fmt.Sprintf("/api/deliveries/%d", id),
		body, http.StatusOK, &updated)
	return updated
}

func (suite *EndToEndTestSuite) orderHistory(orderID int64) []historyBody {
	var history []historyBody
	suite.mustCall(ports.OrderServiceName, http.MethodGet, fmt.Sprintf("/api/orders/%d/history", orderID),
		nil, http.StatusOK, &history)
	return history
}

func (suite *EndToEndTestSuite) TestHappyPath() {
	order := suite.createOrder(suite.createCustomer("a@b"))

	suite.Equal("PENDING", order.Status)
	suite.InDelta(23.50, order.TotalAmount, 0.001)
	suite.Regexp(`^ORD-\d+`, order.OrderNumber)

	history := suite.orderHistory(order.ID)
	suite.Require().Len(history, 1)
	suite.Equal("PENDING", history[0].Status)
}

func (suite *EndToEndTestSuite) TestFullLifecycle() {
	order := suite.createOrder(suite.createCustomer("a@b"))
	delivererID := suite.createDeliverer()

	created := suite.createDelivery(order.ID)
	suite.Equal("PENDING_ASSIGNMENT", created.Data.Status)
	suite.Equal(order.OrderNumber, created.Data.OrderNumber)
	suite.Regexp(`^DEL-\d{14}`, created.Data.DeliveryNumber)
	suite.Empty(created.Warnings)

	assigned := suite.moveDelivery(created.Data.ID, map[string]any{"status": "ASSIGNED", "delivererId": delivererID})
	suite.Require().NotNil(assigned.Data.DelivererID)
	suite.Equal(delivererID, *assigned.Data.DelivererID)

	for _, status := range []string{"PICKED_UP", "IN_TRANSIT", "ARRIVED", "DELIVERED"} {
		moved := suite.moveDelivery(created.Data.ID, map[string]any{"status": status})
		suite.Equal(status, moved.Data.Status)
		suite.Empty(moved.Warnings, status)
	}

	var final orderBody
	suite.mustCall(ports.OrderServiceName, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID),
		nil, http.StatusOK, &final)
	suite.Equal("COMPLETED", final.Status)

	history := suite.orderHistory(order.ID)
	suite.Require().Len(history, 4)
	for i, status := range []string{"PENDING", "PROCESSING", "READY_FOR_DELIVERY", "COMPLETED"} {
		suite.Equal(status, history[i].Status)
		if i > 0 {
			suite.Equal("delivery-service", history[i].ChangedBy)
		}
	}
}

func (suite *EndToEndTestSuite) TestInvalidOrderTransition() {
	order := suite.createOrder(suite.createCustomer("a@b"))

	var body errorBody
	suite.mustCall(ports.OrderServiceName, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", order.ID),
		map[string]any{"status": "COMPLETED"}, http.StatusConflict, &body)
	suite.Equal("invalid_state_transition", body.Kind)

	suite.Len(suite.orderHistory(order.ID), 1)
}

func (suite *EndToEndTestSuite) TestDuplicateCustomerEmail() {
	suite.createCustomer("c@d")

	var body errorBody
	suite.mustCall(ports.OrderServiceName, http.MethodPost, "/api/customers", map[string]any{
		"firstName": "Charles", "lastName": "Babbage", "email": "c@d", "phone": "555-0101",
		"address": "1 Engine Rd", "city": "London", "postalCode": "N2",
	}, http.StatusConflict, &body)
	suite.Equal("duplicate_resource", body.Kind)
}

func (suite *EndToEndTestSuite) TestCreateDeliveryWithOrderServiceDown() {
	suite.stop(ports.OrderServiceName)

	var body errorBody
	suite.mustCall(ports.DeliveryServiceName, http.MethodPost, "/api/deliveries", map[string]any{
		"orderId":          999,
		"pickupAddress":    "1 Depot Road",
		"pickupCity":       "Central",
		"pickupPostalCode": "00000",
	}, http.StatusNotFound, &body)
	suite.Equal("not_found", body.Kind)
	suite.Contains(body.Message, "order")

	var deliveries []json.RawMessage
	suite.mustCall(ports.DeliveryServiceName, http.MethodGet, "/api/deliveries", nil, http.StatusOK, &deliveries)
	suite.Empty(deliveries)
}

func (suite *EndToEndTestSuite) TestDeliveredWhileOrderServiceDown() {
	order := suite.createOrder(suite.createCustomer("a@b"))
	delivererID := suite.createDeliverer()

	created := suite.createDelivery(order.ID)
	suite.moveDelivery(created.Data.ID, map[string]any{"status": "ASSIGNED", "delivererId": delivererID})
	for _, status := range []string{"PICKED_UP", "IN_TRANSIT", "ARRIVED"} {
		suite.moveDelivery(created.Data.ID, map[string]any{"status": status})
	}

	suite.stop(ports.OrderServiceName)
	delivered := suite.moveDelivery(created.Data.ID, map[string]any{"status": "DELIVERED"})
	suite.Equal("DELIVERED", delivered.Data.Status)
	suite.Require().Len(delivered.Warnings, 1)
	suite.Contains(delivered.Warnings[0], fmt.Sprintf("PATCH /api/orders/%d/status", order.ID))

	suite.restart(ports.OrderServiceName)

	var stored deliveryEnvelope
	suite.mustCall(ports.DeliveryServiceName, http.MethodGet, fmt.Sprintf("/api/deliveries/%d", created.Data.ID),
		nil, http.StatusOK, &stored.Data)
	suite.Equal("DELIVERED", stored.Data.Status)

	var current orderBody
	suite.mustCall(ports.OrderServiceName, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID),
		nil, http.StatusOK, &current)
	suite.Equal("READY_FOR_DELIVERY", current.Status)
}

func (suite *EndToEndTestSuite) TestCreateDeliveryFromOrder() {
	order := suite.createOrder(suite.createCustomer("a@b"))
	delivererID := suite.createDeliverer()

	var created deliveryEnvelope
	suite.mustCall(ports.DeliveryServiceName, http.MethodPost,
		fmt.Sprintf("/api/deliveries/from-order/%d", order.ID), nil, http.StatusCreated, &created)
	suite.Equal("ASSIGNED", created.Data.Status)
	suite.Require().NotNil(created.Data.DelivererID)
	suite.Equal(delivererID, *created.Data.DelivererID)

	var current orderBody
	suite.mustCall(ports.OrderServiceName, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID),
		nil, http.StatusOK, &current)
	suite.Equal("PROCESSING", current.Status)

	code, raw := suite.call(ports.DeliveryServiceName, http.MethodPost,
		fmt.Sprintf("/api/deliveries/orders/%d/complete", order.ID), map[string]any{"notes": "handed over"})
	suite.Equal(http.StatusConflict, code, string(raw))
}
