package http

import (
	"log/slog"
	"net/http"

	"deliveryapp/internal/core/application/usecases/commands"
	"deliveryapp/internal/core/application/usecases/queries"
	"deliveryapp/internal/core/domain/model/customer"
	"deliveryapp/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type customerRequest struct {
	FirstName  string `json:"firstName"  validate:"required,max=100"`
	LastName   string `json:"lastName"   validate:"required,max=100"`
	Email      string `json:"email"      validate:"required,max=255"`
	Phone      string `json:"phone"      validate:"required,max=20"`
	Address    string `json:"address"    validate:"required"`
	City       string `json:"city"       validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
}

func (r customerRequest) profile() customer.Profile {
	return customer.Profile{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		City:       r.City,
		PostalCode: r.PostalCode,
	}
}

type orderItemRequest struct {
	ProductName        string           `json:"productName"        validate:"required,max=255"`
	ProductDescription *string          `json:"productDescription"`
	Quantity           int              `json:"quantity"           validate:"gte=1"`
	UnitPrice          decimal.Decimal  `json:"unitPrice"          validate:"-"`
	Weight             *decimal.Decimal `json:"weight"             validate:"-"`
	Dimensions         *string          `json:"dimensions"`
}

type createOrderRequest struct {
	CustomerID          int64              `json:"customerId"          validate:"required,gt=0"`
	DeliveryAddress     string             `json:"deliveryAddress"     validate:"required"`
	DeliveryCity        string             `json:"deliveryCity"        validate:"required"`
	DeliveryPostalCode  string             `json:"deliveryPostalCode"  validate:"required"`
	SpecialInstructions *string            `json:"specialInstructions"`
	DeliveryFee         *decimal.Decimal   `json:"deliveryFee"         validate:"-"`
	Items               []orderItemRequest `json:"items"               validate:"required,min=1,dive"`
}

func (r createOrderRequest) input() commands.CreateOrderInput {
	items := make([]order.ItemSpec, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, order.ItemSpec{
			ProductName:        item.ProductName,
			ProductDescription: item.ProductDescription,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			Weight:             item.Weight,
			Dimensions:         item.Dimensions,
		})
	}
	return commands.CreateOrderInput{
		CustomerID:          r.CustomerID,
		DeliveryAddress:     r.DeliveryAddress,
		DeliveryCity:        r.DeliveryCity,
		DeliveryPostalCode:  r.DeliveryPostalCode,
		SpecialInstructions: r.SpecialInstructions,
		DeliveryFee:         r.DeliveryFee,
		Items:               items,
	}
}

// updateOrderRequest only carries what can change; any other field of the body is ignored.
type updateOrderRequest struct {
	DeliveryAddress     *string `json:"deliveryAddress"`
	DeliveryCity        *string `json:"deliveryCity"`
	DeliveryPostalCode  *string `json:"deliveryPostalCode"`
	SpecialInstructions *string `json:"specialInstructions"`
}

type orderStatusRequest struct {
	Status    string  `json:"status"    validate:"required"`
	Notes     *string `json:"notes"`
	ChangedBy string  `json:"changedBy" validate:"max=100"`
}

// OrderServer serves customers and orders for order-service.
type OrderServer struct {
	logger *slog.Logger

	// Command handlers
	createCustomerHandler    commands.CreateCustomerCommandHandler
	updateCustomerHandler    commands.UpdateCustomerCommandHandler
	deleteCustomerHandler    commands.DeleteCustomerCommandHandler
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderHandler       commands.UpdateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	deleteOrderHandler       commands.DeleteOrderCommandHandler

	// Query handlers
	getCustomerHandler     queries.GetCustomerQueryHandler
	listCustomersHandler   queries.ListCustomersQueryHandler
	getOrderHandler        queries.GetOrderQueryHandler
	listOrdersHandler      queries.ListOrdersQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler
}

// OrderHandlers lists the use cases behind OrderServer.
type OrderHandlers struct {
	CreateCustomer    commands.CreateCustomerCommandHandler
	UpdateCustomer    commands.UpdateCustomerCommandHandler
	DeleteCustomer    commands.DeleteCustomerCommandHandler
	CreateOrder       commands.CreateOrderCommandHandler
	UpdateOrder       commands.UpdateOrderCommandHandler
	ChangeOrderStatus commands.ChangeOrderStatusCommandHandler
	DeleteOrder       commands.DeleteOrderCommandHandler

	GetCustomer     queries.GetCustomerQueryHandler
	ListCustomers   queries.ListCustomersQueryHandler
	GetOrder        queries.GetOrderQueryHandler
	ListOrders      queries.ListOrdersQueryHandler
	GetOrderHistory queries.GetOrderHistoryQueryHandler
}

func NewOrderServer(handlers OrderHandlers, logger *slog.Logger) *OrderServer {
	return &OrderServer{
		logger:                   logger.With("component", "order-server"),
		createCustomerHandler:    handlers.CreateCustomer,
		updateCustomerHandler:    handlers.UpdateCustomer,
		deleteCustomerHandler:    handlers.DeleteCustomer,
		createOrderHandler:       handlers.CreateOrder,
		updateOrderHandler:       handlers.UpdateOrder,
		changeOrderStatusHandler: handlers.ChangeOrderStatus,
		deleteOrderHandler:       handlers.DeleteOrder,
		getCustomerHandler:       handlers.GetCustomer,
		listCustomersHandler:     handlers.ListCustomers,
		getOrderHandler:          handlers.GetOrder,
		listOrdersHandler:        handlers.ListOrders,
		getOrderHistoryHandler:   handlers.GetOrderHistory,
	}
}

func (s *OrderServer) Register(e *echo.Echo) {
	customers := e.Group("/api/customers")
	customers.POST("", s.CreateCustomer)
	customers.GET("", s.ListCustomers)
	customers.GET("/:id", s.GetCustomer)
	customers.GET("/email/:email", s.GetCustomerByEmail)
	customers.PUT("/:id", s.UpdateCustomer)
	customers.DELETE("/:id", s.DeleteCustomer)

	orders := e.Group("/api/orders")
	orders.POST("", s.CreateOrder)
	orders.GET("", s.ListOrders)
	orders.GET("/:id", s.GetOrder)
	orders.GET("/number/:orderNumber", s.GetOrderByNumber)
	orders.PUT("/:id", s.UpdateOrder)
	orders.PATCH("/:id/status", s.UpdateOrderStatus)
	orders.GET("/:id/history", s.GetOrderHistory)
	orders.DELETE("/:id", s.DeleteOrder)
}

// CreateCustomer handles POST /api/customers.
func (s *OrderServer) CreateCustomer(ctx echo.Context) error {
	var req customerRequest
	if err := bindBody(ctx, &req); err != nil {
		return writeError(ctx, s.logger, err)
	}

	id, err := s.createCustomerHandler.Handle(ctx.Request().Context(), commands.NewCreateCustomerCommand(req.profile()))
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return s.customerByID(ctx, http.StatusCreated, id)
}

// GetCustomer handles GET /api/customers/{id}.
func (s *OrderServer) GetCustomer(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return s.customerByID(ctx, http.StatusOK, id)
}

// GetCustomerByEmail handles GET /api/customers/email/{email}.
func (s *OrderServer) GetCustomerByEmail(ctx echo.Context) error {
	email, err := pathString(ctx, "email")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	query, err := queries.NewGetCustomerByEmailQuery(email)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	view, err := s.getCustomerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// ListCustomers handles GET /api/customers.
func (s *OrderServer) ListCustomers(ctx echo.Context) error {
	views, err := s.listCustomersHandler.Handle(ctx.Request().Context(), queries.NewListCustomersQuery())
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, views)
}

// UpdateCustomer handles PUT /api/customers/{id}; the whole profile is replaced.
func (s *OrderServer) UpdateCustomer(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var req customerRequest
	if err = bindBody(ctx, &req); err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewUpdateCustomerCommand(id, req.profile())
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	if err = s.updateCustomerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}
	return s.customerByID(ctx, http.StatusOK, id)
}

// DeleteCustomer handles DELETE /api/customers/{id}.
func (s *OrderServer) DeleteCustomer(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewDeleteCustomerCommand(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	if err = s.deleteCustomerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateOrder handles POST /api/orders.
func (s *OrderServer) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := bindBody(ctx, &req); err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewCreateOrderCommand(req.input())
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	id, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return s.orderByID(ctx, http.StatusCreated, id)
}

// GetOrder handles GET /api/orders/{id}.
func (s *OrderServer) GetOrder(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return s.orderByID(ctx, http.StatusOK, id)
}

// GetOrderByNumber handles GET /api/orders/number/{orderNumber}.
func (s *OrderServer) GetOrderByNumber(ctx echo.Context) error {
	number, err := pathString(ctx, "orderNumber")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	query, err := queries.NewGetOrderByNumberQuery(number)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// ListOrders handles GET /api/orders?customerId=&status=&page=&size=. A page body is
// returned only when page or size is given.
func (s *OrderServer) ListOrders(ctx echo.Context) error {
	var (
		customerID *int64
		status     *string
		page, size *int
	)
	params := []struct {
		name string
		dest any
	}{
		{"customerId", &customerID},
		{"status", &status},
		{"page", &page},
		{"size", &size},
	}
	for _, p := range params {
		if err := queryParam(ctx, p.name, p.dest); err != nil {
			return writeError(ctx, s.logger, err)
		}
	}

	pageable, err := queries.NewPageable(page, size)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	query, err := queries.NewListOrdersQuery(customerID, status, pageable)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	if query.Paged() {
		return ctx.JSON(http.StatusOK, result)
	}
	return ctx.JSON(http.StatusOK, result.Content)
}

// UpdateOrder handles PUT /api/orders/{id}.
func (s *OrderServer) UpdateOrder(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var req updateOrderRequest
	if err = bindBody(ctx, &req); err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(id, order.DeliveryDetailsPatch{
		DeliveryAddress:     req.DeliveryAddress,
		DeliveryCity:        req.DeliveryCity,
		DeliveryPostalCode:  req.DeliveryPostalCode,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	if err = s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}
	return s.orderByID(ctx, http.StatusOK, id)
}

// UpdateOrderStatus handles PATCH /api/orders/{id}/status.
func (s *OrderServer) UpdateOrderStatus(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var req orderStatusRequest
	if err = bindBody(ctx, &req); err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, req.Status, req.Notes, req.ChangedBy)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}
	return s.orderByID(ctx, http.StatusOK, id)
}

// GetOrderHistory handles GET /api/orders/{id}/history.
func (s *OrderServer) GetOrderHistory(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	history, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, history)
}

// DeleteOrder handles DELETE /api/orders/{id}.
func (s *OrderServer) DeleteOrder(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *OrderServer) customerByID(ctx echo.Context, status int, id int64) error {
	query, err := queries.NewGetCustomerQuery(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	view, err := s.getCustomerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(status, view)
}

func (s *OrderServer) orderByID(ctx echo.Context, status int, id int64) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(status, view)
}
