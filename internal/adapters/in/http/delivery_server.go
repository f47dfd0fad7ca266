package http

import (
	"log/slog"
	"net/http"
	"time"

	"deliveryapp/internal/core/application/usecases/commands"
	"deliveryapp/internal/core/application/usecases/queries"
	"deliveryapp/internal/core/domain/model/delivery"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// deliveryFields are the replaceable attributes shared by create and update bodies.
type deliveryFields struct {
	DelivererID           *int64           `json:"delivererId"           validate:"omitnil,gt=0"`
	Status                *string          `json:"status"`
	PickupAddress         *string          `json:"pickupAddress"`
	PickupCity            *string          `json:"pickupCity"`
	PickupPostalCode      *string          `json:"pickupPostalCode"`
	DeliveryAddress       *string          `json:"deliveryAddress"`
	DeliveryCity          *string          `json:"deliveryCity"`
	DeliveryPostalCode    *string          `json:"deliveryPostalCode"`
	EstimatedDistance     *decimal.Decimal `json:"estimatedDistance"     validate:"-"`
	EstimatedDuration     *int             `json:"estimatedDuration"     validate:"omitnil,gte=0"`
	ActualDistance        *decimal.Decimal `json:"actualDistance"        validate:"-"`
	ActualDuration        *int             `json:"actualDuration"        validate:"omitnil,gte=0"`
	Priority              *string          `json:"priority"              validate:"omitnil,max=20"`
	ScheduledPickupTime   *time.Time       `json:"scheduledPickupTime"`
	ActualPickupTime      *time.Time       `json:"actualPickupTime"`
	EstimatedDeliveryTime *time.Time       `json:"estimatedDeliveryTime"`
	ActualDeliveryTime    *time.Time       `json:"actualDeliveryTime"`
	SpecialInstructions   *string          `json:"specialInstructions"`
	Notes                 *string          `json:"notes"`
}

func (f deliveryFields) schedule() delivery.Schedule {
	return delivery.Schedule{
		EstimatedDistance:     f.EstimatedDistance,
		EstimatedDuration:     f.EstimatedDuration,
		ActualDistance:        f.ActualDistance,
		ActualDuration:        f.ActualDuration,
		ScheduledPickupTime:   f.ScheduledPickupTime,
		ActualPickupTime:      f.ActualPickupTime,
		EstimatedDeliveryTime: f.EstimatedDeliveryTime,
		ActualDeliveryTime:    f.ActualDeliveryTime,
	}
}

type createDeliveryRequest struct {
	OrderID     int64   `json:"orderId"     validate:"required,gt=0"`
	OrderNumber *string `json:"orderNumber"`
	deliveryFields
}

func (r createDeliveryRequest) input() commands.CreateDeliveryInput {
	return commands.CreateDeliveryInput{
		OrderID:             r.OrderID,
		OrderNumber:         r.OrderNumber,
		DelivererID:         r.DelivererID,
		Status:              r.Status,
		PickupAddress:       r.PickupAddress,
		PickupCity:          r.PickupCity,
		PickupPostalCode:    r.PickupPostalCode,
		DeliveryAddress:     r.DeliveryAddress,
		DeliveryCity:        r.DeliveryCity,
		DeliveryPostalCode:  r.DeliveryPostalCode,
		Priority:            r.Priority,
		SpecialInstructions: r.SpecialInstructions,
		Notes:               r.Notes,
		Schedule:            r.schedule(),
	}
}

type updateDeliveryRequest struct {
	deliveryFields
}

func (r updateDeliveryRequest) input() commands.UpdateDeliveryInput {
	return commands.UpdateDeliveryInput{
		DelivererID:         r.DelivererID,
		Status:              r.Status,
		PickupAddress:       r.PickupAddress,
		PickupCity:          r.PickupCity,
		PickupPostalCode:    r.PickupPostalCode,
		DeliveryAddress:     r.DeliveryAddress,
		DeliveryCity:        r.DeliveryCity,
		DeliveryPostalCode:  r.DeliveryPostalCode,
		Priority:            r.Priority,
		SpecialInstructions: r.SpecialInstructions,
		Notes:               r.Notes,
		Schedule:            r.schedule(),
	}
}

type completeOrderRequest struct {
	Notes *string `json:"notes"`
}

// DeliveryServer serves deliveries and the orchestration endpoints of delivery-service.
type DeliveryServer struct {
	logger *slog.Logger

	// Command handlers
	createDeliveryHandler          commands.CreateDeliveryCommandHandler
	updateDeliveryHandler          commands.UpdateDeliveryCommandHandler
	deleteDeliveryHandler          commands.DeleteDeliveryCommandHandler
	createDeliveryFromOrderHandler commands.CreateDeliveryFromOrderCommandHandler
	completeOrderHandler           commands.CompleteOrderCommandHandler

	// Query handlers
	getDeliveryHandler         queries.GetDeliveryQueryHandler
	listDeliveriesHandler      queries.ListDeliveriesQueryHandler
	getDeliveryTrackingHandler queries.GetDeliveryTrackingQueryHandler
}

// DeliveryHandlers lists the use cases behind DeliveryServer.
type DeliveryHandlers struct {
	CreateDelivery          commands.CreateDeliveryCommandHandler
	UpdateDelivery          commands.UpdateDeliveryCommandHandler
	DeleteDelivery          commands.DeleteDeliveryCommandHandler
	CreateDeliveryFromOrder commands.CreateDeliveryFromOrderCommandHandler
	CompleteOrder           commands.CompleteOrderCommandHandler

	GetDelivery         queries.GetDeliveryQueryHandler
	ListDeliveries      queries.ListDeliveriesQueryHandler
	GetDeliveryTracking queries.GetDeliveryTrackingQueryHandler
}

func NewDeliveryServer(handlers DeliveryHandlers, logger *slog.Logger) *DeliveryServer {
	return &DeliveryServer{
		logger:                         logger.With("component", "delivery-server"),
		createDeliveryHandler:          handlers.CreateDelivery,
		updateDeliveryHandler:          handlers.UpdateDelivery,
		deleteDeliveryHandler:          handlers.DeleteDelivery,
		createDeliveryFromOrderHandler: handlers.CreateDeliveryFromOrder,
		completeOrderHandler:           handlers.CompleteOrder,
		getDeliveryHandler:             handlers.GetDelivery,
		listDeliveriesHandler:          handlers.ListDeliveries,
		getDeliveryTrackingHandler:     handlers.GetDeliveryTracking,
	}
}

func (s *DeliveryServer) Register(e *echo.Echo) {
	deliveries := e.Group("/api/deliveries")
	deliveries.POST("", s.CreateDelivery)
	deliveries.GET("", s.ListDeliveries)
	deliveries.GET("/:id", s.GetDelivery)
	deliveries.PUT("/:id", s.UpdateDelivery)
	deliveries.DELETE("/:id", s.DeleteDelivery)
	deliveries.GET("/:id/track", s.GetDeliveryTracking)

	deliveries.POST("/from-order/:orderId", s.CreateDeliveryFromOrder)
	deliveries.POST("/orders/:orderId/complete", s.CompleteDeliveryAndUpdateOrder)
}

// CreateDelivery handles POST /api/deliveries.
func (s *DeliveryServer) CreateDelivery(ctx echo.Context) error {
	var req createDeliveryRequest
	if err := bindBody(ctx, &req); err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewCreateDeliveryCommand(req.input())
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	result, err := s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return s.mutation(ctx, http.StatusCreated, result)
}

// GetDelivery handles GET /api/deliveries/{id}.
func (s *DeliveryServer) GetDelivery(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	view, err := s.deliveryByID(ctx, id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// ListDeliveries handles GET /api/deliveries?delivererId=.
func (s *DeliveryServer) ListDeliveries(ctx echo.Context) error {
	var delivererID *int64
	if err := queryParam(ctx, "delivererId", &delivererID); err != nil {
		return writeError(ctx, s.logger, err)
	}

	views, err := s.listDeliveriesHandler.Handle(ctx.Request().Context(), queries.NewListDeliveriesQuery(delivererID))
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, views)
}

// UpdateDelivery handles PUT /api/deliveries/{id}.
func (s *DeliveryServer) UpdateDelivery(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var req updateDeliveryRequest
	if err = bindBody(ctx, &req); err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewUpdateDeliveryCommand(id, req.input())
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	result, err := s.updateDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return s.mutation(ctx, http.StatusOK, result)
}

// DeleteDelivery handles DELETE /api/deliveries/{id}.
func (s *DeliveryServer) DeleteDelivery(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewDeleteDeliveryCommand(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	if err = s.deleteDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetDeliveryTracking handles GET /api/deliveries/{id}/track.
func (s *DeliveryServer) GetDeliveryTracking(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	query, err := queries.NewGetDeliveryQuery(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	events, err := s.getDeliveryTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, events)
}

// CreateDeliveryFromOrder handles POST /api/deliveries/from-order/{orderId}.
func (s *DeliveryServer) CreateDeliveryFromOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewCreateDeliveryFromOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	result, err := s.createDeliveryFromOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return s.mutation(ctx, http.StatusCreated, result)
}

// CompleteDeliveryAndUpdateOrder handles POST /api/deliveries/orders/{orderId}/complete.
// The body is optional.
func (s *DeliveryServer) CompleteDeliveryAndUpdateOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var req completeOrderRequest
	if ctx.Request().ContentLength != 0 {
		if err = bindBody(ctx, &req); err != nil {
			return writeError(ctx, s.logger, err)
		}
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, req.Notes)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	if err = s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *DeliveryServer) deliveryByID(ctx echo.Context, id int64) (queries.DeliveryView, error) {
	query, err := queries.NewGetDeliveryQuery(id)
	if err != nil {
		return queries.DeliveryView{}, err
	}
	return s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
}

// mutation answers with the written delivery and the warnings of the write.
func (s *DeliveryServer) mutation(ctx echo.Context, status int, result commands.DeliveryResult) error {
	view, err := s.deliveryByID(ctx, result.ID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(status, newMutationResponse(view, result.Warnings))
}
