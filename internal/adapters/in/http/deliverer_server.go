package http

import (
	"log/slog"
	"net/http"

	"deliveryapp/internal/core/application/usecases/commands"
	"deliveryapp/internal/core/application/usecases/queries"
	"deliveryapp/internal/core/domain/model/deliverer"
	"deliveryapp/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type createDelivererRequest struct {
	FirstName             string       `json:"firstName"             validate:"required,max=100"`
	LastName              string       `json:"lastName"              validate:"required,max=100"`
	Email                 string       `json:"email"                 validate:"required,max=255"`
	Phone                 string       `json:"phone"                 validate:"required,max=20"`
	DateOfBirth           *kernel.Date `json:"dateOfBirth"           validate:"-"`
	NationalID            *string      `json:"nationalId"            validate:"omitnil,max=50"`
	Address               string       `json:"address"               validate:"required"`
	City                  string       `json:"city"                  validate:"required"`
	PostalCode            string       `json:"postalCode"            validate:"required"`
	EmergencyContactName  *string      `json:"emergencyContactName"  validate:"omitnil,max=200"`
	EmergencyContactPhone *string      `json:"emergencyContactPhone" validate:"omitnil,max=20"`
	Status                *string      `json:"status"`
	HireDate              *kernel.Date `json:"hireDate"              validate:"-"`
	ProfilePhotoURL       *string      `json:"profilePhotoUrl"       validate:"omitnil,max=500"`
	VehicleType           *string      `json:"vehicleType"`
}

func (r createDelivererRequest) spec() (deliverer.Spec, error) {
	status, err := parseDelivererStatus(r.Status)
	if err != nil {
		return deliverer.Spec{}, err
	}

	var vehicleType *deliverer.VehicleType
	if r.VehicleType != nil {
		parsed, parseErr := deliverer.ParseVehicleType(*r.VehicleType)
		if parseErr != nil {
			return deliverer.Spec{}, parseErr
		}
		vehicleType = &parsed
	}

	return deliverer.Spec{
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		Email:                 r.Email,
		Phone:                 r.Phone,
		DateOfBirth:           r.DateOfBirth,
		NationalID:            r.NationalID,
		Address:               r.Address,
		City:                  r.City,
		PostalCode:            r.PostalCode,
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
		Status:                status,
		HireDate:              r.HireDate,
		ProfilePhotoURL:       r.ProfilePhotoURL,
		VehicleType:           vehicleType,
	}, nil
}

// updateDelivererRequest is a partial update; absent fields stay as they are.
type updateDelivererRequest struct {
	FirstName             *string      `json:"firstName"             validate:"omitnil,max=100"`
	LastName              *string      `json:"lastName"              validate:"omitnil,max=100"`
	Email                 *string      `json:"email"                 validate:"omitnil,max=255"`
	Phone                 *string      `json:"phone" validate:"omitnil,max=20"`
	DateOfBirth           *kernel.Date `json:"dateOfBirth"           validate:"-"`
	NationalID            *string      `json:"nationalId"            validate:"omitnil,max=50"`
	Address               *string      `json:"address"`
	City                  *string      `json:"city"`
	PostalCode            *string      `json:"postalCode"`
	EmergencyContactName  *string      `json:"emergencyContactName"  validate:"omitnil,max=200"`
	EmergencyContactPhone *string      `json:"emergencyContactPhone" validate:"omitnil,max=20"`
	Status                *string      `json:"status"`
	HireDate              *kernel.Date `json:"hireDate"              validate:"-"`
	TerminationDate       *kernel.Date `json:"terminationDate"       validate:"-"`
	ProfilePhotoURL       *string      `json:"profilePhotoUrl"       validate:"omitnil,max=500"`
}

func (r updateDelivererRequest) patch() (deliverer.Patch, error) {
	status, err := parseDelivererStatus(r.Status)
	if err != nil {
		return deliverer.Patch{}, err
	}

	return deliverer.Patch{
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		Email:                 r.Email,
		Phone:                 r.Phone,
		DateOfBirth:           r.DateOfBirth,
		NationalID:            r.NationalID,
		Address:               r.Address,
		City:                  r.City,
		PostalCode:            r.PostalCode,
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
		Status:                status,
		HireDate:              r.HireDate,
		TerminationDate:       r.TerminationDate,
		ProfilePhotoURL:       r.ProfilePhotoURL,
	}, nil
}

func parseDelivererStatus(name *string) (*deliverer.Status, error) {
	if name == nil {
		return nil, nil
	}
	status, err := deliverer.ParseStatus(*name)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// DelivererServer serves deliverers for deliverer-service.
type DelivererServer struct {
	logger *slog.Logger

	// Command handlers
	createDelivererHandler commands.CreateDelivererCommandHandler
	updateDelivererHandler commands.UpdateDelivererCommandHandler
	deleteDelivererHandler commands.DeleteDelivererCommandHandler

	// Query handlers
	getDelivererHandler            queries.GetDelivererQueryHandler
	listDeliverersHandler          queries.ListDeliverersQueryHandler
	getDelivererLocationHandler    queries.GetDelivererLocationQueryHandler
	getDelivererPerformanceHandler queries.GetDelivererPerformanceQueryHandler
}

// DelivererHandlers lists the use cases behind DelivererServer.
type DelivererHandlers struct {
	CreateDeliverer commands.CreateDelivererCommandHandler
	UpdateDeliverer commands.UpdateDelivererCommandHandler
	DeleteDeliverer commands.DeleteDelivererCommandHandler

	GetDeliverer            queries.GetDelivererQueryHandler
	ListDeliverers          queries.ListDeliverersQueryHandler
	GetDelivererLocation    queries.GetDelivererLocationQueryHandler
	GetDelivererPerformance queries.GetDelivererPerformanceQueryHandler
}

func NewDelivererServer(handlers DelivererHandlers, logger *slog.Logger) *DelivererServer {
	return &DelivererServer{
		logger:                         logger.With("component", "deliverer-server"),
		createDelivererHandler:         handlers.CreateDeliverer,
		updateDelivererHandler:         handlers.UpdateDeliverer,
		deleteDelivererHandler:         handlers.DeleteDeliverer,
		getDelivererHandler:            handlers.GetDeliverer,
		listDeliverersHandler:          handlers.ListDeliverers,
		getDelivererLocationHandler:    handlers.GetDelivererLocation,
		getDelivererPerformanceHandler: handlers.GetDelivererPerformance,
	}
}

func (s *DelivererServer) Register(e *echo.Echo) {
	deliverers := e.Group("/api/deliverers")
	deliverers.POST("", s.CreateDeliverer)
	deliverers.GET("", s.ListDeliverers)
	deliverers.GET("/available", s.ListAvailableDeliverers)
	deliverers.GET("/:id", s.GetDeliverer)
	deliverers.PUT("/:id", s.UpdateDeliverer)
	deliverers.DELETE("/:id", s.DeleteDeliverer)
	deliverers.GET("/:id/location", s.GetDelivererLocation)
	deliverers.GET("/:id/performance", s.GetDelivererPerformance)
}

// CreateDeliverer handles POST /api/deliverers.
func (s *DelivererServer) CreateDeliverer(ctx echo.Context) error {
	var req createDelivererRequest
	if err := bindBody(ctx, &req); err != nil {
		return writeError(ctx, s.logger, err)
	}

	spec, err := req.spec()
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	id, err := s.createDelivererHandler.Handle(ctx.Request().Context(), commands.NewCreateDelivererCommand(spec))
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return s.delivererByID(ctx, http.StatusCreated, id)
}

// GetDeliverer handles GET /api/deliverers/{id}.
func (s *DelivererServer) GetDeliverer(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return s.delivererByID(ctx, http.StatusOK, id)
}

// ListDeliverers handles GET /api/deliverers.
func (s *DelivererServer) ListDeliverers(ctx echo.Context) error {
	views, err := s.listDeliverersHandler.Handle(ctx.Request().Context(), queries.NewListDeliverersQuery())
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, views)
}

// ListAvailableDeliverers handles GET /api/deliverers/available.
func (s *DelivererServer) ListAvailableDeliverers(ctx echo.Context) error {
	views, err := s.listDeliverersHandler.Handle(ctx.Request().Context(), queries.NewListAvailableDeliverersQuery())
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, views)
}

// UpdateDeliverer handles PUT /api/deliverers/{id}.
func (s *DelivererServer) UpdateDeliverer(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var req updateDelivererRequest
	if err = bindBody(ctx, &req); err != nil {
		return writeError(ctx, s.logger, err)
	}

	patch, err := req.patch()
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	cmd, err := commands.NewUpdateDelivererCommand(id, patch)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	if err = s.updateDelivererHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}
	return s.delivererByID(ctx, http.StatusOK, id)
}

// DeleteDeliverer handles DELETE /api/deliverers/{id}.
func (s *DelivererServer) DeleteDeliverer(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewDeleteDelivererCommand(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	if err = s.deleteDelivererHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetDelivererLocation handles GET /api/deliverers/{id}/location.
func (s *DelivererServer) GetDelivererLocation(ctx echo.Context) error {
	query, err := s.delivererQuery(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	view, err := s.getDelivererLocationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// GetDelivererPerformance handles GET /api/deliverers/{id}/performance.
func (s *DelivererServer) GetDelivererPerformance(ctx echo.Context) error {
	query, err := s.delivererQuery(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	view, err := s.getDelivererPerformanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

func (s *DelivererServer) delivererQuery(ctx echo.Context) (queries.GetDelivererQuery, error) {
	id, err := pathID(ctx, "id")
	if err != nil {
		return queries.GetDelivererQuery{}, err
	}
	return queries.NewGetDelivererQuery(id)
}

func (s *DelivererServer) delivererByID(ctx echo.Context, status int, id int64) error {
	query, err := queries.NewGetDelivererQuery(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	view, err := s.getDelivererHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	return ctx.JSON(status, view)
}
