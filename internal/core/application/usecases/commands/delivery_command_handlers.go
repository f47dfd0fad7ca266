package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"deliveryapp/internal/core/domain/model/delivery"
	"deliveryapp/internal/core/domain/model/kernel"
	"deliveryapp/internal/core/domain/model/order"
	"deliveryapp/internal/core/domain/services"
	"deliveryapp/internal/core/ports"
	"deliveryapp/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

const completedOrderNotes = "Delivery completed"

// CreateDeliveryCommandHandler creates a delivery for an order of order-service.
//
// The order is always resolved first; any failure to resolve it is reported as
// not_found(order), including outages of order-service. A given deliverer is resolved
// through deliverer-service before anything is written. When the delivery starts out
// ASSIGNED the order is moved to PROCESSING after the commit.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	orders     ports.OrderClient
	deliverers ports.DelivererClient
	projector  orderStatusProjector
	logger     *slog.Logger
}

func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	orders ports.OrderClient,
	deliverers ports.DelivererClient,
	logger *slog.Logger,
) CreateDeliveryCommandHandler {
	logger = logger.With("component", "delivery-commands")
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		orders:     orders,
		deliverers: deliverers,
		projector:  orderStatusProjector{orders: orders, logger: logger},
		logger:     logger,
	}
}

func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (DeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeliveryResult{}, err
	}

	orderID := cmd.Input().OrderID
	snapshot, err := h.orders.GetOrder(ctx, orderID)
	if err != nil {
		return DeliveryResult{}, errs.NewObjectNotFoundErrorWithCause("order", orderID, err)
	}

	if id := cmd.Input().DelivererID; id != nil {
		if _, err = h.deliverers.GetDeliverer(ctx, *id); err != nil {
			return DeliveryResult{}, err
		}
	}

	return h.create(ctx, cmd, snapshot)
}

func (h CreateDeliveryCommandHandler) create(
	ctx context.Context,
	cmd CreateDeliveryCommand,
	snapshot ports.OrderSnapshot,
) (DeliveryResult, error) {
	in := cmd.Input()

	orderNumber := snapshot.OrderNumber
	if in.OrderNumber != nil && strings.TrimSpace(*in.OrderNumber) != "" {
		orderNumber = *in.OrderNumber
	}

	pickup, pickupErr := kernel.NewPrefixedAddress("pickup",
		valueOr(in.PickupAddress, ""), valueOr(in.PickupCity, ""), valueOr(in.PickupPostalCode, ""))
	dropoff, dropoffErr := kernel.NewPrefixedAddress("delivery",
		valueOr(in.DeliveryAddress, snapshot.DeliveryAddress),
		valueOr(in.DeliveryCity, snapshot.DeliveryCity),
		valueOr(in.DeliveryPostalCode, snapshot.DeliveryPostalCode))
	if err := errors.Join(pickupErr, dropoffErr); err != nil {
		return DeliveryResult{}, err
	}

	specialInstructions := in.SpecialInstructions
	if specialInstructions == nil {
		specialInstructions = snapshot.SpecialInstructions
	}

	now := utcNow()
	d, err := delivery.NewDelivery(delivery.Spec{
		OrderID:             in.OrderID,
		OrderNumber:         orderNumber,
		DelivererID:         in.DelivererID,
		Status:              cmd.Status(),
		Pickup:              pickup,
		Dropoff:             dropoff,
		Priority:            in.Priority,
		SpecialInstructions: specialInstructions,
		Notes:               in.Notes,
		Schedule:            in.Schedule,
	}, now)
	if err != nil {
		return DeliveryResult{}, err
	}
	changes := d.PendingStatusChanges()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return DeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	for attempt := 0; ; attempt++ {
		if err = d.AssignNumber(services.DeliveryNumber(now, attempt)); err != nil {
			return DeliveryResult{}, err
		}
		err = repo.Add(ctx, d)
		if err == nil || !errs.IsDuplicateOf(err, "deliveryNumber") || attempt+1 >= services.MaxNumberAttempts {
			break
		}
	}
	if err != nil {
		return DeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DeliveryResult{}, err
	}

	h.logger.InfoContext(ctx, "delivery created",
		"delivery_id", d.ID(), "delivery_number", d.DeliveryNumber(), "order_id", d.OrderID(), "status", d.Status().String())

	return DeliveryResult{ID: d.ID(), Warnings: h.projector.project(ctx, d, changes)}, nil
}

// UpdateDeliveryCommandHandler replaces the provided attributes of a delivery and projects
// a resulting status change onto the order after the commit.
type UpdateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	deliverers ports.DelivererClient
	projector  orderStatusProjector
	logger     *slog.Logger
}

func NewUpdateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	orders ports.OrderClient,
	deliverers ports.DelivererClient,
	logger *slog.Logger,
) UpdateDeliveryCommandHandler {
	logger = logger.With("component", "delivery-commands")
	return UpdateDeliveryCommandHandler{
		uowFactory: uowFactory,
		deliverers: deliverers,
		projector:  orderStatusProjector{orders: orders, logger: logger},
		logger:     logger,
	}
}

func (h UpdateDeliveryCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryCommand) (DeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeliveryResult{}, err
	}

	if id := cmd.Patch().DelivererID; id != nil {
		if _, err := h.deliverers.GetDeliverer(ctx, *id); err != nil {
			return DeliveryResult{}, err
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	d, err := repo.GetForUpdate(ctx, cmd.ID())
	if err != nil {
		return DeliveryResult{}, err
	}

	change, err := d.Apply(cmd.Patch(), utcNow())
	if err != nil {
		return DeliveryResult{}, err
	}

	if err = repo.Update(ctx, d); err != nil {
		return DeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return DeliveryResult{}, err
	}

	var changes []delivery.StatusChange
	if change != nil {
		changes = append(changes, *change)
		h.logger.InfoContext(ctx, "delivery status changed",
			"delivery_id", d.ID(), "from", change.From.String(), "to", change.To.String())
	}

	return DeliveryResult{ID: d.ID(), Warnings: h.projector.project(ctx, d, changes)}, nil
}

type DeleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewDeleteDeliveryCommandHandler(uowFactory DeliveryUoWFactory) DeleteDeliveryCommandHandler {
	return DeleteDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h DeleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DeliveryRepository().Delete(ctx, cmd.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// PickupDepot is the address deliveries created from an order are picked up at.
type PickupDepot struct {
	Address    string
	City       string
	PostalCode string
}

// CreateDeliveryFromOrderCommandHandler fetches the order and the available deliverers
// concurrently, then creates the delivery. The first available deliverer is assigned;
// without one the delivery waits for assignment.
type CreateDeliveryFromOrderCommandHandler struct {
	creator CreateDeliveryCommandHandler
	depot   PickupDepot
}

func NewCreateDeliveryFromOrderCommandHandler(
	creator CreateDeliveryCommandHandler,
	depot PickupDepot,
) CreateDeliveryFromOrderCommandHandler {
	return CreateDeliveryFromOrderCommandHandler{creator: creator, depot: depot}
}

func (h CreateDeliveryFromOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryFromOrderCommand,
) (DeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeliveryResult{}, err
	}

	var (
		snapshot  ports.OrderSnapshot
		available []ports.DelivererSnapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := h.creator.orders.GetOrder(gctx, cmd.OrderID())
		if err != nil {
			return errs.NewObjectNotFoundErrorWithCause("order", cmd.OrderID(), err)
		}
		snapshot = s
		return nil
	})
	g.Go(func() error {
		list, err := h.creator.deliverers.ListAvailable(gctx)
		available = list
		return err
	})
	if err := g.Wait(); err != nil {
		return DeliveryResult{}, err
	}

	in := CreateDeliveryInput{
		OrderID:          cmd.OrderID(),
		PickupAddress:    &h.depot.Address,
		PickupCity:       &h.depot.City,
		PickupPostalCode: &h.depot.PostalCode,
	}
	if len(available) > 0 {
		delivererID := available[0].ID
		status := delivery.Assigned.String()
		in.DelivererID = &delivererID
		in.Status = &status
	}

	createCmd, err := NewCreateDeliveryCommand(in)
	if err != nil {
		return DeliveryResult{}, err
	}
	return h.creator.create(ctx, createCmd, snapshot)
}

// CompleteOrderCommandHandler marks an order COMPLETED on order-service. Unlike the
// projection that follows a delivery update, failures here are returned to the caller.
type CompleteOrderCommandHandler struct {
	orders ports.OrderClient
}

func NewCompleteOrderCommandHandler(orders ports.OrderClient) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{orders: orders}
}

func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	notes := cmd.Notes()
	if notes == nil {
		text := completedOrderNotes
		notes = &text
	}

	return h.orders.UpdateOrderStatus(ctx, cmd.OrderID(), ports.OrderStatusUpdate{
		Status:    order.Completed,
		Notes:     notes,
		ChangedBy: services.ProjectionActor,
	})
}

func valueOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}
