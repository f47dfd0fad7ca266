package commands

import (
	"context"
	"log/slog"
	"time"

	"deliveryapp/internal/core/domain/model/order"
	"deliveryapp/internal/core/domain/services"
	"deliveryapp/internal/pkg/errs"
)

// CreateOrderCommandHandler places an order. The order number has second precision; when
// it is already taken the handler retries with a "-1", "-2", ... suffix inside the same
// transaction, up to services.MaxNumberAttempts candidates.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{uowFactory: uowFactory}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := utcNow()
	o, err := order.NewOrder(cmd.Spec(), now)
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.CustomerRepository().Get(ctx, o.CustomerID()); err != nil {
		return 0, err
	}

	repo := uow.OrderRepository()
	for attempt := 0; ; attempt++ {
		if err = o.AssignNumber(services.OrderNumber(now, attempt)); err != nil {
			return 0, err
		}
		err = repo.Add(ctx, o)
		if err == nil || !errs.IsDuplicateOf(err, "orderNumber") || attempt+1 >= services.MaxNumberAttempts {
			break
		}
	}
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return o.ID(), nil
}

type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{uowFactory: uowFactory}
}

func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
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

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.ID())
	if err != nil {
		return err
	}

	if err = o.UpdateDeliveryDetails(cmd.Patch(), utcNow()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// ChangeOrderStatusCommandHandler applies a status transition under a row lock, so two
// concurrent transitions of one order are evaluated one after the other.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "order-status"),
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.ID())
	if err != nil {
		return err
	}

	from := o.Status()
	if err = o.ChangeStatus(cmd.Status(), cmd.Notes(), cmd.ChangedBy(), utcNow()); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "order status changed",
		"order_id", o.ID(), "from", from.String(), "to", o.Status().String(), "changed_by", cmd.ChangedBy())
	return nil
}

type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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

	if err := uow.OrderRepository().Delete(ctx, cmd.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func utcNow() time.Time {
	return time.Now().UTC()
}
