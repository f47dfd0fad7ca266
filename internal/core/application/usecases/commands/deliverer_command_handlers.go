package commands

import (
	"context"

	"deliveryapp/internal/core/domain/model/deliverer"
	"deliveryapp/internal/core/domain/services"
	"deliveryapp/internal/pkg/errs"
)

// CreateDelivererCommandHandler registers a deliverer. The employee number starts at the
// current deliverer count plus one and moves up while the store reports it as taken.
type CreateDelivererCommandHandler struct {
	uowFactory DelivererUoWFactory
}

func NewCreateDelivererCommandHandler(uowFactory DelivererUoWFactory) CreateDelivererCommandHandler {
	return CreateDelivererCommandHandler{uowFactory: uowFactory}
}

func (h CreateDelivererCommandHandler) Handle(ctx context.Context, cmd CreateDelivererCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := utcNow()
	d, err := deliverer.NewDeliverer(cmd.Spec(), now)
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

	repo := uow.DelivererRepository()
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}

	for attempt := int64(0); ; attempt++ {
		if err = d.AssignEmployeeNumber(services.EmployeeNumber(now, count+1+attempt)); err != nil {
			return 0, err
		}
		err = repo.Add(ctx, d)
		if err == nil || !errs.IsDuplicateOf(err, "employeeNumber") || attempt+1 >= services.MaxNumberAttempts {
			break
		}
	}
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return d.ID(), nil
}

// UpdateDelivererCommandHandler applies a partial update. A changed email that belongs to
// another deliverer surfaces as errs.DuplicateResourceError from the repository.
type UpdateDelivererCommandHandler struct {
	uowFactory DelivererUoWFactory
}

func NewUpdateDelivererCommandHandler(uowFactory DelivererUoWFactory) UpdateDelivererCommandHandler {
	return UpdateDelivererCommandHandler{uowFactory: uowFactory}
}

func (h UpdateDelivererCommandHandler) Handle(ctx context.Context, cmd UpdateDelivererCommand) error {
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

	repo := uow.DelivererRepository()
	d, err := repo.GetForUpdate(ctx, cmd.ID())
	if err != nil {
		return err
	}

	if err = d.Apply(cmd.Patch(), utcNow()); err != nil {
		return err
	}

	if err = repo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type DeleteDelivererCommandHandler struct {
	uowFactory DelivererUoWFactory
}

func NewDeleteDelivererCommandHandler(uowFactory DelivererUoWFactory) DeleteDelivererCommandHandler {
	return DeleteDelivererCommandHandler{uowFactory: uowFactory}
}

func (h DeleteDelivererCommandHandler) Handle(ctx context.Context, cmd DeleteDelivererCommand) error {
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

	if err := uow.DelivererRepository().Delete(ctx, cmd.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
