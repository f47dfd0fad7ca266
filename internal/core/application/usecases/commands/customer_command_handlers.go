package commands

import (
	"context"
	"time"

	"deliveryapp/internal/core/domain/model/customer"
)

// CreateCustomerCommandHandler persists a new customer. A taken email surfaces as
// errs.DuplicateResourceError from the repository.
type CreateCustomerCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateCustomerCommandHandler(uowFactory OrderUoWFactory) CreateCustomerCommandHandler {
	return CreateCustomerCommandHandler{uowFactory: uowFactory}
}

func (h CreateCustomerCommandHandler) Handle(ctx context.Context, cmd CreateCustomerCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	c, err := customer.NewCustomer(cmd.Profile(), time.Now().UTC())
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

	if err = uow.CustomerRepository().Add(ctx, c); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return c.ID(), nil
}

type UpdateCustomerCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateCustomerCommandHandler(uowFactory OrderUoWFactory) UpdateCustomerCommandHandler {
	return UpdateCustomerCommandHandler{uowFactory: uowFactory}
}

func (h UpdateCustomerCommandHandler) Handle(ctx context.Context, cmd UpdateCustomerCommand) error {
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

	repo := uow.CustomerRepository()
	c, err := repo.GetForUpdate(ctx, cmd.ID())
	if err != nil {
		return err
	}

	if err = c.Update(cmd.Profile(), time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type DeleteCustomerCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeleteCustomerCommandHandler(uowFactory OrderUoWFactory) DeleteCustomerCommandHandler {
	return DeleteCustomerCommandHandler{uowFactory: uowFactory}
}

func (h DeleteCustomerCommandHandler) Handle(ctx context.Context, cmd DeleteCustomerCommand) error {
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

	if err := uow.CustomerRepository().Delete(ctx, cmd.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
