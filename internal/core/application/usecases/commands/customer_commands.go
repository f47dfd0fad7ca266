package commands

import (
	"errors"
	"math"

	"deliveryapp/internal/core/domain/model/customer"
	"deliveryapp/internal/pkg/errs"
	"deliveryapp/internal/pkg/guard"
)

var (
	ErrCreateCustomerCommandIsNotConstructed = errors.New(
		"CreateCustomerCommand must be created via NewCreateCustomerCommand constructor",
	)
	ErrUpdateCustomerCommandIsNotConstructed = errors.New(
		"UpdateCustomerCommand must be created via NewUpdateCustomerCommand constructor",
	)
	ErrDeleteCustomerCommandIsNotConstructed = errors.New(
		"DeleteCustomerCommand must be created via NewDeleteCustomerCommand constructor",
	)
)

// CreateCustomerCommand registers a customer. The profile is validated by the domain.
type CreateCustomerCommand struct { //nolint:recvcheck //using for validation
	profile customer.Profile

	guard guard.ConstructorGuard
}

func NewCreateCustomerCommand(profile customer.Profile) CreateCustomerCommand {
	return CreateCustomerCommand{profile: profile, guard: guard.NewConstructorGuard()}
}

func (c CreateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomerCommandIsNotConstructed)
}

func (c CreateCustomerCommand) Profile() customer.Profile {
	return c.profile
}

// UpdateCustomerCommand replaces the whole profile of a customer.
type UpdateCustomerCommand struct { //nolint:recvcheck //using for validation
	id      int64
	profile customer.Profile

	guard guard.ConstructorGuard
}

func NewUpdateCustomerCommand(id int64, profile customer.Profile) (UpdateCustomerCommand, error) {
	if err := requireID("id", id); err != nil {
		return UpdateCustomerCommand{}, err
	}
	return UpdateCustomerCommand{id: id, profile: profile, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCustomerCommandIsNotConstructed)
}

func (c UpdateCustomerCommand) ID() int64 {
	return c.id
}

func (c UpdateCustomerCommand) Profile() customer.Profile {
	return c.profile
}

// DeleteCustomerCommand removes a customer together with its orders.
type DeleteCustomerCommand struct { //nolint:recvcheck //using for validation
	id int64

	guard guard.ConstructorGuard
}

func NewDeleteCustomerCommand(id int64) (DeleteCustomerCommand, error) {
	if err := requireID("id", id); err != nil {
		return DeleteCustomerCommand{}, err
	}
	return DeleteCustomerCommand{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteCustomerCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCustomerCommandIsNotConstructed)
}

func (c DeleteCustomerCommand) ID() int64 {
	return c.id
}

func requireID(paramName string, id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError(paramName, id, 1, int64(math.MaxInt64))
	}
	return nil
}
