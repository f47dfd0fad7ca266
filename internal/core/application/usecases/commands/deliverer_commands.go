package commands

import (
	"errors"

	"deliveryapp/internal/core/domain/model/deliverer"
	"deliveryapp/internal/pkg/guard"
)

var (
	ErrCreateDelivererCommandIsNotConstructed = errors.New(
		"CreateDelivererCommand must be created via NewCreateDelivererCommand constructor",
	)
	ErrUpdateDelivererCommandIsNotConstructed = errors.New(
		"UpdateDelivererCommand must be created via NewUpdateDelivererCommand constructor",
	)
	ErrDeleteDelivererCommandIsNotConstructed = errors.New(
		"DeleteDelivererCommand must be created via NewDeleteDelivererCommand constructor",
	)
)

type CreateDelivererCommand struct { //nolint:recvcheck //using for validation
	spec deliverer.Spec

	guard guard.ConstructorGuard
}

func NewCreateDelivererCommand(spec deliverer.Spec) CreateDelivererCommand {
	return CreateDelivererCommand{spec: spec, guard: guard.NewConstructorGuard()}
}

func (c CreateDelivererCommand) Validate() error {
	return c.guard.Validate(ErrCreateDelivererCommandIsNotConstructed)
}

func (c CreateDelivererCommand) Spec() deliverer.Spec {
	return c.spec
}

// UpdateDelivererCommand is a partial update: only the non-nil fields of the patch apply.
type UpdateDelivererCommand struct { //nolint:recvcheck //using for validation
	id    int64
	patch deliverer.Patch

	guard guard.ConstructorGuard
}

func NewUpdateDelivererCommand(id int64, patch deliverer.Patch) (UpdateDelivererCommand, error) {
	if err := requireID("id", id); err != nil {
		return UpdateDelivererCommand{}, err
	}
	return UpdateDelivererCommand{id: id, patch: patch, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateDelivererCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDelivererCommandIsNotConstructed)
}

func (c UpdateDelivererCommand) ID() int64 {
	return c.id
}

func (c UpdateDelivererCommand) Patch() deliverer.Patch {
	return c.patch
}

type DeleteDelivererCommand struct { //nolint:recvcheck //using for validation
	id int64

	guard guard.ConstructorGuard
}

func NewDeleteDelivererCommand(id int64) (DeleteDelivererCommand, error) {
	if err := requireID("id", id); err != nil {
		return DeleteDelivererCommand{}, err
	}
	return DeleteDelivererCommand{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteDelivererCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDelivererCommandIsNotConstructed)
}

func (c DeleteDelivererCommand) ID() int64 {
	return c.id
}
