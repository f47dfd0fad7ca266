package commands

import (
	"errors"

	"deliveryapp/internal/core/domain/model/delivery"
	"deliveryapp/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
	ErrUpdateDeliveryCommandIsNotConstructed = errors.New(
		"UpdateDeliveryCommand must be created via NewUpdateDeliveryCommand constructor",
	)
	ErrDeleteDeliveryCommandIsNotConstructed = errors.New(
		"DeleteDeliveryCommand must be created via NewDeleteDeliveryCommand constructor",
	)
	ErrCreateDeliveryFromOrderCommandIsNotConstructed = errors.New(
		"CreateDeliveryFromOrderCommand must be created via NewCreateDeliveryFromOrderCommand constructor",
	)
	ErrCompleteOrderCommandIsNotConstructed = errors.New(
		"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
	)
)

// CreateDeliveryInput is the payload of a delivery creation request. Missing order number
// and delivery address parts are taken from the order.
type CreateDeliveryInput struct {
	OrderID             int64
	OrderNumber         *string
	DelivererID         *int64
	Status              *string
	PickupAddress       *string
	PickupCity          *string
	PickupPostalCode    *string
	DeliveryAddress     *string
	DeliveryCity        *string
	DeliveryPostalCode  *string
	Priority            *string
	SpecialInstructions *string
	Notes               *string
	Schedule            delivery.Schedule
}

// DeliveryResult is returned by every delivery mutation. Warnings name the order status
// updates that could not be delivered to order-service; the local write stands regardless.
type DeliveryResult struct {
	ID       int64
	Warnings []string
}

type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	input  CreateDeliveryInput
	status *delivery.Status

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand validates the order id and the requested status name.
// Addresses are validated once the order has been resolved.
func NewCreateDeliveryCommand(in CreateDeliveryInput) (CreateDeliveryCommand, error) {
	status, statusErr := parseDeliveryStatus(in.Status)
	if err := errors.Join(requireID("orderId", in.OrderID), statusErr); err != nil {
		return CreateDeliveryCommand{}, err
	}
	return CreateDeliveryCommand{input: in, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) Input() CreateDeliveryInput {
	return c.input
}

func (c CreateDeliveryCommand) Status() *delivery.Status {
	return c.status
}

// UpdateDeliveryInput lists replaceable delivery attributes. Nil fields are left unchanged.
type UpdateDeliveryInput struct {
	DelivererID         *int64
	Status              *string
	PickupAddress       *string
	PickupCity          *string
	PickupPostalCode    *string
	DeliveryAddress     *string
	DeliveryCity        *string
	DeliveryPostalCode  *string
	Priority            *string
	SpecialInstructions *string
	Notes               *string
	Schedule            delivery.Schedule
}

type UpdateDeliveryCommand struct { //nolint:recvcheck //using for validation
	id    int64
	patch delivery.Patch

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryCommand(id int64, in UpdateDeliveryInput) (UpdateDeliveryCommand, error) {
	status, statusErr := parseDeliveryStatus(in.Status)
	var delivererErr error
	if in.DelivererID != nil {
		delivererErr = requireID("delivererId", *in.DelivererID)
	}
	if err := errors.Join(requireID("id", id), statusErr, delivererErr); err != nil {
		return UpdateDeliveryCommand{}, err
	}

	return UpdateDeliveryCommand{
		id: id,
		patch: delivery.Patch{
			DelivererID:         in.DelivererID,
			Status:              status,
			PickupAddress:       in.PickupAddress,
			PickupCity:          in.PickupCity,
			PickupPostalCode:    in.PickupPostalCode,
			DeliveryAddress:     in.DeliveryAddress,
			DeliveryCity:        in.DeliveryCity,
			DeliveryPostalCode:  in.DeliveryPostalCode,
			Priority:            in.Priority,
			SpecialInstructions: in.SpecialInstructions,
			Notes:               in.Notes,
			Schedule:            in.Schedule,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryCommandIsNotConstructed)
}

func (c UpdateDeliveryCommand) ID() int64 {
	return c.id
}

func (c UpdateDeliveryCommand) Patch() delivery.Patch {
	return c.patch
}

type DeleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	id int64

	guard guard.ConstructorGuard
}

func NewDeleteDeliveryCommand(id int64) (DeleteDeliveryCommand, error) {
	if err := requireID("id", id); err != nil {
		return DeleteDeliveryCommand{}, err
	}
	return DeleteDeliveryCommand{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDeliveryCommandIsNotConstructed)
}

func (c DeleteDeliveryCommand) ID() int64 {
	return c.id
}

// CreateDeliveryFromOrderCommand creates a delivery for an order, picking up at the depot
// and assigning the first available deliverer if there is one.
type CreateDeliveryFromOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

func NewCreateDeliveryFromOrderCommand(orderID int64) (CreateDeliveryFromOrderCommand, error) {
	if err := requireID("orderId", orderID); err != nil {
		return CreateDeliveryFromOrderCommand{}, err
	}
	return CreateDeliveryFromOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateDeliveryFromOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryFromOrderCommandIsNotConstructed)
}

func (c CreateDeliveryFromOrderCommand) OrderID() int64 {
	return c.orderID
}

// CompleteOrderCommand asks order-service to mark an order COMPLETED.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	notes   *string

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(orderID int64, notes *string) (CompleteOrderCommand, error) {
	if err := requireID("orderId", orderID); err != nil {
		return CompleteOrderCommand{}, err
	}
	return CompleteOrderCommand{orderID: orderID, notes: notes, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c CompleteOrderCommand) Notes() *string {
	return c.notes
}

func parseDeliveryStatus(name *string) (*delivery.Status, error) {
	if name == nil {
		return nil, nil
	}
	status, err := delivery.ParseStatus(*name)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
