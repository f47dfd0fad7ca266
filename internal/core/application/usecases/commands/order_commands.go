package commands

import (
	"errors"

	"deliveryapp/internal/core/domain/model/kernel"
	"deliveryapp/internal/core/domain/model/order"
	"deliveryapp/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrDeleteOrderCommandIsNotConstructed = errors.New(
		"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
	)
)

// CreateOrderInput is the payload of an order creation request.
type CreateOrderInput struct {
	CustomerID          int64
	DeliveryAddress     string
	DeliveryCity        string
	DeliveryPostalCode  string
	SpecialInstructions *string
	DeliveryFee         *decimal.Decimal
	Items               []order.ItemSpec
}

// CreateOrderCommand represents a request to place an order for an existing customer.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderInput{
//	    CustomerID:         1,
//	    DeliveryAddress:    "1 Main St",
//	    DeliveryCity:       "Springfield",
//	    DeliveryPostalCode: "12345",
//	    Items:              []order.ItemSpec{{ProductName: "Tea", Quantity: 2, UnitPrice: price}},
//	})
//	id, err := NewCreateOrderCommandHandler(uowFactory).Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	spec order.Spec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the identifiers and the delivery address. Item rules are
// checked when the order is built.
func NewCreateOrderCommand(in CreateOrderInput) (CreateOrderCommand, error) {
	address, addrErr := kernel.NewPrefixedAddress("delivery", in.DeliveryAddress, in.DeliveryCity, in.DeliveryPostalCode)
	if err := errors.Join(requireID("customerId", in.CustomerID), addrErr); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		spec: order.Spec{
			CustomerID:          in.CustomerID,
			DeliveryAddress:     address,
			SpecialInstructions: in.SpecialInstructions,
			DeliveryFee:         in.DeliveryFee,
			Items:               in.Items,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Spec() order.Spec {
	return c.spec
}

// UpdateOrderCommand changes the delivery details of an order. Nothing else about an order
// can be updated.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	id    int64
	patch order.DeliveryDetailsPatch

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(id int64, patch order.DeliveryDetailsPatch) (UpdateOrderCommand, error) {
	if err := requireID("id", id); err != nil {
		return UpdateOrderCommand{}, err
	}
	return UpdateOrderCommand{id: id, patch: patch, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) ID() int64 {
	return c.id
}

func (c UpdateOrderCommand) Patch() order.DeliveryDetailsPatch {
	return c.patch
}

// ChangeOrderStatusCommand moves an order along its status machine.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	id        int64
	status    order.Status
	notes     *string
	changedBy string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand parses status by its wire name. An empty changedBy is
// recorded as order.SystemActor.
func NewChangeOrderStatusCommand(id int64, status string, notes *string, changedBy string) (ChangeOrderStatusCommand, error) {
	parsed, statusErr := order.ParseStatus(status)
	_, actorErr := kernel.OptionalText("changedBy", &changedBy, order.ChangedByMaxLength)
	if err := errors.Join(requireID("id", id), statusErr, actorErr); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		id:        id,
		status:    parsed,
		notes:     notes,
		changedBy: changedBy,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) ID() int64 {
	return c.id
}

func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c ChangeOrderStatusCommand) Notes() *string {
	return c.notes
}

func (c ChangeOrderStatusCommand) ChangedBy() string {
	return c.changedBy
}

type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	id int64

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(id int64) (DeleteOrderCommand, error) {
	if err := requireID("id", id); err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) ID() int64 {
	return c.id
}
