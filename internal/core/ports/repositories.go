// Package ports defines the contracts between the application core and its adapters:
// repositories for the aggregates each service owns, the unit of work that binds them to
// one transaction, and the clients for peer services.
package ports

import (
	"context"

	"deliveryapp/internal/core/domain/model/customer"
	"deliveryapp/internal/core/domain/model/deliverer"
	"deliveryapp/internal/core/domain/model/delivery"
	"deliveryapp/internal/core/domain/model/order"
)

// CustomerRepository defines the persistence contract for customers.
// Add and Update report a taken email as errs.DuplicateResourceError.
type CustomerRepository interface {
	Add(ctx context.Context, aggregate *customer.Customer) error
	Update(ctx context.Context, aggregate *customer.Customer) error
	Get(ctx context.Context, id int64) (*customer.Customer, error)
	// GetForUpdate is Get holding a row lock until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*customer.Customer, error)
	// Delete removes the customer with its orders, their items and history.
	Delete(ctx context.Context, id int64) error
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add inserts the order with its items and pending history and assigns the generated
	// identities. A taken order number is reported as errs.DuplicateResourceError on
	// field "orderNumber" and leaves the surrounding transaction usable.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the mutable attributes and appends pending history entries.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate is Get holding a row lock until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	Delete(ctx context.Context, id int64) error
}

// DeliveryRepository defines the persistence contract for deliveries.
type DeliveryRepository interface {
	// Add inserts the delivery and its pending status changes. A taken delivery number is
	// reported as errs.DuplicateResourceError on field "deliveryNumber".
	Add(ctx context.Context, aggregate *delivery.Delivery) error
	Update(ctx context.Context, aggregate *delivery.Delivery) error
	GetForUpdate(ctx context.Context, id int64) (*delivery.Delivery, error)
	Delete(ctx context.Context, id int64) error
}

// DelivererRepository defines the persistence contract for deliverers and their vehicles.
type DelivererRepository interface {
	// Add inserts the deliverer and its vehicles. Taken employee numbers, emails and
	// license plates are reported as errs.DuplicateResourceError.
	Add(ctx context.Context, aggregate *deliverer.Deliverer) error
	Update(ctx context.Context, aggregate *deliverer.Deliverer) error
	Get(ctx context.Context, id int64) (*deliverer.Deliverer, error)
	GetForUpdate(ctx context.Context, id int64) (*deliverer.Deliverer, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
