// Package commands contains business operations that modify system state.
// Every handler validates its command, runs inside one unit of work and returns
// the identity of what it wrote; delivery handlers also report cross-service warnings.
package commands

import (
	"context"

	"deliveryapp/internal/core/ports"
)

// Unit of Work interfaces narrowed to the repositories each service owns.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	DelivererRepoFactory interface {
		DelivererRepository() ports.DelivererRepository
	}

	// OrderUoW serves the order service: customers and orders share one database.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   customer, err := uow.CustomerRepository().Get(ctx, id)
	//   err = uow.OrderRepository().Add(ctx, order)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		CustomerRepoFactory
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	DelivererUoW interface {
		TxManager
		DelivererRepoFactory
	}

	DelivererUoWFactory interface {
		Create() DelivererUoW
	}
)
