package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from it use the
// transaction started by Begin. A service only touches the repositories of the tables it owns.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	// Commit returns an error if no transaction is active.
	Commit(ctx context.Context) error
	// Rollback is a no-op once the transaction has been committed.
	Rollback(ctx context.Context) error

	CustomerRepository() CustomerRepository
	OrderRepository() OrderRepository
	DeliveryRepository() DeliveryRepository
	DelivererRepository() DelivererRepository
}
