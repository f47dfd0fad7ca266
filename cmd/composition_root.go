package cmd

import (
	"fmt"
	"log/slog"

	httpin "deliveryapp/internal/adapters/in/http"
	"deliveryapp/internal/adapters/out/postgres"
	"deliveryapp/internal/adapters/out/remote"
	"deliveryapp/internal/core/application/usecases/commands"
	"deliveryapp/internal/core/application/usecases/queries"
	"deliveryapp/internal/core/ports"
	"deliveryapp/internal/pkg/discovery"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// CompositionRoot wires the use cases of one service. Writes go through GORM units of work,
// reads through sqlx.
type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	sqlDB      *sqlx.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	resolver   discovery.Resolver
}

func NewCompositionRoot(
	config Config,
	logger *slog.Logger,
	gormDB *gorm.DB,
	sqlDB *sqlx.DB,
	resolver discovery.Resolver,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		logger:     logger,
		sqlDB:      sqlDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		resolver:   resolver,
	}
}

// Schema returns the tables the configured service owns.
func (c CompositionRoot) Schema() (postgres.Schema, error) {
	switch c.config.Service {
	case ports.OrderServiceName:
		return postgres.OrderSchema, nil
	case ports.DeliveryServiceName:
		return postgres.DeliverySchema, nil
	case ports.DelivererServiceName:
		return postgres.DelivererSchema, nil
	default:
		return "", fmt.Errorf("unknown service %q", c.config.Service)
	}
}

// Router returns the HTTP routes of the configured service.
func (c CompositionRoot) Router() (httpin.Router, error) {
	switch c.config.Service {
	case ports.OrderServiceName:
		return c.CreateOrderServer(), nil
	case ports.DeliveryServiceName:
		return c.CreateDeliveryServer(), nil
	case ports.DelivererServiceName:
		return c.CreateDelivererServer(), nil
	default:
		return nil, fmt.Errorf("unknown service %q", c.config.Service)
	}
}

func (c CompositionRoot) CreateOrderServer() *httpin.OrderServer {
	uow := c.orderUoWFactory()
	return httpin.NewOrderServer(httpin.OrderHandlers{
		CreateCustomer:    commands.NewCreateCustomerCommandHandler(uow),
		UpdateCustomer:    commands.NewUpdateCustomerCommandHandler(uow),
		DeleteCustomer:    commands.NewDeleteCustomerCommandHandler(uow),
		CreateOrder:       commands.NewCreateOrderCommandHandler(uow),
		UpdateOrder:       commands.NewUpdateOrderCommandHandler(uow),
		ChangeOrderStatus: commands.NewChangeOrderStatusCommandHandler(uow, c.logger),
		DeleteOrder:       commands.NewDeleteOrderCommandHandler(uow),

		GetCustomer:     queries.NewGetCustomerQueryHandler(c.sqlDB),
		ListCustomers:   queries.NewListCustomersQueryHandler(c.sqlDB),
		GetOrder:        queries.NewGetOrderQueryHandler(c.sqlDB),
		ListOrders:      queries.NewListOrdersQueryHandler(c.sqlDB),
		GetOrderHistory: queries.NewGetOrderHistoryQueryHandler(c.sqlDB),
	}, c.logger)
}

func (c CompositionRoot) CreateDeliveryServer() *httpin.DeliveryServer {
	uow := c.deliveryUoWFactory()
	orders := remote.NewOrderClient(c.resolver, c.config.RemoteTimeout)
	deliverers := remote.NewDelivererClient(c.resolver, c.config.RemoteTimeout)

	create := commands.NewCreateDeliveryCommandHandler(uow, orders, deliverers, c.logger)
	depot := commands.PickupDepot{
		Address:    c.config.Pickup.Address,
		City:       c.config.Pickup.City,
		PostalCode: c.config.Pickup.PostalCode,
	}

	return httpin.NewDeliveryServer(httpin.DeliveryHandlers{
		CreateDelivery:          create,
		UpdateDelivery:          commands.NewUpdateDeliveryCommandHandler(uow, orders, deliverers, c.logger),
		DeleteDelivery:          commands.NewDeleteDeliveryCommandHandler(uow),
		CreateDeliveryFromOrder: commands.NewCreateDeliveryFromOrderCommandHandler(create, depot),
		CompleteOrder:           commands.NewCompleteOrderCommandHandler(orders),

		GetDelivery:         queries.NewGetDeliveryQueryHandler(c.sqlDB),
		ListDeliveries:      queries.NewListDeliveriesQueryHandler(c.sqlDB),
		GetDeliveryTracking: queries.NewGetDeliveryTrackingQueryHandler(c.sqlDB),
	}, c.logger)
}

func (c CompositionRoot) CreateDelivererServer() *httpin.DelivererServer {
	uow := c.delivererUoWFactory()
	return httpin.NewDelivererServer(httpin.DelivererHandlers{
		CreateDeliverer: commands.NewCreateDelivererCommandHandler(uow),
		UpdateDeliverer: commands.NewUpdateDelivererCommandHandler(uow),
		DeleteDeliverer: commands.NewDeleteDelivererCommandHandler(uow),

		GetDeliverer:            queries.NewGetDelivererQueryHandler(c.sqlDB),
		ListDeliverers:          queries.NewListDeliverersQueryHandler(c.sqlDB),
		GetDelivererLocation:    queries.NewGetDelivererLocationQueryHandler(c.sqlDB),
		GetDelivererPerformance: queries.NewGetDelivererPerformanceQueryHandler(c.sqlDB),
	}, c.logger)
}

func (c CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c CompositionRoot) delivererUoWFactory() commands.DelivererUoWFactory {
	return FuncDelivererUoWFactory(func() commands.DelivererUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncDelivererUoWFactory func() commands.DelivererUoW

func (f FuncDelivererUoWFactory) Create() commands.DelivererUoW {
	return f()
}
