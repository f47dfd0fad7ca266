package ports

import (
	"context"

	"deliveryapp/internal/core/domain/model/deliverer"
	"deliveryapp/internal/core/domain/model/order"
)

// Logical names under which the services register in discovery.
const (
	OrderServiceName     = "order-service"
	DeliveryServiceName  = "delivery-service"
	DelivererServiceName = "deliverer-service"
)

// OrderSnapshot is the part of an order-service order the delivery service reads.
type OrderSnapshot struct {
	ID                  int64
	OrderNumber         string
	Status              order.Status
	DeliveryAddress     string
	DeliveryCity        string
	DeliveryPostalCode  string
	SpecialInstructions *string
}

// OrderStatusUpdate is the body of an order status PATCH.
type OrderStatusUpdate struct {
	Status    order.Status
	Notes     *string
	ChangedBy string
}

// OrderClient calls order-service. Errors are errs.ObjectNotFoundError for 404,
// errs.InvalidStateTransitionError for 409 and errs.RemoteUnavailableError otherwise.
type OrderClient interface {
	GetOrder(ctx context.Context, id int64) (OrderSnapshot, error)
	UpdateOrderStatus(ctx context.Context, id int64, update OrderStatusUpdate) error
}

// DelivererSnapshot is the deliverer summary exposed by deliverer-service.
type DelivererSnapshot struct {
	ID             int64
	EmployeeNumber string
	FirstName      string
	LastName       string
	Status         deliverer.Status
	VehicleType    *deliverer.VehicleType
}

// DelivererClient calls deliverer-service with the same error mapping as OrderClient.
type DelivererClient interface {
	GetDeliverer(ctx context.Context, id int64) (DelivererSnapshot, error)
	ListAvailable(ctx context.Context) ([]DelivererSnapshot, error)
}
