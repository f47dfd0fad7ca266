package services

import (
	"deliveryapp/internal/core/domain/model/delivery"
	"deliveryapp/internal/core/domain/model/order"
)

// ProjectionActor is recorded as changedBy on order history written by a projection.
const ProjectionActor = "delivery-service"

// OrderStatusFor maps the status a delivery has just entered to the order status that
// follows it. The second result is false when the delivery status has no order counterpart.
func OrderStatusFor(status delivery.Status) (order.Status, bool) {
	switch status {
	case delivery.Assigned:
		return order.Processing, true
	case delivery.PickedUp:
		return order.ReadyForDelivery, true
	case delivery.Delivered:
		return order.Completed, true
	case delivery.Cancelled:
		return order.Cancelled, true
	default:
		return order.Unknown, false
	}
}
