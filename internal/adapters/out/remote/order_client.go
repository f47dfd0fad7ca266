package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"deliveryapp/internal/core/domain/model/order"
	"deliveryapp/internal/core/ports"
	"deliveryapp/internal/pkg/discovery"
	"deliveryapp/internal/pkg/errs"
)

type orderResponse struct {
	ID                  int64   `json:"id"`
	OrderNumber         string  `json:"orderNumber"`
	Status              string  `json:"status"`
	DeliveryAddress     string  `json:"deliveryAddress"`
	DeliveryCity        string  `json:"deliveryCity"`
	DeliveryPostalCode  string  `json:"deliveryPostalCode"`
	SpecialInstructions *string `json:"specialInstructions"`
}

type orderStatusRequest struct {
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
	ChangedBy string  `json:"changedBy,omitempty"`
}

// OrderClient implements ports.OrderClient against order-service.
type OrderClient struct {
	client
}

func NewOrderClient(resolver discovery.Resolver, timeout time.Duration) *OrderClient {
	return &OrderClient{client: newClient(ports.OrderServiceName, resolver, timeout)}
}

// GetOrder calls GET /api/orders/{id}.
func (c *OrderClient) GetOrder(ctx context.Context, id int64) (ports.OrderSnapshot, error) {
	path := fmt.Sprintf("/api/orders/%d", id)

	var body orderResponse
	status, err := c.call(ctx, http.MethodGet, "/api/orders/{id}", path, nil, &body)
	if err != nil {
		return ports.OrderSnapshot{}, err
	}
	switch status {
	case http.StatusNotFound:
		return ports.OrderSnapshot{}, errs.NewObjectNotFoundError("order", id)
	case http.StatusConflict:
		return ports.OrderSnapshot{}, c.fail("/api/orders/{id}",
			errs.NewRemoteUnavailableError(c.service, "GET "+path, fmt.Errorf("unexpected status %d", status)))
	}

	orderStatus, err := order.ParseStatus(body.Status)
	if err != nil {
		return ports.OrderSnapshot{}, c.fail("/api/orders/{id}", errs.NewRemoteUnavailableError(c.service, "GET "+path, err))
	}

	return ports.OrderSnapshot{
		ID:                  body.ID,
		OrderNumber:         body.OrderNumber,
		Status:              orderStatus,
		DeliveryAddress:     body.DeliveryAddress,
		DeliveryCity:        body.DeliveryCity,
		DeliveryPostalCode:  body.DeliveryPostalCode,
		SpecialInstructions: body.SpecialInstructions,
	}, nil
}

// UpdateOrderStatus calls PATCH /api/orders/{id}/status. A 409 answer means order-service
// rejected the transition.
func (c *OrderClient) UpdateOrderStatus(ctx context.Context, id int64, update ports.OrderStatusUpdate) error {
	request := orderStatusRequest{
		Status:    update.Status.String(),
		Notes:     update.Notes,
		ChangedBy: update.ChangedBy,
	}

	status, err := c.call(ctx, http.MethodPatch, "/api/orders/{id}/status",
		fmt.Sprintf("/api/orders/%d/status", id), request, nil)
	if err != nil {
		return err
	}
	switch status {
	case http.StatusNotFound:
		return errs.NewObjectNotFoundError("order", id)
	case http.StatusConflict:
		return errs.NewInvalidStateTransitionError("order", "", update.Status.String())
	}
	return nil
}
