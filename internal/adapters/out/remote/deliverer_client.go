package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"deliveryapp/internal/core/domain/model/deliverer"
	"deliveryapp/internal/core/ports"
	"deliveryapp/internal/pkg/discovery"
	"deliveryapp/internal/pkg/errs"
)

type delivererResponse struct {
	ID             int64   `json:"id"`
	EmployeeNumber string  `json:"employeeNumber"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Status         string  `json:"status"`
	VehicleType    *string `json:"vehicleType"`
}

func (r delivererResponse) snapshot() (ports.DelivererSnapshot, error) {
	status, err := deliverer.ParseStatus(r.Status)
	if err != nil {
		return ports.DelivererSnapshot{}, err
	}

	snapshot := ports.DelivererSnapshot{
		ID:             r.ID,
		EmployeeNumber: r.EmployeeNumber,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Status:         status,
	}
	if r.VehicleType != nil {
		vehicleType, typeErr := deliverer.ParseVehicleType(*r.VehicleType)
		if typeErr != nil {
			return ports.DelivererSnapshot{}, typeErr
		}
		snapshot.VehicleType = &vehicleType
	}
	return snapshot, nil
}

// DelivererClient implements ports.DelivererClient against deliverer-service.
type DelivererClient struct {
	client
}

func NewDelivererClient(resolver discovery.Resolver, timeout time.Duration) *DelivererClient {
	return &DelivererClient{client: newClient(ports.DelivererServiceName, resolver, timeout)}
}

// GetDeliverer calls GET /api/deliverers/{id}.
func (c *DelivererClient) GetDeliverer(ctx context.Context, id int64) (ports.DelivererSnapshot, error) {
	const route = "/api/deliverers/{id}"
	path := fmt.Sprintf("/api/deliverers/%d", id)

	var body delivererResponse
	status, err := c.call(ctx, http.MethodGet, route, path, nil, &body)
	if err != nil {
		return ports.DelivererSnapshot{}, err
	}
	switch status {
	case http.StatusNotFound:
		return ports.DelivererSnapshot{}, errs.NewObjectNotFoundError("deliverer", id)
	case http.StatusConflict:
		return ports.DelivererSnapshot{}, c.fail(route,
			errs.NewRemoteUnavailableError(c.service, "GET "+path, fmt.Errorf("unexpected status %d", status)))
	}

	snapshot, err := body.snapshot()
	if err != nil {
		return ports.DelivererSnapshot{}, c.fail(route, errs.NewRemoteUnavailableError(c.service, "GET "+path, err))
	}
	return snapshot, nil
}

// ListAvailable calls GET /api/deliverers/available.
func (c *DelivererClient) ListAvailable(ctx context.Context) ([]ports.DelivererSnapshot, error) {
	const path = "/api/deliverers/available"

	var body []delivererResponse
	status, err := c.call(ctx, http.MethodGet, path, path, nil, &body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.fail(path, errs.NewRemoteUnavailableError(c.service, "GET "+path,
			fmt.Errorf("unexpected status %d", status)))
	}

	snapshots := make([]ports.DelivererSnapshot, 0, len(body))
	for _, r := range body {
		snapshot, snapshotErr := r.snapshot()
		if snapshotErr != nil {
			return nil, c.fail(path, errs.NewRemoteUnavailableError(c.service, "GET "+path, snapshotErr))
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}
