package queries

import (
	"context"
	"errors"

	"deliveryapp/internal/pkg/errs"
	"deliveryapp/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGetDeliveryQueryIsNotConstructed = errors.New(
		"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
	)
	ErrListDeliveriesQueryIsNotConstructed = errors.New(
		"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
	)
)

var deliveryColumns = []string{
	"id", "delivery_number", "order_id", "order_number", "deliverer_id", "status",
	"pickup_address", "pickup_city", "pickup_postal_code",
	"delivery_address", "delivery_city", "delivery_postal_code",
	"estimated_distance", "estimated_duration", "actual_distance", "actual_duration",
	"priority", "scheduled_pickup_time", "actual_pickup_time",
	"estimated_delivery_time", "actual_delivery_time",
	"special_instructions", "notes", "created_at", "updated_at",
}

type GetDeliveryQuery struct {
	id int64

	guard guard.ConstructorGuard
}

func NewGetDeliveryQuery(id int64) (GetDeliveryQuery, error) {
	if id <= 0 {
		return GetDeliveryQuery{}, errs.NewValueIsInvalidError("id")
	}
	return GetDeliveryQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

type GetDeliveryQueryHandler struct {
	reader
}

func NewGetDeliveryQueryHandler(db *sqlx.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{reader: newReader(db)}
}

func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return DeliveryView{}, err
	}

	var view DeliveryView
	found, err := h.get(ctx, &view, h.qb.Select(deliveryColumns...).From("deliveries").Where(sq.Eq{"id": query.id}))
	if err != nil {
		return DeliveryView{}, err
	}
	if !found {
		return DeliveryView{}, errs.NewObjectNotFoundError("delivery", query.id)
	}
	return view, nil
}

// ListDeliveriesQuery lists every delivery, or those of one deliverer.
type ListDeliveriesQuery struct {
	delivererID *int64

	guard guard.ConstructorGuard
}

func NewListDeliveriesQuery(delivererID *int64) ListDeliveriesQuery {
	return ListDeliveriesQuery{delivererID: delivererID, guard: guard.NewConstructorGuard()}
}

func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

type ListDeliveriesQueryHandler struct {
	reader
}

func NewListDeliveriesQueryHandler(db *sqlx.DB) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{reader: newReader(db)}
}

func (h ListDeliveriesQueryHandler) Handle(ctx context.Context, query ListDeliveriesQuery) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b := h.qb.Select(deliveryColumns...).From("deliveries").OrderBy("id")
	if query.delivererID != nil {
		b = b.Where(sq.Eq{"deliverer_id": *query.delivererID})
	}

	deliveries := make([]DeliveryView, 0)
	if err := h.selectAll(ctx, &deliveries, b); err != nil {
		return nil, err
	}
	return deliveries, nil
}

// GetDeliveryTrackingQueryHandler returns the tracking trail of a delivery. No tracking
// source is connected, so the trail of an existing delivery is always empty.
type GetDeliveryTrackingQueryHandler struct {
	reader
}

func NewGetDeliveryTrackingQueryHandler(db *sqlx.DB) GetDeliveryTrackingQueryHandler {
	return GetDeliveryTrackingQueryHandler{reader: newReader(db)}
}

func (h GetDeliveryTrackingQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) ([]TrackingEvent, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.exists(ctx, "deliveries", query.id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.NewObjectNotFoundError("delivery", query.id)
	}
	return []TrackingEvent{}, nil
}
