package queries

import (
	"context"
	"errors"

	"deliveryapp/internal/core/domain/model/deliverer"
	"deliveryapp/internal/pkg/errs"
	"deliveryapp/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGetDelivererQueryIsNotConstructed = errors.New(
		"GetDelivererQuery must be created via NewGetDelivererQuery constructor",
	)
	ErrListDeliverersQueryIsNotConstructed = errors.New(
		"ListDeliverersQuery must be created via NewListDeliverersQuery constructor",
	)
)

// primaryVehicleType is the type of the first vehicle row of the deliverer.
const primaryVehicleType = "(SELECT v.vehicle_type FROM deliverer_vehicles v " +
	"WHERE v.deliverer_id = d.id ORDER BY v.id LIMIT 1) AS vehicle_type"

var delivererColumns = []string{
	"d.id", "d.employee_number", "d.first_name", "d.last_name", "d.email", "d.phone",
	"d.date_of_birth", "d.national_id", "d.address", "d.city", "d.postal_code",
	"d.emergency_contact_name", "d.emergency_contact_phone", "d.status",
	"d.hire_date", "d.termination_date", "d.rating", "d.total_deliveries",
	"d.successful_deliveries", "d.failed_deliveries", "d.profile_photo_url",
	primaryVehicleType, "d.created_at", "d.updated_at",
}

type GetDelivererQuery struct {
	id int64

	guard guard.ConstructorGuard
}

func NewGetDelivererQuery(id int64) (GetDelivererQuery, error) {
	if id <= 0 {
		return GetDelivererQuery{}, errs.NewValueIsInvalidError("id")
	}
	return GetDelivererQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDelivererQuery) Validate() error {
	return q.guard.Validate(ErrGetDelivererQueryIsNotConstructed)
}

type GetDelivererQueryHandler struct {
	reader
}

func NewGetDelivererQueryHandler(db *sqlx.DB) GetDelivererQueryHandler {
	return GetDelivererQueryHandler{reader: newReader(db)}
}

func (h GetDelivererQueryHandler) Handle(ctx context.Context, query GetDelivererQuery) (DelivererView, error) {
	if err := query.Validate(); err != nil {
		return DelivererView{}, err
	}

	var view DelivererView
	found, err := h.get(ctx, &view, h.qb.Select(delivererColumns...).From("deliverers d").Where(sq.Eq{"d.id": query.id}))
	if err != nil {
		return DelivererView{}, err
	}
	if !found {
		return DelivererView{}, errs.NewObjectNotFoundError("deliverer", query.id)
	}
	return view, nil
}

// ListDeliverersQuery lists all deliverers, or only those available for work.
type ListDeliverersQuery struct {
	availableOnly bool

	guard guard.ConstructorGuard
}

func NewListDeliverersQuery() ListDeliverersQuery {
	return ListDeliverersQuery{guard: guard.NewConstructorGuard()}
}

func NewListAvailableDeliverersQuery() ListDeliverersQuery {
	return ListDeliverersQuery{availableOnly: true, guard: guard.NewConstructorGuard()}
}

func (q ListDeliverersQuery) Validate() error {
	return q.guard.Validate(ErrListDeliverersQueryIsNotConstructed)
}

type ListDeliverersQueryHandler struct {
	reader
}

func NewListDeliverersQueryHandler(db *sqlx.DB) ListDeliverersQueryHandler {
	return ListDeliverersQueryHandler{reader: newReader(db)}
}

func (h ListDeliverersQueryHandler) Handle(ctx context.Context, query ListDeliverersQuery) ([]DelivererView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b := h.qb.Select(delivererColumns...).From("deliverers d").OrderBy("d.id")
	if query.availableOnly {
		b = b.Where(sq.Eq{"d.status": deliverer.Active.String()})
	}

	deliverers := make([]DelivererView, 0)
	if err := h.selectAll(ctx, &deliverers, b); err != nil {
		return nil, err
	}
	return deliverers, nil
}

type GetDelivererLocationQueryHandler struct {
	reader
}

func NewGetDelivererLocationQueryHandler(db *sqlx.DB) GetDelivererLocationQueryHandler {
	return GetDelivererLocationQueryHandler{reader: newReader(db)}
}

// Handle answers a location without coordinates for an existing deliverer.
func (h GetDelivererLocationQueryHandler) Handle(ctx context.Context, query GetDelivererQuery) (DelivererLocationView, error) {
	if err := query.Validate(); err != nil {
		return DelivererLocationView{}, err
	}

	found, err := h.exists(ctx, "deliverers", query.id)
	if err != nil {
		return DelivererLocationView{}, err
	}
	if !found {
		return DelivererLocationView{}, errs.NewObjectNotFoundError("deliverer", query.id)
	}
	return DelivererLocationView{DelivererID: query.id}, nil
}

type GetDelivererPerformanceQueryHandler struct {
	reader
}

func NewGetDelivererPerformanceQueryHandler(db *sqlx.DB) GetDelivererPerformanceQueryHandler {
	return GetDelivererPerformanceQueryHandler{reader: newReader(db)}
}

func (h GetDelivererPerformanceQueryHandler) Handle(
	ctx context.Context,
	query GetDelivererQuery,
) (DelivererPerformanceView, error) {
	if err := query.Validate(); err != nil {
		return DelivererPerformanceView{}, err
	}

	var view DelivererPerformanceView
	found, err := h.get(ctx, &view, h.qb.
		Select("id", "total_deliveries", "successful_deliveries", "failed_deliveries", "rating").
		From("deliverers").
		Where(sq.Eq{"id": query.id}))
	if err != nil {
		return DelivererPerformanceView{}, err
	}
	if !found {
		return DelivererPerformanceView{}, errs.NewObjectNotFoundError("deliverer", query.id)
	}
	return view, nil
}
