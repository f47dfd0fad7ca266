package queries

import (
	"context"
	"errors"
	"strings"

	"deliveryapp/internal/pkg/errs"
	"deliveryapp/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGetCustomerQueryIsNotConstructed = errors.New(
		"GetCustomerQuery must be created via NewGetCustomerQuery constructor",
	)
	ErrListCustomersQueryIsNotConstructed = errors.New(
		"ListCustomersQuery must be created via NewListCustomersQuery constructor",
	)
)

var customerColumns = []string{
	"id", "first_name", "last_name", "email", "phone",
	"address", "city", "postal_code", "created_at", "updated_at",
}

// GetCustomerQuery looks a customer up by id or, when built with NewGetCustomerByEmailQuery,
// by email.
type GetCustomerQuery struct {
	id    int64
	email string

	guard guard.ConstructorGuard
}

func NewGetCustomerQuery(id int64) (GetCustomerQuery, error) {
	if id <= 0 {
		return GetCustomerQuery{}, errs.NewValueIsInvalidError("id")
	}
	return GetCustomerQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

// NewGetCustomerByEmailQuery matches emails case-insensitively; they are stored lower-cased.
func NewGetCustomerByEmailQuery(email string) (GetCustomerQuery, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return GetCustomerQuery{}, errs.NewValueIsRequiredError("email")
	}
	return GetCustomerQuery{email: email, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCustomerQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerQueryIsNotConstructed)
}

type GetCustomerQueryHandler struct {
	reader
}

func NewGetCustomerQueryHandler(db *sqlx.DB) GetCustomerQueryHandler {
	return GetCustomerQueryHandler{reader: newReader(db)}
}

func (h GetCustomerQueryHandler) Handle(ctx context.Context, query GetCustomerQuery) (CustomerView, error) {
	if err := query.Validate(); err != nil {
		return CustomerView{}, err
	}

	b := h.qb.Select(customerColumns...).From("customers")
	var notFound error
	if query.email != "" {
		b = b.Where(sq.Eq{"email": query.email})
		notFound = errs.NewObjectNotFoundError("customer", query.email)
	} else {
		b = b.Where(sq.Eq{"id": query.id})
		notFound = errs.NewObjectNotFoundError("customer", query.id)
	}

	var view CustomerView
	found, err := h.get(ctx, &view, b)
	if err != nil {
		return CustomerView{}, err
	}
	if !found {
		return CustomerView{}, notFound
	}
	return view, nil
}

type ListCustomersQuery struct {
	guard guard.ConstructorGuard
}

func NewListCustomersQuery() ListCustomersQuery {
	return ListCustomersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListCustomersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomersQueryIsNotConstructed)
}

type ListCustomersQueryHandler struct {
	reader
}

func NewListCustomersQueryHandler(db *sqlx.DB) ListCustomersQueryHandler {
	return ListCustomersQueryHandler{reader: newReader(db)}
}

func (h ListCustomersQueryHandler) Handle(ctx context.Context, query ListCustomersQuery) ([]CustomerView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	customers := make([]CustomerView, 0)
	if err := h.selectAll(ctx, &customers, h.qb.Select(customerColumns...).From("customers").OrderBy("id")); err != nil {
		return nil, err
	}
	return customers, nil
}
