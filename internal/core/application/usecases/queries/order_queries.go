package queries

import (
	"context"
	"errors"
	"strings"

	"deliveryapp/internal/core/domain/model/order"
	"deliveryapp/internal/pkg/errs"
	"deliveryapp/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
)

var orderColumns = []string{
	"id", "order_number", "customer_id", "status", "total_amount",
	"delivery_address", "delivery_city", "delivery_postal_code",
	"special_instructions", "delivery_fee", "created_at", "updated_at",
}

// orderLoader completes order rows with their items and customers.
type orderLoader struct {
	reader
}

func (l orderLoader) hydrate(ctx context.Context, orders []OrderView) error {
	if len(orders) == 0 {
		return nil
	}

	orderIDs := make([]int64, 0, len(orders))
	customerIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		customerIDs = append(customerIDs, o.CustomerID)
	}

	var items []OrderItemView
	if err := l.selectAll(ctx, &items, l.qb.Select(
		"id", "order_id", "product_name", "product_description", "quantity",
		"unit_price", "total_price", "weight", "dimensions").
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("id")); err != nil {
		return err
	}
	itemsByOrder := make(map[int64][]OrderItemView, len(orders))
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	var customers []CustomerView
	if err := l.selectAll(ctx, &customers, l.qb.Select(customerColumns...).
		From("customers").
		Where(sq.Eq{"id": customerIDs})); err != nil {
		return err
	}
	customersByID := make(map[int64]CustomerView, len(customers))
	for _, c := range customers {
		customersByID[c.ID] = c
	}

	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []OrderItemView{}
		}
		if c, ok := customersByID[orders[i].CustomerID]; ok {
			orders[i].Customer = &c
		}
	}
	return nil
}

// GetOrderQuery looks an order up by id or, when built with NewGetOrderByNumberQuery,
// by order number.
type GetOrderQuery struct {
	id     int64
	number string

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(id int64) (GetOrderQuery, error) {
	if id <= 0 {
		return GetOrderQuery{}, errs.NewValueIsInvalidError("id")
	}
	return GetOrderQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func NewGetOrderByNumberQuery(number string) (GetOrderQuery, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}
	return GetOrderQuery{number: number, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

type GetOrderQueryHandler struct {
	orderLoader
}

func NewGetOrderQueryHandler(db *sqlx.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{orderLoader{newReader(db)}}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	b := h.qb.Select(orderColumns...).From("orders")
	var notFound error
	if query.number != "" {
		b = b.Where(sq.Eq{"order_number": query.number})
		notFound = errs.NewObjectNotFoundError("order", query.number)
	} else {
		b = b.Where(sq.Eq{"id": query.id})
		notFound = errs.NewObjectNotFoundError("order", query.id)
	}

	var view OrderView
	found, err := h.get(ctx, &view, b)
	if err != nil {
		return OrderView{}, err
	}
	if !found {
		return OrderView{}, notFound
	}

	orders := []OrderView{view}
	if err = h.hydrate(ctx, orders); err != nil {
		return OrderView{}, err
	}
	return orders[0], nil
}

// ListOrdersQuery filters by customer or, without a customer, by status. A nil page
// reads every matching order.
type ListOrdersQuery struct {
	customerID *int64
	status     *order.Status
	page       *Pageable

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(customerID *int64, status *string, page *Pageable) (ListOrdersQuery, error) {
	q := ListOrdersQuery{customerID: customerID, page: page, guard: guard.NewConstructorGuard()}
	if customerID != nil {
		return q, nil
	}
	if status != nil && *status != "" {
		parsed, err := order.ParseStatus(*status)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		q.status = &parsed
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Paged() bool {
	return q.page != nil
}

type ListOrdersQueryHandler struct {
	orderLoader
}

func NewListOrdersQueryHandler(db *sqlx.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orderLoader{newReader(db)}}
}

// Handle returns a page; an unpaged query yields a single page holding every match.
// Filtering by an unknown customer is errs.ObjectNotFoundError.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (Page[OrderView], error) {
	if err := query.Validate(); err != nil {
		return Page[OrderView]{}, err
	}

	var filter sq.Sqlizer = sq.Expr("1 = 1")
	switch {
	case query.customerID != nil:
		found, err := h.exists(ctx, "customers", *query.customerID)
		if err != nil {
			return Page[OrderView]{}, err
		}
		if !found {
			return Page[OrderView]{}, errs.NewObjectNotFoundError("customer", *query.customerID)
		}
		filter = sq.Eq{"customer_id": *query.customerID}
	case query.status != nil:
		filter = sq.Eq{"status": query.status.String()}
	}

	b := h.qb.Select(orderColumns...).From("orders").Where(filter).OrderBy("id")
	var total int64
	if query.page != nil {
		b = b.Limit(uint64(query.page.Size)).Offset(query.page.offset())
		if _, err := h.get(ctx, &total, h.qb.Select("COUNT(*)").From("orders").Where(filter)); err != nil {
			return Page[OrderView]{}, err
		}
	}

	orders := make([]OrderView, 0)
	if err := h.selectAll(ctx, &orders, b); err != nil {
		return Page[OrderView]{}, err
	}
	if err := h.hydrate(ctx, orders); err != nil {
		return Page[OrderView]{}, err
	}

	if query.page == nil {
		size := len(orders)
		return Page[OrderView]{Content: orders, TotalElements: int64(size), TotalPages: min(size, 1), Size: size}, nil
	}
	return newPage(orders, total, *query.page), nil
}

type GetOrderHistoryQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(orderID int64) (GetOrderHistoryQuery, error) {
	if orderID <= 0 {
		return GetOrderHistoryQuery{}, errs.NewValueIsInvalidError("id")
	}
	return GetOrderHistoryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

type GetOrderHistoryQueryHandler struct {
	reader
}

func NewGetOrderHistoryQueryHandler(db *sqlx.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{reader: newReader(db)}
}

// Handle returns the history newest first; entries written in the same instant are
// ordered by insertion, latest first.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]OrderHistoryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.exists(ctx, "orders", query.orderID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.NewObjectNotFoundError("order", query.orderID)
	}

	history := make([]OrderHistoryView, 0)
	if err = h.selectAll(ctx, &history, h.qb.Select("id", "order_id", "status", "notes", "changed_by", "created_at").
		From("order_status_history").
		Where(sq.Eq{"order_id": query.orderID}).
		OrderBy("created_at DESC", "id DESC")); err != nil {
		return nil, err
	}
	return history, nil
}
