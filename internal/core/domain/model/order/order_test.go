package order_test

import (
	"strings"
	"testing"
	"time"

	"deliveryapp/internal/core/domain/model/kernel"
	"deliveryapp/internal/core/domain/model/order"
	"deliveryapp/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func validSpec(t *testing.T) order.Spec {
	t.Helper()
	addr, err := kernel.NewAddress("1 Main St", "Springfield", "12345")
	require.NoError(t, err)
	return order.Spec{
		CustomerID:      1,
		DeliveryAddress: addr,
		DeliveryFee:     ptr(decimal.RequireFromString("3.50")),
		Items: []order.ItemSpec{
			{ProductName: "Book", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		},
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("computes total and records initial history", func(t *testing.T) {
		o, err := order.NewOrder(validSpec(t), testNow)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, decimal.RequireFromString("23.50").Equal(o.TotalAmount()))
		assert.Equal(t, order.Pending, o.Status())
		require.Len(t, o.Items(), 1)
		assert.True(t, decimal.RequireFromString("20").Equal(o.Items()[0].TotalPrice()))

		history := o.PendingHistory()
		require.Len(t, history, 1)
		assert.Equal(t, order.Pending, history[0].Status())
		assert.Equal(t, "Order created", *history[0].Notes())
		assert.Equal(t, order.SystemActor, history[0].ChangedBy())
	})

	t.Run("fee defaults to zero", func(t *testing.T) {
		spec := validSpec(t)
		spec.DeliveryFee = nil
		spec.Items = append(spec.Items, order.ItemSpec{
			ProductName: "Pen", Quantity: 3, UnitPrice: decimal.RequireFromString("1.25"),
		})

		o, err := order.NewOrder(spec, testNow)

		require.NoError(t, err)
		assert.True(t, decimal.Zero.Equal(o.DeliveryFee()))
		assert.True(t, decimal.RequireFromString("23.75").Equal(o.TotalAmount()))
	})

	t.Run("zero items", func(t *testing.T) {
		spec := validSpec(t)
		spec.Items = nil

		_, err := order.NewOrder(spec, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("item rules", func(t *testing.T) {
		spec := validSpec(t)
		spec.Items = []order.ItemSpec{
			{ProductName: "", Quantity: 0, UnitPrice: decimal.NewFromInt(-1)},
		}

		_, err := order.NewOrder(spec, testNow)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "items[0]")
		assert.Contains(t, err.Error(), "productName")
		assert.Contains(t, err.Error(), "quantity")
		assert.Contains(t, err.Error(), "unitPrice")
	})

	t.Run("negative fee and missing customer", func(t *testing.T) {
		spec := validSpec(t)
		spec.CustomerID = 0
		spec.DeliveryFee = ptr(decimal.NewFromInt(-1))

		_, err := order.NewOrder(spec, testNow)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "customerId")
		assert.Contains(t, err.Error(), "deliveryFee")
	})

	t.Run("amounts must fit their columns", func(t *testing.T) {
		tests := []struct {
			name  string
			edit  func(*order.Spec)
			param string
		}{
			{"unit price", func(s *order.Spec) {
				s.Items[0].UnitPrice = decimal.RequireFromString("100000000")
			}, "unitPrice"},
			{"weight", func(s *order.Spec) {
				s.Items[0].Weight = ptr(decimal.RequireFromString("1000000.00"))
			}, "weight"},
			{"line total", func(s *order.Spec) {
				s.Items[0].Quantity = 1_000_000
				s.Items[0].UnitPrice = decimal.RequireFromString("1000.00")
			}, "totalPrice"},
			{"delivery fee", func(s *order.Spec) {
				s.DeliveryFee = ptr(decimal.RequireFromString("123456789.00"))
			}, "deliveryFee"},
			{"order total", func(s *order.Spec) {
				s.DeliveryFee = ptr(decimal.RequireFromString("99999999.99"))
			}, "totalAmount"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				spec := validSpec(t)
				tt.edit(&spec)

				_, err := order.NewOrder(spec, testNow)

				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				assert.Contains(t, err.Error(), tt.param)
			})
		}
	})

	t.Run("weight is rounded to cents", func(t *testing.T) {
		spec := validSpec(t)
		spec.Items[0].Weight = ptr(decimal.RequireFromString("1.005"))

		o, err := order.NewOrder(spec, testNow)

		require.NoError(t, err)
		assert.Equal(t, "1.01", o.Items()[0].Weight().StringFixed(2))
	})

	t.Run("unconstructed address", func(t *testing.T) {
		spec := validSpec(t)
		spec.DeliveryAddress = kernel.Address{}

		_, err := order.NewOrder(spec, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("appends one entry per transition", func(t *testing.T) {
		o, _ := order.NewOrder(validSpec(t), testNow)
		later := testNow.Add(time.Minute)

		require.NoError(t, o.ChangeStatus(order.Processing, ptr("assigned"), "delivery-service", later))
		require.NoError(t, o.ChangeStatus(order.ReadyForDelivery, nil, "", later))

		history := o.PendingHistory()
		require.Len(t, history, 3)
		assert.Equal(t, "delivery-service", history[1].ChangedBy())
		assert.Equal(t, order.SystemActor, history[2].ChangedBy())
		assert.Equal(t, order.ReadyForDelivery, o.Status())
		assert.Equal(t, later, o.UpdatedAt())
	})

	t.Run("rejected transition leaves state untouched", func(t *testing.T) {
		o, _ := order.NewOrder(validSpec(t), testNow)

		err := o.ChangeStatus(order.Completed, nil, "", testNow)

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Len(t, o.PendingHistory(), 1)
	})

	t.Run("changedBy longer than the history column", func(t *testing.T) {
		o, _ := order.NewOrder(validSpec(t), testNow)

		err := o.ChangeStatus(order.Processing, nil, strings.Repeat("a", order.ChangedByMaxLength+1), testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Pending, o.Status())
		assert.Len(t, o.PendingHistory(), 1)
	})

	t.Run("changedBy is trimmed", func(t *testing.T) {
		o, _ := order.NewOrder(validSpec(t), testNow)

		require.NoError(t, o.ChangeStatus(order.Processing, nil, "  ops  ", testNow))
		assert.Equal(t, "ops", o.PendingHistory()[1].ChangedBy())
	})
}

func TestOrder_UpdateDeliveryDetails(t *testing.T) {
	o, _ := order.NewOrder(validSpec(t), testNow)
	total := o.TotalAmount()

	err := o.UpdateDeliveryDetails(order.DeliveryDetailsPatch{
		DeliveryCity:        ptr("Shelbyville"),
		SpecialInstructions: ptr("leave at door"),
	}, testNow.Add(time.Hour))

	require.NoError(t, err)
	assert.Equal(t, "Shelbyville", o.DeliveryAddress().City())
	assert.Equal(t, "1 Main St", o.DeliveryAddress().Street())
	assert.Equal(t, "leave at door", *o.SpecialInstructions())
	assert.True(t, total.Equal(o.TotalAmount()))

	err = o.UpdateDeliveryDetails(order.DeliveryDetailsPatch{DeliveryPostalCode: ptr(" ")}, testNow)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Equal(t, "12345", o.DeliveryAddress().PostalCode())
}

func TestOrder_Identity(t *testing.T) {
	o, _ := order.NewOrder(validSpec(t), testNow)

	require.NoError(t, o.AssignNumber("ORD-20240501103000"))
	require.NoError(t, o.AssignNumber("ORD-20240501103000-1"))
	require.NoError(t, o.AssignID(42))
	assert.Equal(t, "ORD-20240501103000-1", o.OrderNumber())

	require.Error(t, o.AssignNumber("ORD-X"))
	require.Error(t, o.AssignID(43))
}

func TestRestoreOrder(t *testing.T) {
	addr, _ := kernel.NewAddress("1 Main St", "Springfield", "12345")

	o, err := order.RestoreOrder(5, "ORD-1", 2, order.Processing,
		decimal.NewFromInt(10), decimal.Zero, addr, nil, nil, testNow, testNow)
	require.NoError(t, err)
	assert.Empty(t, o.PendingHistory())
	assert.Equal(t, int64(5), o.ID())

	_, err = order.RestoreOrder(5, "ORD-1", 2, order.Unknown,
		decimal.Zero, decimal.Zero, addr, nil, nil, testNow, testNow)
	require.Error(t, err)
}
