package commands_test

import (
	"context"

	"deliveryapp/internal/core/application/usecases/commands"
	"deliveryapp/internal/core/domain/model/customer"
	"deliveryapp/internal/core/domain/model/deliverer"
	"deliveryapp/internal/core/domain/model/delivery"
	"deliveryapp/internal/core/domain/model/order"
	"deliveryapp/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCustomerRepository) Get(ctx context.Context, id int64) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}
func (m *MockCustomerRepository) GetForUpdate(ctx context.Context, id int64) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}
func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockDeliveryRepository) GetForUpdate(ctx context.Context, id int64) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}
func (m *MockDeliveryRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockDelivererRepository struct{ mock.Mock }

func (m *MockDelivererRepository) Add(ctx context.Context, d *deliverer.Deliverer) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockDelivererRepository) Update(ctx context.Context, d *deliverer.Deliverer) error {
	return m.Called(ctx, d).Error(0)
}
func (m *MockDelivererRepository) Get(ctx context.Context, id int64) (*deliverer.Deliverer, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*deliverer.Deliverer)
	return d, args.Error(1)
}
func (m *MockDelivererRepository) GetForUpdate(ctx context.Context, id int64) (*deliverer.Deliverer, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*deliverer.Deliverer)
	return d, args.Error(1)
}
func (m *MockDelivererRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockDelivererRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW implements every narrowed unit of work; tests register only what they use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	return m.Called().Get(0).(ports.CustomerRepository)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}
func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	return m.Called().Get(0).(ports.DeliveryRepository)
}
func (m *MockUoW) DelivererRepository() ports.DelivererRepository {
	return m.Called().Get(0).(ports.DelivererRepository)
}

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type deliveryUoWFactory struct{ uow *MockUoW }

func (f deliveryUoWFactory) Create() commands.DeliveryUoW { return f.uow }

type delivererUoWFactory struct{ uow *MockUoW }

func (f delivererUoWFactory) Create() commands.DelivererUoW { return f.uow }

type MockOrderClient struct{ mock.Mock }

func (m *MockOrderClient) GetOrder(ctx context.Context, id int64) (ports.OrderSnapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.OrderSnapshot), args.Error(1)
}
func (m *MockOrderClient) UpdateOrderStatus(ctx context.Context, id int64, update ports.OrderStatusUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

type MockDelivererClient struct{ mock.Mock }

func (m *MockDelivererClient) GetDeliverer(ctx context.Context, id int64) (ports.DelivererSnapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.DelivererSnapshot), args.Error(1)
}
func (m *MockDelivererClient) ListAvailable(ctx context.Context) ([]ports.DelivererSnapshot, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]ports.DelivererSnapshot)
	return list, args.Error(1)
}

// expectTx registers Begin, optional Commit and the deferred Rollback.
func expectTx(uow *MockUoW, commit bool) {
	uow.On("Begin", mock.Anything).Return(nil).Once()
	if commit {
		uow.On("Commit", mock.Anything).Return(nil).Once()
	}
	uow.On("Rollback", mock.Anything).Return(nil).Once()
}
