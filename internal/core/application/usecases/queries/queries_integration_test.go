package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	postgresadapter "deliveryapp/internal/adapters/out/postgres"
	"deliveryapp/internal/adapters/out/postgres/customerrepo"
	"deliveryapp/internal/adapters/out/postgres/delivererrepo"
	"deliveryapp/internal/adapters/out/postgres/deliveryrepo"
	"deliveryapp/internal/adapters/out/postgres/orderrepo"
	"deliveryapp/internal/adapters/out/postgres/pgtest"
	"deliveryapp/internal/core/application/usecases/queries"
	"deliveryapp/internal/core/domain/model/customer"
	"deliveryapp/internal/core/domain/model/deliverer"
	"deliveryapp/internal/core/domain/model/delivery"
	"deliveryapp/internal/core/domain/model/kernel"
	"deliveryapp/internal/core/domain/model/order"
	"deliveryapp/internal/pkg/errs"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var schemas = []postgresadapter.Schema{
	postgresadapter.OrderSchema, postgresadapter.DeliverySchema, postgresadapter.DelivererSchema,
}

// ReadersIntegrationTestSuite seeds through the GORM repositories and reads back
// through the query handlers.
type ReadersIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	db       *gorm.DB
	sqlDB    *sqlx.DB
	now      time.Time
}

func (suite *ReadersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	database, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.database = database

	db, err := database.OpenGorm()
	suite.Require().NoError(err)
	suite.db = db
	for _, schema := range schemas {
		suite.Require().NoError(postgresadapter.Migrate(db, schema))
	}

	suite.sqlDB, err = sqlx.ConnectContext(ctx, "postgres", database.DSN)
	suite.Require().NoError(err)
}

func (suite *ReadersIntegrationTestSuite) SetupTest() {
	for _, schema := range schemas {
		suite.Require().NoError(pgtest.Truncate(suite.db, schema.Tables()...))
	}
	suite.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (suite *ReadersIntegrationTestSuite) TearDownSuite() {
	if suite.sqlDB != nil {
		suite.Require().NoError(suite.sqlDB.Close())
	}
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *ReadersIntegrationTestSuite) TestListOrders_Filters() {
	ctx := context.Background()
	ann := suite.addCustomer("ann@example.com")
	bob := suite.addCustomer("bob@example.com")
	suite.addOrder(ann, "ORD-1")
	processing := suite.addOrder(ann, "ORD-2")
	suite.addOrder(bob, "ORD-3")
	suite.changeStatus(processing, order.Processing)
	handler := queries.NewListOrdersQueryHandler(suite.sqlDB)

	suite.Run("customer wins over status", func() {
		query, err := queries.NewListOrdersQuery(ptr(ann.ID()), ptr("NOT_A_STATUS"), nil)
		suite.Require().NoError(err)

		page, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.Equal([]string{"ORD-1", "ORD-2"}, orderNumbers(page.Content))
		suite.Require().NotNil(page.Content[0].Customer)
		suite.Equal("ann@example.com", page.Content[0].Customer.Email)
		suite.Len(page.Content[0].Items, 1)
	})

	suite.Run("status", func() {
		query, err := queries.NewListOrdersQuery(nil, ptr("PENDING"), nil)
		suite.Require().NoError(err)

		page, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.Equal([]string{"ORD-1", "ORD-3"}, orderNumbers(page.Content))
	})

	suite.Run("unknown customer", func() {
		query, err := queries.NewListOrdersQuery(ptr(int64(999)), nil, nil)
		suite.Require().NoError(err)

		_, err = handler.Handle(ctx, query)

		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})

	suite.Run("unknown status without customer", func() {
		_, err := queries.NewListOrdersQuery(nil, ptr("LOST"), nil)
		suite.Require().Error(err)
	})
}

func (suite *ReadersIntegrationTestSuite) TestListOrders_Paging() {
	ctx := context.Background()
	ann := suite.addCustomer("ann@example.com")
	for i := 1; i <= 3; i++ {
		suite.addOrder(ann, fmt.Sprintf("ORD-%d", i))
	}
	handler := queries.NewListOrdersQueryHandler(suite.sqlDB)

	list := func(page, size *int, status *string) queries.Page[queries.OrderView] {
		pageable, err := queries.NewPageable(page, size)
		suite.Require().NoError(err)
		query, err := queries.NewListOrdersQuery(nil, status, pageable)
		suite.Require().NoError(err)
		result, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)
		return result
	}

	suite.Run("first page", func() {
		page := list(ptr(0), ptr(2), nil)

		suite.Equal([]string{"ORD-1", "ORD-2"}, orderNumbers(page.Content))
		suite.Equal(int64(3), page.TotalElements)
		suite.Equal(2, page.TotalPages)
		suite.Equal(0, page.Number)
		suite.Equal(2, page.Size)
	})

	suite.Run("last page", func() {
		page := list(ptr(1), ptr(2), nil)

		suite.Equal([]string{"ORD-3"}, orderNumbers(page.Content))
		suite.Equal(1, page.Number)
	})

	suite.Run("past the end", func() {
		page := list(ptr(5), nil, nil)

		suite.Empty(page.Content)
		suite.Equal(int64(3), page.TotalElements)
		suite.Equal(1, page.TotalPages)
		suite.Equal(queries.DefaultPageSize, page.Size)
	})

	suite.Run("unpaged is one page", func() {
		page := list(nil, nil, nil)

		suite.Len(page.Content, 3)
		suite.Equal(int64(3), page.TotalElements)
		suite.Equal(1, page.TotalPages)
		suite.Equal(3, page.Size)
	})

	suite.Run("unpaged and empty", func() {
		page := list(nil, nil, ptr("CANCELLED"))

		suite.Empty(page.Content)
		suite.NotNil(page.Content)
		suite.Zero(page.TotalPages)
		suite.Zero(page.Size)
	})

	suite.Run("paged and empty", func() {
		page := list(ptr(0), ptr(10), ptr("CANCELLED"))

		suite.Empty(page.Content)
		suite.Zero(page.TotalElements)
		suite.Zero(page.TotalPages)
	})
}

func (suite *ReadersIntegrationTestSuite) TestGetOrder() {
	ctx := context.Background()
	o := suite.addOrder(suite.addCustomer("ann@example.com"), "ORD-7")
	handler := queries.NewGetOrderQueryHandler(suite.sqlDB)

	byNumber, err := queries.NewGetOrderByNumberQuery(" ORD-7 ")
	suite.Require().NoError(err)
	view, err := handler.Handle(ctx, byNumber)
	suite.Require().NoError(err)
	suite.Equal(o.ID(), view.ID)
	suite.True(decimal.RequireFromString("13.50").Equal(view.TotalAmount), view.TotalAmount.String())
	suite.Require().Len(view.Items, 1)
	suite.True(decimal.RequireFromString("5.00").Equal(view.Items[0].UnitPrice))

	missing, err := queries.NewGetOrderQuery(o.ID() + 1)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReadersIntegrationTestSuite) TestGetOrderHistory_NewestFirst() {
	ctx := context.Background()
	o := suite.addOrder(suite.addCustomer("ann@example.com"), "ORD-1")
	// every entry shares the creation instant, so only the id breaks the tie
	suite.changeStatus(o, order.Processing)
	suite.changeStatus(o, order.ReadyForDelivery)
	handler := queries.NewGetOrderHistoryQueryHandler(suite.sqlDB)

	query, err := queries.NewGetOrderHistoryQuery(o.ID())
	suite.Require().NoError(err)
	history, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(history, 3)
	suite.Equal("READY_FOR_DELIVERY", history[0].Status)
	suite.Equal("PROCESSING", history[1].Status)
	suite.Equal("PENDING", history[2].Status)
	suite.Equal(order.SystemActor, history[2].ChangedBy)
	suite.Greater(history[0].ID, history[1].ID)

	missing, err := queries.NewGetOrderHistoryQuery(o.ID() + 1)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReadersIntegrationTestSuite) TestCustomers() {
	ctx := context.Background()
	ann := suite.addCustomer("ann@example.com")
	suite.addCustomer("bob@example.com")

	byEmail, err := queries.NewGetCustomerByEmailQuery("ANN@example.com")
	suite.Require().NoError(err)
	view, err := queries.NewGetCustomerQueryHandler(suite.sqlDB).Handle(ctx, byEmail)
	suite.Require().NoError(err)
	suite.Equal(ann.ID(), view.ID)

	all, err := queries.NewListCustomersQueryHandler(suite.sqlDB).Handle(ctx, queries.NewListCustomersQuery())
	suite.Require().NoError(err)
	suite.Len(all, 2)
	suite.Equal("ann@example.com", all[0].Email)
}

func (suite *ReadersIntegrationTestSuite) TestDeliverers_PrimaryVehicleAndAvailability() {
	ctx := context.Background()
	active := deliverer.Active
	scooter := deliverer.Scooter
	rider := suite.addDeliverer("DLV-1", "kim@example.com", &active, &scooter)
	walker := suite.addDeliverer("DLV-2", "lee@example.com", nil, nil)
	// a later vehicle does not replace the primary one
	suite.Require().NoError(suite.db.Create(&delivererrepo.VehicleDTO{
		DelivererID:  rider.ID(),
		VehicleType:  deliverer.Van.String(),
		LicensePlate: "VAN-1",
		IsActive:     true,
		CreatedAt:    suite.now,
	}).Error)

	get := queries.NewGetDelivererQueryHandler(suite.sqlDB)
	query, err := queries.NewGetDelivererQuery(rider.ID())
	suite.Require().NoError(err)
	view, err := get.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().NotNil(view.VehicleType)
	suite.Equal("SCOOTER", *view.VehicleType)
	suite.Equal("ACTIVE", view.Status)
	suite.True(view.TerminationDate.IsZero())

	list := queries.NewListDeliverersQueryHandler(suite.sqlDB)
	all, err := list.Handle(ctx, queries.NewListDeliverersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Nil(all[1].VehicleType)
	suite.Equal(walker.ID(), all[1].ID)

	available, err := list.Handle(ctx, queries.NewListAvailableDeliverersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(available, 1)
	suite.Equal(rider.ID(), available[0].ID)

	performance, err := queries.NewGetDelivererPerformanceQueryHandler(suite.sqlDB).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(rider.ID(), performance.DelivererID)
	suite.Zero(performance.TotalDeliveries)

	location, err := queries.NewGetDelivererLocationQueryHandler(suite.sqlDB).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Nil(location.Latitude)

	missing, err := queries.NewGetDelivererQuery(walker.ID() + 1)
	suite.Require().NoError(err)
	_, err = get.Handle(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = queries.NewGetDelivererLocationQueryHandler(suite.sqlDB).Handle(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReadersIntegrationTestSuite) TestDeliveries() {
	ctx := context.Background()
	first := suite.addDelivery("DEL-1", 10, ptr(int64(3)))
	suite.addDelivery("DEL-2", 11, nil)

	list := queries.NewListDeliveriesQueryHandler(suite.sqlDB)
	all, err := list.Handle(ctx, queries.NewListDeliveriesQuery(nil))
	suite.Require().NoError(err)
	suite.Len(all, 2)

	mine, err := list.Handle(ctx, queries.NewListDeliveriesQuery(ptr(int64(3))))
	suite.Require().NoError(err)
	suite.Require().Len(mine, 1)
	suite.Equal("DEL-1", mine[0].DeliveryNumber)
	suite.Equal("ASSIGNED", mine[0].Status)

	query, err := queries.NewGetDeliveryQuery(first.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetDeliveryQueryHandler(suite.sqlDB).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(int64(10), view.OrderID)
	suite.Equal("Depot 1", view.PickupAddress)

	trail, err := queries.NewGetDeliveryTrackingQueryHandler(suite.sqlDB).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.NotNil(trail)
	suite.Empty(trail)

	missing, err := queries.NewGetDeliveryQuery(first.ID() + 10)
	suite.Require().NoError(err)
	_, err = queries.NewGetDeliveryTrackingQueryHandler(suite.sqlDB).Handle(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestReadersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ReadersIntegrationTestSuite))
}

func ptr[T any](v T) *T { return &v }

func orderNumbers(orders []queries.OrderView) []string {
	numbers := make([]string, 0, len(orders))
	for _, o := range orders {
		numbers = append(numbers, o.OrderNumber)
	}
	return numbers
}

func (suite *ReadersIntegrationTestSuite) addCustomer(email string) *customer.Customer {
	c, err := customer.NewCustomer(customer.Profile{
		FirstName: "Ann", LastName: "Lee", Email: email, Phone: "+100",
		Address: "1 Main St", City: "Springfield", PostalCode: "12345",
	}, suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(customerrepo.NewGormCustomerRepository(suite.db).Add(context.Background(), c))
	return c
}

func (suite *ReadersIntegrationTestSuite) addOrder(c *customer.Customer, number string) *order.Order {
	address, err := kernel.NewAddress("1 Main St", "Springfield", "12345")
	suite.Require().NoError(err)
	fee := decimal.RequireFromString("3.50")
	o, err := order.NewOrder(order.Spec{
		CustomerID:      c.ID(),
		DeliveryAddress: address,
		DeliveryFee:     &fee,
		Items:           []order.ItemSpec{{ProductName: "Tea", Quantity: 2, UnitPrice: decimal.NewFromInt(5)}},
	}, suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AssignNumber(number))
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.db).Add(context.Background(), o))
	return o
}

func (suite *ReadersIntegrationTestSuite) changeStatus(o *order.Order, next order.Status) {
	repository := orderrepo.NewGormOrderRepository(suite.db)
	loaded, err := repository.Get(context.Background(), o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.ChangeStatus(next, nil, "ops", suite.now))
	suite.Require().NoError(repository.Update(context.Background(), loaded))
}

func (suite *ReadersIntegrationTestSuite) addDeliverer(
	number, email string,
	status *deliverer.Status,
	vehicleType *deliverer.VehicleType,
) *deliverer.Deliverer {
	d, err := deliverer.NewDeliverer(deliverer.Spec{
		FirstName:   "Kim",
		LastName:    "Park",
		Email:       email,
		Phone:       "+200",
		Address:     "5 Elm St",
		City:        "Springfield",
		PostalCode:  "12345",
		Status:      status,
		VehicleType: vehicleType,
	}, suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(d.AssignEmployeeNumber(number))
	suite.Require().NoError(delivererrepo.NewGormDelivererRepository(suite.db).Add(context.Background(), d))
	return d
}

func (suite *ReadersIntegrationTestSuite) addDelivery(number string, orderID int64, delivererID *int64) *delivery.Delivery {
	pickup, err := kernel.NewAddress("Depot 1", "Springfield", "11111")
	suite.Require().NoError(err)
	dropoff, err := kernel.NewAddress("1 Main St", "Springfield", "12345")
	suite.Require().NoError(err)

	spec := delivery.Spec{
		OrderID:     orderID,
		OrderNumber: fmt.Sprintf("ORD-%d", orderID),
		Pickup:      pickup,
		Dropoff:     dropoff,
		DelivererID: delivererID,
	}
	if delivererID != nil {
		assigned := delivery.Assigned
		spec.Status = &assigned
	}
	d, err := delivery.NewDelivery(spec, suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(d.AssignNumber(number))
	suite.Require().NoError(deliveryrepo.NewGormDeliveryRepository(suite.db).Add(context.Background(), d))
	return d
}
