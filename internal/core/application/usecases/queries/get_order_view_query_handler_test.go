package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/adapters/out/postgres/parcelrepo"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderViewQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderViewQueryHandler
}

func (suite *GetOrderViewQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &parcelrepo.ParcelDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderViewQueryHandler(db)
}

func (suite *GetOrderViewQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderViewQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, parcels").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderViewQueryHandlerTestSuite) TestHandle_CodOrderWithTrackedParcel() {
	savedOrder := suite.saveOrder(order.PaymentMethodCashOnDelivery, order.StatusPending, order.CodStatusDispatched)
	suite.saveTrackedParcel(savedOrder.ID())

	query, err := queries.NewGetOrderViewQuery(savedOrder.ID())
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(savedOrder.ID(), view.ID)
	suite.Equal("ORD-2024-0042", view.OrderNumber)
	suite.Equal("COD", view.PaymentMethod)

	// The COD status wins for COD orders
	suite.Equal("DISPATCHED", view.EffectiveStatus)

	suite.Equal(int64(350000), view.TotalCents)
	suite.Equal(2, view.ItemCount)
	suite.Equal("Amina Benali", view.CustomerName)
	suite.Equal("0550123456", view.CustomerPhone)

	suite.Require().NotNil(view.Tracking)
	suite.Equal("yal-000042", *view.Tracking)
	suite.Require().NotNil(view.LabelURL)
	suite.Equal("https://courier.example/labels/42.pdf", *view.LabelURL)
	suite.Require().NotNil(view.ParcelStatus)
	suite.Equal("pending", *view.ParcelStatus)
}

func (suite *GetOrderViewQueryHandlerTestSuite) TestHandle_CardOrderWithoutParcel() {
	savedOrder := suite.saveOrder(order.PaymentMethodCard, order.StatusShipped, order.CodStatusPending)

	query, err := queries.NewGetOrderViewQuery(savedOrder.ID())
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	// The generic status wins for non-COD orders
	suite.Equal("SHIPPED", view.EffectiveStatus)

	suite.Nil(view.Tracking)
	suite.Nil(view.LabelURL)
	suite.Nil(view.ParcelStatus)
}

func (suite *GetOrderViewQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFoundError() {
	query, err := queries.NewGetOrderViewQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *GetOrderViewQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderViewQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderViewQuery constructor")
}

func (suite *GetOrderViewQueryHandlerTestSuite) saveOrder(
	method order.PaymentMethod, status order.Status, codStatus order.CodStatus,
) *order.Order {
	total, err := kernel.NewMoney(350000)
	suite.Require().NoError(err)

	savedOrder, err := order.RestoreOrder(
		kernel.NewUUID(),
		"ORD-2024-0042",
		method,
		total,
		order.Customer{
			FirstName:   "Amina",
			LastName:    "Benali",
			Phone:       "0550123456",
			Address:     "12 Rue Didouche Mourad",
			RegionID:    16,
			SubRegionID: 1601,
		},
		2,
		status,
		codStatus,
	)
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), savedOrder))
	return savedOrder
}

func (suite *GetOrderViewQueryHandlerTestSuite) saveTrackedParcel(orderID kernel.UUID) {
	trackedParcel, err := parcel.NewParcel(
		kernel.NewUUID(),
		orderID,
		parcel.Recipient{
			FirstName:   "Amina",
			LastName:    "Benali",
			Phone:       "0550123456",
			Address:     "12 Rue Didouche Mourad",
			RegionID:    16,
			SubRegionID: 1601,
		},
		350000,
		1,
		parcel.Dimensions{LengthCm: 30, WidthCm: 20, HeightCm: 10},
		true,
		false,
		false,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(trackedParcel.AttachTracking(
		"yal-000042",
		"https://courier.example/labels/42.pdf",
		"Pending",
		nil,
		nil,
		time.Now().UTC(),
	))

	repo := parcelrepo.NewGormParcelRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), trackedParcel))
}

func TestGetOrderViewQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderViewQueryHandlerTestSuite))
}

// mockAggregateTracker is a no-op tracker for query tests.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}
