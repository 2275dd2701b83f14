package commands_test

import (
	"context"
	"io"
	"log/slog"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/location"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllAwaitingDelivery(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) UpsertRegions(ctx context.Context, regions []location.Region) error {
	args := m.Called(ctx, regions)
	return args.Error(0)
}

func (m *MockLocationRepository) DeactivateRegionsNotIn(ctx context.Context, ids []int) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocationRepository) UpsertSubRegions(ctx context.Context, subRegions []location.SubRegion) error {
	args := m.Called(ctx, subRegions)
	return args.Error(0)
}

func (m *MockLocationRepository) DeactivateSubRegionsNotIn(ctx context.Context, ids []int) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocationRepository) UpsertPickupPoints(ctx context.Context, points []location.PickupPoint) error {
	args := m.Called(ctx, points)
	return args.Error(0)
}

func (m *MockLocationRepository) DeactivatePickupPointsNotIn(ctx context.Context, ids []int) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

type MockCourierGateway struct{ mock.Mock }

func (m *MockCourierGateway) CreateParcel(
	ctx context.Context,
	request ports.CreateParcelRequest,
) (ports.CreateParcelResult, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(ports.CreateParcelResult), args.Error(1)
}

func (m *MockCourierGateway) GetParcel(ctx context.Context, tracking string) (ports.ParcelStatusResult, error) {
	args := m.Called(ctx, tracking)
	return args.Get(0).(ports.ParcelStatusResult), args.Error(1)
}

func (m *MockCourierGateway) ListRegions(ctx context.Context) ([]ports.RegionRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.RegionRecord), args.Error(1)
}

func (m *MockCourierGateway) ListSubRegions(ctx context.Context) ([]ports.SubRegionRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.SubRegionRecord), args.Error(1)
}

func (m *MockCourierGateway) ListPickupPoints(ctx context.Context) ([]ports.PickupPointRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.PickupPointRecord), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func testCustomer() order.Customer {
	return order.Customer{
		FirstName:   "Amina",
		LastName:    "Benali",
		Phone:       "0550123456",
		Address:     "12 Rue Didouche Mourad",
		RegionID:    16,
		SubRegionID: 1601,
	}
}
