package commands_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoredOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()
	total, err := kernel.NewMoney(350000)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-2024-0042", method, total, testCustomer(), 3)
	require.NoError(t, err)
	return o
}

func newPlaceholderParcel(t *testing.T, orderID kernel.UUID) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(
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
		350000, 1, parcel.Dimensions{LengthCm: 30, WidthCm: 20, HeightCm: 10},
		true, false, false,
	)
	require.NoError(t, err)
	return p
}

func newTrackedParcel(t *testing.T, orderID kernel.UUID) *parcel.Parcel {
	t.Helper()
	p := newPlaceholderParcel(t, orderID)
	err := p.AttachTracking("yal-000042", "https://courier.example/labels/42.pdf",
		"pending", []byte(`{}`), []byte(`{}`), time.Now().UTC())
	require.NoError(t, err)
	return p
}

func TestUpdateOrderStatusCommandHandler_Handle_CardOrder(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.PaymentMethodCard)
	cmd, _ := commands.NewUpdateOrderStatusCommand(stored.ID(), "SHIPPED")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockCourierGateway)
	h := commands.NewUpdateOrderStatusCommandHandler(factory, gateway, true, discardLogger())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.StatusShipped, stored.Status())
	gateway.AssertNotCalled(t, "CreateParcel", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_CodOrderSubmitsParcel(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.PaymentMethodCashOnDelivery)
	placeholder := newPlaceholderParcel(t, stored.ID())
	cmd, _ := commands.NewUpdateOrderStatusCommand(stored.ID(), "CONFIRMED")

	orderRepo := new(MockOrderRepository)
	statusUoW := new(MockUoW)
	mock.InOrder(
		statusUoW.On("Begin", ctx).Return(nil).Once(),
		statusUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		statusUoW.On("Commit", ctx).Return(nil).Once(),
		statusUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	gateway := new(MockCourierGateway)
	var sentRequest ports.CreateParcelRequest
	gateway.On("CreateParcel", mock.Anything, mock.AnythingOfType("ports.CreateParcelRequest")).
		Run(func(args mock.Arguments) {
			sentRequest = args.Get(1).(ports.CreateParcelRequest)
		}).
		Return(ports.CreateParcelResult{
			Tracking: "yal-000042",
			LabelURL: "https://courier.example/labels/42.pdf",
			Status:   "Pending",
			Raw:      json.RawMessage(`{"success":true}`),
		}, nil).Once()

	parcelRepo := new(MockParcelRepository)
	parcelUoW := new(MockUoW)
	mock.InOrder(
		parcelUoW.On("Begin", ctx).Return(nil).Once(),
		parcelUoW.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("GetByOrderID", mock.Anything, stored.ID()).Return(placeholder, nil).Once(),
		parcelRepo.On("Update", mock.Anything, placeholder).Return(nil).Once(),
		parcelUoW.On("Commit", ctx).Return(nil).Once(),
		parcelUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(statusUoW).Once()
	factory.On("Create").Return(parcelUoW).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, gateway, true, discardLogger())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.CodStatusSubmitted, stored.CodStatus())
	assert.True(t, placeholder.HasTracking())
	assert.Equal(t, "yal-000042", *placeholder.Tracking())
	require.NotNil(t, placeholder.Audit())
	assert.Equal(t, json.RawMessage(`{"success":true}`), json.RawMessage(placeholder.Audit().Response))

	assert.Equal(t, "ORD-2024-0042", sentRequest.OrderNumber)
	assert.True(t, sentRequest.Insurance)
	assert.Equal(t, commands.DefaultParcelDimensions.LengthCm, sentRequest.LengthCm)
	gateway.AssertExpectations(t)
	parcelRepo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_AutoCreateDisabled(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.PaymentMethodCashOnDelivery)
	placeholder := newPlaceholderParcel(t, stored.ID())
	cmd, _ := commands.NewUpdateOrderStatusCommand(stored.ID(), "SHIPPED")

	orderRepo := new(MockOrderRepository)
	statusUoW := new(MockUoW)
	mock.InOrder(
		statusUoW.On("Begin", ctx).Return(nil).Once(),
		statusUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		statusUoW.On("Commit", ctx).Return(nil).Once(),
		statusUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	parcelRepo := new(MockParcelRepository)
	parcelUoW := new(MockUoW)
	mock.InOrder(
		parcelUoW.On("Begin", ctx).Return(nil).Once(),
		parcelUoW.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("GetByOrderID", mock.Anything, stored.ID()).Return(placeholder, nil).Once(),
		parcelUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(statusUoW).Once()
	factory.On("Create").Return(parcelUoW).Once()

	gateway := new(MockCourierGateway)
	h := commands.NewUpdateOrderStatusCommandHandler(factory, gateway, false, discardLogger())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.CodStatusDispatched, stored.CodStatus())
	assert.False(t, placeholder.HasTracking())
	gateway.AssertNotCalled(t, "CreateParcel", mock.Anything, mock.Anything)
	parcelRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_CourierFailureKeepsStatusUpdate(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.PaymentMethodCashOnDelivery)
	placeholder := newPlaceholderParcel(t, stored.ID())
	cmd, _ := commands.NewUpdateOrderStatusCommand(stored.ID(), "CONFIRMED")

	orderRepo := new(MockOrderRepository)
	statusUoW := new(MockUoW)
	mock.InOrder(
		statusUoW.On("Begin", ctx).Return(nil).Once(),
		statusUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		statusUoW.On("Commit", ctx).Return(nil).Once(),
		statusUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	gateway := new(MockCourierGateway)
	gateway.On("CreateParcel", mock.Anything, mock.AnythingOfType("ports.CreateParcelRequest")).
		Return(ports.CreateParcelResult{}, errors.New("courier unavailable")).Once()

	parcelRepo := new(MockParcelRepository)
	parcelUoW := new(MockUoW)
	mock.InOrder(
		parcelUoW.On("Begin", ctx).Return(nil).Once(),
		parcelUoW.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("GetByOrderID", mock.Anything, stored.ID()).Return(placeholder, nil).Once(),
		parcelUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(statusUoW).Once()
	factory.On("Create").Return(parcelUoW).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, gateway, true, discardLogger())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.CodStatusSubmitted, stored.CodStatus())
	assert.False(t, placeholder.HasTracking())
	parcelRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_TrackingAlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.PaymentMethodCashOnDelivery)
	tracked := newTrackedParcel(t, stored.ID())
	cmd, _ := commands.NewUpdateOrderStatusCommand(stored.ID(), "DISPATCHED")

	orderRepo := new(MockOrderRepository)
	statusUoW := new(MockUoW)
	mock.InOrder(
		statusUoW.On("Begin", ctx).Return(nil).Once(),
		statusUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		statusUoW.On("Commit", ctx).Return(nil).Once(),
		statusUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	parcelRepo := new(MockParcelRepository)
	parcelUoW := new(MockUoW)
	mock.InOrder(
		parcelUoW.On("Begin", ctx).Return(nil).Once(),
		parcelUoW.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("GetByOrderID", mock.Anything, stored.ID()).Return(tracked, nil).Once(),
		parcelUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(statusUoW).Once()
	factory.On("Create").Return(parcelUoW).Once()

	gateway := new(MockCourierGateway)
	h := commands.NewUpdateOrderStatusCommandHandler(factory, gateway, true, discardLogger())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, "yal-000042", *tracked.Tracking())
	gateway.AssertNotCalled(t, "CreateParcel", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_CodOnlyStatusOnCardOrder(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.PaymentMethodCard)
	cmd, _ := commands.NewUpdateOrderStatusCommand(stored.ID(), "DISPATCHED")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockCourierGateway)
	h := commands.NewUpdateOrderStatusCommandHandler(factory, gateway, true, discardLogger())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, order.StatusPending, stored.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewUpdateOrderStatusCommand(id, "SHIPPED")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).
			Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockCourierGateway)
	h := commands.NewUpdateOrderStatusCommandHandler(factory, gateway, true, discardLogger())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
