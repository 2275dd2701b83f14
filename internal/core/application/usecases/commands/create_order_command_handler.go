package commands

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/parcel"
)

// DefaultParcelWeightKg is used for cash-on-delivery placeholder parcels
// when checkout does not declare a shipment weight.
const DefaultParcelWeightKg = 1

// DefaultParcelDimensions is the standard shipping profile applied to
// parcels created by this service. The storefront sells items of roughly
// uniform size, so per-order dimensions are not collected.
var DefaultParcelDimensions = parcel.Dimensions{LengthCm: 30, WidthCm: 20, HeightCm: 10}

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates the order in PENDING status and, for cash-on-delivery orders, a
// placeholder parcel that will be submitted to the courier once the order
// is confirmed by an operator.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(orderID, "ORD-2024-0113",
//	    order.PaymentMethodCashOnDelivery, 350000, customer, 3, 2)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a UoWFactory because COD orders persist both the order and its
// placeholder parcel in one transaction.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
/// The order and, for COD, its placeholder parcel are persisted atomically:
// either both records exist afterwards or neither does.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	total, err := kernel.NewMoney(cmd.TotalCents())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.OrderNumber(),
		cmd.PaymentMethod(),
		total,
		cmd.Customer(),
		cmd.ItemCount(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if newOrder.IsCashOnDelivery() {
		placeholder, err := h.buildPlaceholderParcel(cmd)
		if err != nil {
			return err
		}

		if err = uow.ParcelRepository().Add(ctx, placeholder); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func (h CreateOrderCommandHandler) buildPlaceholderParcel(cmd CreateOrderCommand) (*parcel.Parcel, error) {
	customer := cmd.Customer()

	weightKg := cmd.WeightKg()
	if weightKg == 0 {
		weightKg = DefaultParcelWeightKg
	}

	return parcel.NewParcel(
		kernel.NewUUID(),
		cmd.OrderID(),
		parcel.Recipient{
			FirstName:   customer.FirstName,
			LastName:    customer.LastName,
			Phone:       customer.Phone,
			Address:     customer.Address,
			RegionID:    customer.RegionID,
			SubRegionID: customer.SubRegionID,
		},
		cmd.TotalCents(),
		weightKg,
		DefaultParcelDimensions,
		true,
		false,
		false,
	)
}
