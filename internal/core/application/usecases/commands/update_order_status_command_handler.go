package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// UpdateOrderStatusCommandHandler handles operator-driven status changes.
// The requested status name is resolved through the status mapper against
// the order's payment method and written to the authoritative lifecycle
// field only.
//
// When a COD order moves into SUBMITTED or DISPATCHED and its parcel has no
// tracking yet, the handler also submits the parcel to the courier. That
// side effect is best effort: a courier failure is logged and the status
// update still stands. A later transition retries the submission.
type UpdateOrderStatusCommandHandler struct {
	uowFactory        UoWFactory
	gateway           ports.CourierGateway
	mapper            services.StatusMapper
	autoCreateParcels bool
	logger            *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for order status updates.
// autoCreateParcels gates the courier submission side effect; when disabled
// the handler records the intent in the log and performs no courier call.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	gateway ports.CourierGateway,
	autoCreateParcels bool,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:        uowFactory,
		gateway:           gateway,
		mapper:            services.NewStatusMapper(),
		autoCreateParcels: autoCreateParcels,
		logger:            logger.With("component", "update_order_status"),
	}
}

// Handle processes the status update command.
// The order mutation commits in its own transaction before any courier
// interaction, so a courier outage can never lose an operator's change.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	updatedOrder, update, err := h.applyStatus(ctx, cmd)
	if err != nil {
		return err
	}

	if shouldSubmitParcel(updatedOrder, update) {
		h.submitParcel(ctx, updatedOrder)
	}

	return nil
}

func (h UpdateOrderStatusCommandHandler) applyStatus(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, order.StatusUpdate, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.StatusUpdate{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	target, err := ordersRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, order.StatusUpdate{}, err
	}

	update, err := h.mapper.Map(cmd.RequestedStatus(), target.IsCashOnDelivery())
	if err != nil {
		return nil, order.StatusUpdate{}, err
	}

	if err = target.ApplyStatusUpdate(update); err != nil {
		return nil, order.StatusUpdate{}, err
	}

	if err = ordersRepo.Update(ctx, target); err != nil {
		return nil, order.StatusUpdate{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.StatusUpdate{}, err
	}

	return target, update, nil
}

// shouldSubmitParcel reports whether the transition is one that hands the
// shipment over to the courier.
func shouldSubmitParcel(target *order.Order, update order.StatusUpdate) bool {
	if !target.IsCashOnDelivery() || update.Kind() != order.LifecycleCashOnDelivery {
		return false
	}

	cod := update.Cod()
	return cod == order.CodStatusSubmitted || cod == order.CodStatusDispatched
}

// submitParcel performs the best-effort courier submission. Every early
// return is deliberate: a missing parcel, an already assigned tracking code
// or a courier failure must never fail the status update that triggered it.
func (h UpdateOrderStatusCommandHandler) submitParcel(ctx context.Context, target *order.Order) {
	log := h.logger.With("order_id", target.ID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.Error("parcel submission: begin transaction failed", "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelsRepo := uow.ParcelRepository()

	shipment, err := parcelsRepo.GetByOrderID(ctx, target.ID())
	if err != nil {
		log.Warn("parcel submission skipped: no parcel record", "error", err)
		return
	}

	if shipment.HasTracking() {
		return
	}

	if !h.autoCreateParcels {
		log.Info("parcel submission skipped: auto-create disabled",
			"tracking_missing", true)
		return
	}

	request := buildCreateParcelRequest(target, shipment)

	requestBody, err := json.Marshal(request)
	if err != nil {
		log.Error("parcel submission: marshal request failed", "error", err)
		return
	}

	result, err := h.gateway.CreateParcel(ctx, request)
	if err != nil {
		log.Error("parcel submission failed, will retry on next transition", "error", err)
		return
	}

	if err = shipment.AttachTracking(
		result.Tracking,
		result.LabelURL,
		result.Status,
		requestBody,
		result.Raw,
		time.Now().UTC(),
	); err != nil {
		log.Error("parcel submission: attach tracking failed", "error", err)
		return
	}

	if err = parcelsRepo.Update(ctx, shipment); err != nil {
		log.Error("parcel submission: persist failed", "error", err)
		return
	}

	if err = uow.Commit(ctx); err != nil {
		log.Error("parcel submission: commit failed", "error", err)
		return
	}

	log.Info("parcel submitted to courier", "tracking", result.Tracking)
}

// buildCreateParcelRequest converts the stored parcel into the courier's
// creation payload. Dimensions are overridden with the standard shipping
// profile and insurance is always requested, regardless of what the
// placeholder carries.
func buildCreateParcelRequest(target *order.Order, shipment *parcel.Parcel) ports.CreateParcelRequest {
	recipient := shipment.Recipient()

	return ports.CreateParcelRequest{
		OrderNumber: target.OrderNumber(),
		FirstName:   recipient.FirstName,
		LastName:    recipient.LastName,
		Phone:       recipient.Phone,
		Address:     recipient.Address,
		RegionID:    recipient.RegionID,
		SubRegionID: recipient.SubRegionID,
		PriceCents:  shipment.PriceCents(),
		WeightKg:    shipment.WeightKg(),
		LengthCm:    DefaultParcelDimensions.LengthCm,
		WidthCm:     DefaultParcelDimensions.WidthCm,
		HeightCm:    DefaultParcelDimensions.HeightCm,
		Insurance:   true,
		Exchange:    shipment.Exchange(),
		Stopdesk:    shipment.Stopdesk(),
	}
}
