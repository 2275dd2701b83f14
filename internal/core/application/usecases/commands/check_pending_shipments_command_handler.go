package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/ports"
)

// defaultPollPause spaces out consecutive courier calls so a polling pass
// stays well under the courier's rate limit.
const defaultPollPause = 500 * time.Millisecond

// CheckPendingShipmentsResult summarizes one polling pass.
type CheckPendingShipmentsResult struct {
	// Checked is the number of orders for which a courier call was attempted.
	Checked int

	// Updated is the number of parcels whose courier status actually changed.
	Updated int

	// Delivered is the number of orders closed out as delivered in this pass.
	Delivered int

	// Errors collects per-order failure descriptions. A failing order never
	// stops the pass; its error lands here and the pass moves on.
	Errors []string
}

// CheckPendingShipmentsCommandHandler runs the delivery polling pass.
// Each order is reconciled in its own transaction, so one failing order
// cannot roll back or block the others. Unchanged courier statuses produce
// no writes at all.
type CheckPendingShipmentsCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.CourierGateway
	logger     *slog.Logger
	pause      func(ctx context.Context)
}

// NewCheckPendingShipmentsCommandHandler creates a handler for delivery polling.
func NewCheckPendingShipmentsCommandHandler(
	uowFactory UoWFactory,
	gateway ports.CourierGateway,
	logger *slog.Logger,
) CheckPendingShipmentsCommandHandler {
	return CheckPendingShipmentsCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		logger:     logger.With("component", "check_pending_shipments"),
		pause:      defaultPause,
	}
}

// WithPause overrides the delay inserted between consecutive courier calls.
func (h CheckPendingShipmentsCommandHandler) WithPause(
	pause func(ctx context.Context),
) CheckPendingShipmentsCommandHandler {
	h.pause = pause
	return h
}

// Handle runs one polling pass over all orders awaiting delivery.
// Returns partial counts together with the context error if the pass is
// interrupted by cancellation.
func (h CheckPendingShipmentsCommandHandler) Handle(
	ctx context.Context,
	cmd CheckPendingShipmentsCommand,
) (CheckPendingShipmentsResult, error) {
	var result CheckPendingShipmentsResult

	if err := cmd.Validate(); err != nil {
		return result, err
	}

	pending, err := h.loadPending(ctx)
	if err != nil {
		return result, err
	}

	for i, target := range pending {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		if i > 0 {
			h.pause(ctx)
		}

		h.checkOrder(ctx, target, &result)
	}

	h.logger.Info("polling pass finished",
		"checked", result.Checked,
		"updated", result.Updated,
		"delivered", result.Delivered,
		"errors", len(result.Errors))

	return result, nil
}

// loadPending reads the poll scan in its own short-lived transaction.
func (h CheckPendingShipmentsCommandHandler) loadPending(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllAwaitingDelivery(ctx)
}

// checkOrder reconciles a single order against the courier inside its own
// transaction. Failures are recorded on the result and never propagated.
func (h CheckPendingShipmentsCommandHandler) checkOrder(
	ctx context.Context,
	target *order.Order,
	result *CheckPendingShipmentsResult,
) {
	orderID := target.ID()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("order %s: %v", orderID, err))
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipment, err := uow.ParcelRepository().GetByOrderID(ctx, orderID)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("order %s: %v", orderID, err))
		return
	}

	tracking := shipment.Tracking()
	if tracking == nil {
		return
	}

	result.Checked++

	status, err := h.gateway.GetParcel(ctx, *tracking)
	if err != nil {
		h.logger.Warn("courier status fetch failed", "order_id", orderID.String(), "error", err)
		result.Errors = append(result.Errors, fmt.Sprintf("order %s: %v", orderID, err))
		return
	}

	if !shipment.RecordCourierStatus(status.Status, time.Now().UTC()) {
		return
	}

	if err = uow.ParcelRepository().Update(ctx, shipment); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("order %s: %v", orderID, err))
		return
	}

	delivered := parcel.IsDeliveredStatus(status.Status)
	if delivered {
		target.MarkDelivered()
		if err = uow.OrderRepository().Update(ctx, target); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("order %s: %v", orderID, err))
			return
		}
	}

	if err = uow.Commit(ctx); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("order %s: %v", orderID, err))
		return
	}

	result.Updated++
	if delivered {
		result.Delivered++
		h.logger.Info("order delivered", "order_id", orderID.String(), "status", status.Status)
	}
}

func defaultPause(ctx context.Context) {
	timer := time.NewTimer(defaultPollPause)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
