package commands

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
)

// ConfirmPaymentCommandHandler reconciles gateway-reported payments against
// stored order totals. The reported amount must match the stored total
// within the order aggregate's epsilon; a mismatch is a hard error and
// leaves the order untouched.
//
// Example:
//
//	handler := NewConfirmPaymentCommandHandler(uowFactory)
//	cmd, _ := NewConfirmPaymentCommand(orderID, 350000)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrPaymentAmountMismatch) {
//	    alertFinanceTeam(orderID, err)
//	}
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmation.
// Requires an OrderUoWFactory for transactional persistence.
func NewConfirmPaymentCommandHandler(uowFactory OrderUoWFactory) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment confirmation command.
// Moves the order to CONFIRMED when the amounts reconcile.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	reported, err := kernel.NewMoney(cmd.ReportedAmountCents())
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

	ordersRepo := uow.OrderRepository()

	target, err := ordersRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = target.ConfirmPayment(reported); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
