package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
	ErrReportedAmountIsInvalid = errors.New("reported amount must not be negative")
)

// ConfirmPaymentCommand represents a payment gateway callback reporting a
// settled amount for an order.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	reportedAmountCents int64

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to confirm an order's payment.
// Validates that the order ID is valid and the reported amount is not negative.
func NewConfirmPaymentCommand(orderID kernel.UUID, reportedAmountCents int64) (ConfirmPaymentCommand, error) {
	command := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setReportedAmountCents(reportedAmountCents),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConfirmPaymentCommandIsNotConstructed if validation fails.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being confirmed.
func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ReportedAmountCents returns the settled amount reported by the gateway.
func (c ConfirmPaymentCommand) ReportedAmountCents() int64 {
	return c.reportedAmountCents
}

func (c *ConfirmPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmPaymentCommand) setReportedAmountCents(reportedAmountCents int64) error {
	if reportedAmountCents < 0 {
		return ErrReportedAmountIsInvalid
	}

	c.reportedAmountCents = reportedAmountCents
	return nil
}
