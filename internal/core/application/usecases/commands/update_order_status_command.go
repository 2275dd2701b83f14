package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
	ErrStatusIsRequired = errors.New("status is required")
)

// UpdateOrderStatusCommand represents an operator's request to move an order
// to a new lifecycle status. The requested status name may come from either
// status vocabulary; the handler resolves it against the order's payment
// method.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(orderID, "SHIPPED")
//	if err != nil {
//	    return fmt.Errorf("invalid status request: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status update failed: %w", err)
//	}
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	requestedStatus string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to update an order's status.
// The requested status must be a recognized name from either the generic or
// the COD vocabulary (matching is case-insensitive). Returns a validation
// error naming the status field otherwise.
func NewUpdateOrderStatusCommand(orderID kernel.UUID, requestedStatus string) (UpdateOrderStatusCommand, error) {
	command := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setRequestedStatus(requestedStatus),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being updated.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequestedStatus returns the requested status name.
func (c UpdateOrderStatusCommand) RequestedStatus() string {
	return c.requestedStatus
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setRequestedStatus(requestedStatus string) error {
	if requestedStatus == "" {
		return ErrStatusIsRequired
	}

	if !isRecognizedStatusName(requestedStatus) {
		return errs.NewValueIsInvalidError("status")
	}

	c.requestedStatus = requestedStatus
	return nil
}

// isRecognizedStatusName reports whether the name belongs to either status
// vocabulary. Which vocabulary applies to a concrete order is decided later,
// by the status mapper, once the order's payment method is known.
func isRecognizedStatusName(name string) bool {
	if _, err := order.ParseStatus(name); err == nil {
		return true
	}
	if _, err := order.ParseCodStatus(name); err == nil {
		return true
	}
	return false
}
