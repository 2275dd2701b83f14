package commands

import (
	"errors"

	"shipping/internal/pkg/guard"
)

var ErrCheckPendingShipmentsCommandIsNotConstructed = errors.New(
	"CheckPendingShipmentsCommand must be created via NewCheckPendingShipmentsCommand constructor",
)

// CheckPendingShipmentsCommand triggers one polling pass over all orders
// that have a tracked parcel and are still awaiting delivery. Each order's
// current courier status is fetched and reconciled into the parcel history;
// orders whose courier reports a delivered state are closed out.
//
// Example:
//
//	cmd := NewCheckPendingShipmentsCommand()
//	handler := NewCheckPendingShipmentsCommandHandler(uowFactory, gateway, logger)
//	result, err := handler.Handle(ctx, cmd)
//	if err == nil {
//	    log.Printf("checked %d, delivered %d", result.Checked, result.Delivered)
//	}
type CheckPendingShipmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewCheckPendingShipmentsCommand creates a new command to trigger a polling pass.
// This is a parameterless command; the set of orders to poll is derived from storage.
func NewCheckPendingShipmentsCommand() CheckPendingShipmentsCommand {
	return CheckPendingShipmentsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrCheckPendingShipmentsCommandIsNotConstructed if validation fails.
func (c *CheckPendingShipmentsCommand) Validate() error {
	return c.guard.Validate(
		ErrCheckPendingShipmentsCommandIsNotConstructed,
	)
}
