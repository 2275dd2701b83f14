package commands

import (
	"errors"

	"shipping/internal/pkg/guard"
)

var ErrSyncLocationsCommandIsNotConstructed = errors.New(
	"SyncLocationsCommand must be created via NewSyncLocationsCommand constructor",
)

// SyncLocationsCommand triggers a full refresh of the courier's reference
// data: regions, sub-regions and pickup points. Records absent from the
// courier's latest answer are deactivated, never deleted.
//
// Example:
//
//	cmd := NewSyncLocationsCommand()
//	handler := NewSyncLocationsCommandHandler(gateway, locationRepo, logger)
//	result, err := handler.Handle(ctx, cmd)
type SyncLocationsCommand struct {
	guard guard.ConstructorGuard
}

// NewSyncLocationsCommand creates a new command to trigger a reference-data sync.
func NewSyncLocationsCommand() SyncLocationsCommand {
	return SyncLocationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSyncLocationsCommandIsNotConstructed if validation fails.
func (c *SyncLocationsCommand) Validate() error {
	return c.guard.Validate(
		ErrSyncLocationsCommandIsNotConstructed,
	)
}
