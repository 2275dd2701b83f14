package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// There is at most one parcel per order; parcels are never deleted while
// their order exists.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// GetByOrderID retrieves the parcel belonging to the given order.
	// Returns an ObjectNotFoundError if the order has no parcel record.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*parcel.Parcel, error)
}
