package ports

import (
	"context"

	"shipping/internal/core/domain/model/location"
)

// LocationRepository defines the persistence contract for the courier's
// cached reference data. Records are upserted by courier-assigned id;
// records absent from the latest sync are deactivated, never deleted, to
// preserve foreign keys from existing orders and parcels.
type LocationRepository interface {
	// UpsertRegions inserts or updates regions keyed by courier id.
	UpsertRegions(ctx context.Context, regions []location.Region) error

	// DeactivateRegionsNotIn marks regions whose id is not in ids as inactive.
	// Returns the number of deactivated rows.
	DeactivateRegionsNotIn(ctx context.Context, ids []int) (int64, error)

	// UpsertSubRegions inserts or updates sub-regions keyed by courier id.
	UpsertSubRegions(ctx context.Context, subRegions []location.SubRegion) error

	// DeactivateSubRegionsNotIn marks sub-regions whose id is not in ids as inactive.
	DeactivateSubRegionsNotIn(ctx context.Context, ids []int) (int64, error)

	// UpsertPickupPoints inserts or updates pickup points keyed by id.
	UpsertPickupPoints(ctx context.Context, points []location.PickupPoint) error

	// DeactivatePickupPointsNotIn marks pickup points whose id is not in ids as inactive.
	DeactivatePickupPointsNotIn(ctx context.Context, ids []int) (int64, error)
}
