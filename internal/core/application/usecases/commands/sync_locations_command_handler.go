package commands

import (
	"context"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/location"
	"shipping/internal/core/ports"
)

// SyncLocationsResult summarizes one reference-data sync.
type SyncLocationsResult struct {
	// Regions, SubRegions and PickupPoints are the counts of records
	// upserted from the courier's latest answer.
	Regions      int
	SubRegions   int
	PickupPoints int

	// Deactivated is the total number of records of all three kinds that
	// disappeared from the courier's answer and were marked inactive.
	Deactivated int64

	// DerivedPickupPoints reports whether the pickup points were synthesized
	// from sub-region flags because the courier's center list came back empty.
	DerivedPickupPoints bool
}

// SyncLocationsCommandHandler refreshes the cached courier reference data.
// The three record kinds are synced in dependency order: regions first,
// then sub-regions, then pickup points. A failure on any kind aborts the
// sync; the kinds already synced keep their fresh data.
type SyncLocationsCommandHandler struct {
	gateway      ports.CourierGateway
	locationRepo ports.LocationRepository
	logger       *slog.Logger
}

// NewSyncLocationsCommandHandler creates a handler for reference-data syncs.
func NewSyncLocationsCommandHandler(
	gateway ports.CourierGateway,
	locationRepo ports.LocationRepository,
	logger *slog.Logger,
) SyncLocationsCommandHandler {
	return SyncLocationsCommandHandler{
		gateway:      gateway,
		locationRepo: locationRepo,
		logger:       logger.With("component", "sync_locations"),
	}
}

// Handle runs one full reference-data sync.
// When the courier returns no pickup-point centers, synthetic pickup points
// are derived from sub-regions flagged as having one, so checkout can still
// offer stop-desk delivery.
func (h SyncLocationsCommandHandler) Handle(ctx context.Context, cmd SyncLocationsCommand) (SyncLocationsResult, error) {
	var result SyncLocationsResult

	if err := cmd.Validate(); err != nil {
		return result, err
	}

	if err := h.syncRegions(ctx, &result); err != nil {
		return result, fmt.Errorf("sync regions: %w", err)
	}

	subRegions, err := h.syncSubRegions(ctx, &result)
	if err != nil {
		return result, fmt.Errorf("sync sub-regions: %w", err)
	}

	if err := h.syncPickupPoints(ctx, subRegions, &result); err != nil {
		return result, fmt.Errorf("sync pickup points: %w", err)
	}

	h.logger.Info("reference data synced",
		"regions", result.Regions,
		"sub_regions", result.SubRegions,
		"pickup_points", result.PickupPoints,
		"deactivated", result.Deactivated,
		"derived_pickup_points", result.DerivedPickupPoints)

	return result, nil
}

func (h SyncLocationsCommandHandler) syncRegions(ctx context.Context, result *SyncLocationsResult) error {
	records, err := h.gateway.ListRegions(ctx)
	if err != nil {
		return err
	}

	regions := make([]location.Region, 0, len(records))
	ids := make([]int, 0, len(records))
	for _, record := range records {
		regions = append(regions, location.NewRegion(record.ID, record.Name, record.ZoneID))
		ids = append(ids, record.ID)
	}

	if err = h.locationRepo.UpsertRegions(ctx, regions); err != nil {
		return err
	}

	deactivated, err := h.locationRepo.DeactivateRegionsNotIn(ctx, ids)
	if err != nil {
		return err
	}

	result.Regions = len(regions)
	result.Deactivated += deactivated
	return nil
}

func (h SyncLocationsCommandHandler) syncSubRegions(
	ctx context.Context,
	result *SyncLocationsResult,
) ([]location.SubRegion, error) {
	records, err := h.gateway.ListSubRegions(ctx)
	if err != nil {
		return nil, err
	}

	subRegions := make([]location.SubRegion, 0, len(records))
	ids := make([]int, 0, len(records))
	for _, record := range records {
		subRegions = append(subRegions, location.NewSubRegion(
			record.ID,
			record.RegionID,
			record.Name,
			record.Deliverable,
			record.HasPickupPoint,
		))
		ids = append(ids, record.ID)
	}

	if err = h.locationRepo.UpsertSubRegions(ctx, subRegions); err != nil {
		return nil, err
	}

	deactivated, err := h.locationRepo.DeactivateSubRegionsNotIn(ctx, ids)
	if err != nil {
		return nil, err
	}

	result.SubRegions = len(subRegions)
	result.Deactivated += deactivated
	return subRegions, nil
}

func (h SyncLocationsCommandHandler) syncPickupPoints(
	ctx context.Context,
	subRegions []location.SubRegion,
	result *SyncLocationsResult,
) error {
	records, err := h.gateway.ListPickupPoints(ctx)
	if err != nil {
		return err
	}

	var points []location.PickupPoint
	if len(records) == 0 {
		points = location.DerivePickupPoints(subRegions)
		result.DerivedPickupPoints = true
	} else {
		points = make([]location.PickupPoint, 0, len(records))
		for _, record := range records {
			points = append(points, location.NewPickupPoint(
				record.ID,
				record.RegionID,
				record.SubRegionID,
				record.Name,
				record.Address,
			))
		}
	}

	ids := make([]int, 0, len(points))
	for _, point := range points {
		ids = append(ids, point.ID)
	}

	if err = h.locationRepo.UpsertPickupPoints(ctx, points); err != nil {
		return err
	}

	deactivated, err := h.locationRepo.DeactivatePickupPointsNotIn(ctx, ids)
	if err != nil {
		return err
	}

	result.PickupPoints = len(points)
	result.Deactivated += deactivated
	return nil
}
