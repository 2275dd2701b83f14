package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetActiveRegionsQueryHandler reads the cached courier reference data.
// Only active regions and active, deliverable sub-regions are returned;
// records deactivated by a sync stay in the database but never reach
// checkout.
type GetActiveRegionsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveRegionsQueryHandler creates a handler for active region queries.
// Requires a GORM database connection for query execution.
func NewGetActiveRegionsQueryHandler(db *gorm.DB) GetActiveRegionsQueryHandler {
	return GetActiveRegionsQueryHandler{db: db}
}

// Handle executes the active regions query.
// Regions are sorted by id; sub-regions are attached to their region and
// sorted by id as well. Regions without deliverable sub-regions are still
// returned, with an empty sub-region list.
func (h GetActiveRegionsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveRegionsQuery,
) ([]GetActiveRegionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	regions, index, err := h.loadRegions(ctx)
	if err != nil {
		return nil, err
	}

	if err = h.attachSubRegions(ctx, regions, index); err != nil {
		return nil, err
	}

	return regions, nil
}

func (h GetActiveRegionsQueryHandler) loadRegions(
	ctx context.Context,
) ([]GetActiveRegionsQueryResponse, map[int]int, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, slug, zone_id
		FROM regions
		WHERE active
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	regions := make([]GetActiveRegionsQueryResponse, 0)
	index := make(map[int]int)

	for rows.Next() {
		var region GetActiveRegionsQueryResponse
		if err = rows.Scan(&region.ID, &region.Name, &region.Slug, &region.ZoneID); err != nil {
			return nil, nil, err
		}

		region.SubRegions = make([]SubRegionView, 0)
		index[region.ID] = len(regions)
		regions = append(regions, region)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return regions, index, nil
}

func (h GetActiveRegionsQueryHandler) attachSubRegions(
	ctx context.Context,
	regions []GetActiveRegionsQueryResponse,
	index map[int]int,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, region_id, name, slug, has_pickup_point
		FROM sub_regions
		WHERE active AND deliverable
		ORDER BY id
	`).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var subRegion SubRegionView
		var regionID int
		if err = rows.Scan(
			&subRegion.ID,
			&regionID,
			&subRegion.Name,
			&subRegion.Slug,
			&subRegion.HasPickupPoint,
		); err != nil {
			return err
		}

		// Sub-regions of inactive regions are skipped silently.
		if i, ok := index[regionID]; ok {
			regions[i].SubRegions = append(regions[i].SubRegions, subRegion)
		}
	}

	return rows.Err()
}
