package locationrepo

import (
	"context"

	"shipping/internal/core/domain/model/location"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertBatchSize bounds the number of rows per insert statement.
const upsertBatchSize = 200

// GormLocationRepository implements LocationRepository using GORM.
// Upserts use INSERT ... ON CONFLICT keyed by the courier-assigned id.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM location repository.
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// UpsertRegions inserts or updates regions keyed by courier id.
func (r *GormLocationRepository) UpsertRegions(ctx context.Context, regions []location.Region) error {
	if len(regions) == 0 {
		return nil
	}

	dtos := make([]RegionDTO, 0, len(regions))
	for _, region := range regions {
		dtos = append(dtos, regionFromDomain(region))
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		CreateInBatches(dtos, upsertBatchSize).Error
}

// DeactivateRegionsNotIn marks regions absent from the latest sync as inactive.
func (r *GormLocationRepository) DeactivateRegionsNotIn(ctx context.Context, ids []int) (int64, error) {
	query := r.db.WithContext(ctx).Model(&RegionDTO{}).Where("active")
	if len(ids) > 0 {
		query = query.Where("id NOT IN ?", ids)
	}

	result := query.Update("active", false)
	return result.RowsAffected, result.Error
}

// UpsertSubRegions inserts or updates sub-regions keyed by courier id.
func (r *GormLocationRepository) UpsertSubRegions(ctx context.Context, subRegions []location.SubRegion) error {
	if len(subRegions) == 0 {
		return nil
	}

	dtos := make([]SubRegionDTO, 0, len(subRegions))
	for _, subRegion := range subRegions {
		dtos = append(dtos, subRegionFromDomain(subRegion))
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		CreateInBatches(dtos, upsertBatchSize).Error
}

// DeactivateSubRegionsNotIn marks sub-regions absent from the latest sync as inactive.
func (r *GormLocationRepository) DeactivateSubRegionsNotIn(ctx context.Context, ids []int) (int64, error) {
	query := r.db.WithContext(ctx).Model(&SubRegionDTO{}).Where("active")
	if len(ids) > 0 {
		query = query.Where("id NOT IN ?", ids)
	}

	result := query.Update("active", false)
	return result.RowsAffected, result.Error
}

// UpsertPickupPoints inserts or updates pickup points keyed by id.
// Synthetic ids derived from sub-regions share the table with courier ids;
// the derivation offset keeps the two ranges from colliding.
func (r *GormLocationRepository) UpsertPickupPoints(ctx context.Context, points []location.PickupPoint) error {
	if len(points) == 0 {
		return nil
	}

	dtos := make([]PickupPointDTO, 0, len(points))
	for _, point := range points {
		dtos = append(dtos, pickupPointFromDomain(point))
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		CreateInBatches(dtos, upsertBatchSize).Error
}

// DeactivatePickupPointsNotIn marks pickup points absent from the latest sync as inactive.
func (r *GormLocationRepository) DeactivatePickupPointsNotIn(ctx context.Context, ids []int) (int64, error) {
	query := r.db.WithContext(ctx).Model(&PickupPointDTO{}).Where("active")
	if len(ids) > 0 {
		query = query.Where("id NOT IN ?", ids)
	}

	result := query.Update("active", false)
	return result.RowsAffected, result.Error
}
