// Package locationrepo persists the cached courier reference data: regions,
// sub-regions and pickup points. Records are keyed by the courier's own ids
// and survive syncs through upserts; disappearance from a sync deactivates
// a record instead of deleting it.
package locationrepo

import (
	"shipping/internal/core/domain/model/location"
)

// RegionDTO represents the database structure for a delivery region.
type RegionDTO struct {
	ID     int `gorm:"primaryKey"`
	Name   string
	ZoneID int
	Slug   string `gorm:"index"`
	Active bool   `gorm:"index"`
}

// TableName specifies the database table name for region entities.
func (RegionDTO) TableName() string {
	return "regions"
}

// SubRegionDTO represents the database structure for a delivery sub-region.
type SubRegionDTO struct {
	ID             int `gorm:"primaryKey"`
	RegionID       int `gorm:"index"`
	Name           string
	Slug           string `gorm:"index"`
	Deliverable    bool
	HasPickupPoint bool
	Active         bool `gorm:"index"`
}

// TableName specifies the database table name for sub-region entities.
func (SubRegionDTO) TableName() string {
	return "sub_regions"
}

// PickupPointDTO represents the database structure for a stop-desk pickup point.
type PickupPointDTO struct {
	ID          int `gorm:"primaryKey"`
	RegionID    int `gorm:"index"`
	SubRegionID int `gorm:"index"`
	Name        string
	Address     string
	Slug        string `gorm:"index"`
	Active      bool   `gorm:"index"`
}

// TableName specifies the database table name for pickup-point entities.
func (PickupPointDTO) TableName() string {
	return "pickup_points"
}

func regionFromDomain(region location.Region) RegionDTO {
	return RegionDTO{
		ID:     region.ID,
		Name:   region.Name,
		ZoneID: region.ZoneID,
		Slug:   region.Slug,
		Active: region.Active,
	}
}

func subRegionFromDomain(subRegion location.SubRegion) SubRegionDTO {
	return SubRegionDTO{
		ID:             subRegion.ID,
		RegionID:       subRegion.RegionID,
		Name:           subRegion.Name,
		Slug:           subRegion.Slug,
		Deliverable:    subRegion.Deliverable,
		HasPickupPoint: subRegion.HasPickupPoint,
		Active:         subRegion.Active,
	}
}

func pickupPointFromDomain(point location.PickupPoint) PickupPointDTO {
	return PickupPointDTO{
		ID:          point.ID,
		RegionID:    point.RegionID,
		SubRegionID: point.SubRegionID,
		Name:        point.Name,
		Address:     point.Address,
		Slug:        point.Slug,
		Active:      point.Active,
	}
}
