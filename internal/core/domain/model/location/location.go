package location

import (
	"fmt"

	"github.com/gosimple/slug"
)

// SyntheticPickupPointIDOffset is added to a sub-region id when deriving a
// synthetic pickup point, keeping derived ids clear of courier-assigned
// center ids.
const SyntheticPickupPointIDOffset = 1_000_000

// Region is a top-level courier delivery zone (wilaya), cached locally from
// the courier's reference data. Keyed by the courier-assigned numeric id.
type Region struct {
	ID     int
	Name   string
	ZoneID int
	Slug   string
	Active bool
}

// SubRegion is a delivery municipality (commune) within a region.
type SubRegion struct {
	ID             int
	RegionID       int
	Name           string
	Slug           string
	Deliverable    bool
	HasPickupPoint bool
	Active         bool
}

// PickupPoint is a courier collection desk (stop desk) where customers pick
// up parcels instead of receiving a home delivery.
type PickupPoint struct {
	ID          int
	RegionID    int
	SubRegionID int
	Name        string
	Address     string
	Slug        string
	Active      bool
}

// NewRegion builds an active Region with a derived URL-safe slug.
func NewRegion(id int, name string, zoneID int) Region {
	return Region{
		ID:     id,
		Name:   name,
		ZoneID: zoneID,
		Slug:   slug.Make(name),
		Active: true,
	}
}

// NewSubRegion builds an active SubRegion. The parent region id is appended
// to the slug because commune names repeat across regions.
func NewSubRegion(id, regionID int, name string, deliverable, hasPickupPoint bool) SubRegion {
	return SubRegion{
		ID:             id,
		RegionID:       regionID,
		Name:           name,
		Slug:           fmt.Sprintf("%s-%d", slug.Make(name), regionID),
		Deliverable:    deliverable,
		HasPickupPoint: hasPickupPoint,
		Active:         true,
	}
}

// NewPickupPoint builds an active PickupPoint. The sub-region id is appended
// to the slug because desk names repeat across communes.
func NewPickupPoint(id, regionID, subRegionID int, name, address string) PickupPoint {
	return PickupPoint{
		ID:          id,
		RegionID:    regionID,
		SubRegionID: subRegionID,
		Name:        name,
		Address:     address,
		Slug:        fmt.Sprintf("%s-%d", slug.Make(name), subRegionID),
		Active:      true,
	}
}

// DerivePickupPoints synthesizes pickup points from sub-regions flagged as
// hosting a stop desk. Used as a fallback when the courier's centers endpoint
// returns nothing. Derived ids are offset by SyntheticPickupPointIDOffset.
func DerivePickupPoints(subRegions []SubRegion) []PickupPoint {
	points := make([]PickupPoint, 0, len(subRegions))
	for _, sr := range subRegions {
		if !sr.HasPickupPoint {
			continue
		}
		points = append(points, NewPickupPoint(
			SyntheticPickupPointIDOffset+sr.ID,
			sr.RegionID,
			sr.ID,
			fmt.Sprintf("Stop desk %s", sr.Name),
			"",
		))
	}
	return points
}
