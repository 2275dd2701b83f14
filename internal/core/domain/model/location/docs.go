// Package location models the courier's reference data (regions, sub-regions,
// pickup points) cached in local lookup tables. Records are keyed by the
// courier-assigned numeric id and carry a derived URL-safe slug plus an
// active flag; records that disappear from a sync are deactivated, never
// deleted, to preserve foreign keys from existing orders and parcels.
package location
