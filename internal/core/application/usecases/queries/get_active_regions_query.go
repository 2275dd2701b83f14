package queries

import (
	"errors"

	"shipping/internal/pkg/guard"
)

var ErrGetActiveRegionsQueryIsNotConstructed = errors.New(
	"GetActiveRegionsQuery must be created via NewGetActiveRegionsQuery constructor",
)

// GetActiveRegionsQuery retrieves the active delivery regions together with
// their deliverable sub-regions, as cached from the courier's reference
// data. Checkout forms use this to populate destination selectors.
//
// Example:
//
//	query := NewGetActiveRegionsQuery()
//	regions, err := handler.Handle(ctx, query)
type GetActiveRegionsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveRegionsQuery creates a query to retrieve active regions.
// This is a parameterless query.
func NewGetActiveRegionsQuery() GetActiveRegionsQuery {
	return GetActiveRegionsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveRegionsQueryIsNotConstructed if validation fails.
func (q GetActiveRegionsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveRegionsQueryIsNotConstructed)
}

// SubRegionView is one deliverable sub-region inside a region view.
type SubRegionView struct {
	ID             int
	Name           string
	Slug           string
	HasPickupPoint bool
}

// GetActiveRegionsQueryResponse is one active region with its deliverable
// sub-regions.
type GetActiveRegionsQueryResponse struct {
	ID         int
	Name       string
	Slug       string
	ZoneID     int
	SubRegions []SubRegionView
}
