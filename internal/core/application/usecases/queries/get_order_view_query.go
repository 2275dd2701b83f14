// Package queries contains read-only operations for retrieving system state.
// Implements the Query pattern for the read side of the CQRS architecture.
// Query handlers bypass the domain model and read projections straight from
// the database.
package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetOrderViewQueryIsNotConstructed = errors.New(
	"GetOrderViewQuery must be created via NewGetOrderViewQuery constructor",
)

// GetOrderViewQuery retrieves the admin view of a single order: the order
// row joined with its parcel, with the authoritative lifecycle status
// already resolved.
//
// Example:
//
//	query, err := NewGetOrderViewQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load order view: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", view.OrderNumber, view.EffectiveStatus)
type GetOrderViewQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderViewQuery creates a query to load one order's admin view.
func NewGetOrderViewQuery(orderID kernel.UUID) (GetOrderViewQuery, error) {
	query := GetOrderViewQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderViewQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderViewQueryIsNotConstructed if validation fails.
func (q GetOrderViewQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderViewQueryIsNotConstructed)
}

// OrderID returns the identifier of the order being viewed.
func (q GetOrderViewQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderViewQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// GetOrderViewQueryResponse is the admin view of one order.
// Parcel fields are nil when the order has no parcel record (non-COD orders
// that were never shipped through the courier).
type GetOrderViewQueryResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	PaymentMethod   string
	EffectiveStatus string
	TotalCents      int64
	ItemCount       int
	CustomerName    string
	CustomerPhone   string
	Tracking        *string
	LabelURL        *string
	ParcelStatus    *string
}
