package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllAwaitingDelivery retrieves orders whose parcel has a tracking
	// code and whose authoritative lifecycle field is still open: COD orders
	// with codStatus in {PENDING, SUBMITTED, DISPATCHED}, other orders with
	// status in {PENDING, CONFIRMED, SHIPPED}. Terminal orders are excluded
	// by the query itself, so the delivery poller never touches them.
	GetAllAwaitingDelivery(ctx context.Context) ([]*order.Order, error)
}
