package services

import (
	"strings"

	"shipping/internal/core/domain/model/order"
)

// StatusMapper translates a requested order status into the value persisted
// on the order's authoritative lifecycle field.
//
// For cash-on-delivery orders the requested generic status is mapped onto the
// courier-facing COD lifecycle; the mapping is total and defaults to PENDING
// for unrecognized input. For all other orders the requested status passes
// through unchanged onto the generic lifecycle.
//
// The mapper is pure and deterministic: same input always yields the same
// output, with no side effects.
type StatusMapper struct{}

// NewStatusMapper creates a StatusMapper.
func NewStatusMapper() StatusMapper {
	return StatusMapper{}
}

// Map resolves the requested status name into a StatusUpdate targeting the
// correct lifecycle field.
//
// COD mapping table:
//
//	PENDING    -> PENDING
//	CONFIRMED  -> SUBMITTED
//	SHIPPED    -> DISPATCHED
//	DELIVERED  -> DELIVERED
//	CANCELLED  -> CANCELLED
//	REFUNDED   -> CANCELLED
//	SUBMITTED  -> SUBMITTED
//	DISPATCHED -> DISPATCHED
//	FAILED     -> FAILED
//	(other)    -> PENDING
//
// For non-COD orders the requested name must be a recognized generic status;
// an unrecognized name is a validation error.
func (m StatusMapper) Map(requested string, isCOD bool) (order.StatusUpdate, error) {
	if isCOD {
		return order.NewCodStatusUpdate(m.mapToCodStatus(requested))
	}

	status, err := order.ParseStatus(requested)
	if err != nil {
		return order.StatusUpdate{}, err
	}
	return order.NewStandardStatusUpdate(status)
}

func (m StatusMapper) mapToCodStatus(requested string) order.CodStatus {
	switch strings.ToUpper(strings.TrimSpace(requested)) {
	case "PENDING":
		return order.CodStatusPending
	case "CONFIRMED", "SUBMITTED":
		return order.CodStatusSubmitted
	case "SHIPPED", "DISPATCHED":
		return order.CodStatusDispatched
	case "DELIVERED":
		return order.CodStatusDelivered
	case "CANCELLED", "REFUNDED":
		return order.CodStatusCancelled
	case "FAILED":
		return order.CodStatusFailed
	default:
		return order.CodStatusPending
	}
}
