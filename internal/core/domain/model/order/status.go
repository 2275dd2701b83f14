package order

import (
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"
)

// Status represents the generic lifecycle state of an order.
// It is the authoritative lifecycle field for every payment method except
// cash-on-delivery, which tracks the courier-facing CodStatus instead.
//
// Lifecycle:
//
//	Pending ──> Confirmed ──> Shipped ──> Delivered
//	   │            │            │
//	   └────────────┴────────────┴──> Cancelled / Refunded
//
// Delivered, Cancelled and Refunded are terminal: once reached, neither the
// admin workflow nor the delivery poller moves the order again.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status assigned at checkout.
	StatusPending

	// StatusConfirmed indicates the order has been confirmed for fulfilment.
	StatusConfirmed

	// StatusShipped indicates the order has been handed to a courier.
	StatusShipped

	// StatusDelivered indicates the order reached the customer. Terminal.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled. Terminal.
	StatusCancelled

	// StatusRefunded indicates the order was refunded after payment. Terminal.
	StatusRefunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "UNKNOWN",
		StatusPending:   "PENDING",
		StatusConfirmed: "CONFIRMED",
		StatusShipped:   "SHIPPED",
		StatusDelivered: "DELIVERED",
		StatusCancelled: "CANCELLED",
		StatusRefunded:  "REFUNDED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "PENDING",
		StatusConfirmed: "CONFIRMED",
		StatusShipped:   "SHIPPED",
		StatusDelivered: "DELIVERED",
		StatusCancelled: "CANCELLED",
		StatusRefunded:  "REFUNDED",
	}
}

// ParseStatus converts a status name into a Status value.
// Matching is case-insensitive. Returns an error for unrecognized names.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range getValidStatusStrings() {
		if name == normalized {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a recognized order status", s))
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the uppercase name of the status, e.g. "PENDING".
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status is a final state.
// Terminal orders are excluded from the delivery poller scan.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}
