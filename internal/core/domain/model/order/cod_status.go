package order

import (
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"
)

// CodStatus represents the courier-facing lifecycle of a cash-on-delivery
// order. It is the authoritative lifecycle field when the payment method is
// cash-on-delivery; for other payment methods it keeps its last-written value
// but must not be read as authoritative.
//
// Lifecycle:
//
//	Pending ──> Submitted ──> Dispatched ──> Delivered
//	   │            │             │
//	   └────────────┴─────────────┴──> Cancelled / Failed
//
// Delivered, Cancelled and Failed are terminal.
type CodStatus int

const (
	// CodStatusUnknown represents an invalid or undefined COD status.
	CodStatusUnknown CodStatus = iota

	// CodStatusPending is the initial COD status assigned at checkout.
	CodStatusPending

	// CodStatusSubmitted indicates the order was submitted to the courier.
	CodStatusSubmitted

	// CodStatusDispatched indicates the courier dispatched the parcel.
	CodStatusDispatched

	// CodStatusDelivered indicates the parcel reached the customer. Terminal.
	CodStatusDelivered

	// CodStatusCancelled indicates the COD order was cancelled. Terminal.
	CodStatusCancelled

	// CodStatusFailed indicates delivery failed permanently. Terminal.
	CodStatusFailed
)

func getCodStatusStrings() map[CodStatus]string {
	return map[CodStatus]string{
		CodStatusUnknown:    "UNKNOWN",
		CodStatusPending:    "PENDING",
		CodStatusSubmitted:  "SUBMITTED",
		CodStatusDispatched: "DISPATCHED",
		CodStatusDelivered:  "DELIVERED",
		CodStatusCancelled:  "CANCELLED",
		CodStatusFailed:     "FAILED",
	}
}

func getValidCodStatusStrings() map[CodStatus]string {
	//nolint:exhaustive // CodStatusUnknown is intentionally excluded as it's invalid
	return map[CodStatus]string{
		CodStatusPending:    "PENDING",
		CodStatusSubmitted:  "SUBMITTED",
		CodStatusDispatched: "DISPATCHED",
		CodStatusDelivered:  "DELIVERED",
		CodStatusCancelled:  "CANCELLED",
		CodStatusFailed:     "FAILED",
	}
}

// ParseCodStatus converts a COD status name into a CodStatus value.
// Matching is case-insensitive. Returns an error for unrecognized names.
func ParseCodStatus(s string) (CodStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range getValidCodStatusStrings() {
		if name == normalized {
			return status, nil
		}
	}
	return CodStatusUnknown, errs.NewValueIsInvalidErrorWithCause("codStatus",
		fmt.Errorf("%q is not a recognized COD status", s))
}

// Validate checks if the CodStatus value is valid.
func (s CodStatus) Validate() error {
	if _, ok := getValidCodStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("codStatus",
			fmt.Errorf("%d is not a valid COD status", s))
	}
	return nil
}

// String returns the uppercase name of the COD status, e.g. "SUBMITTED".
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (s CodStatus) String() string {
	if str, ok := getCodStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the COD status is a final state.
// Terminal orders are excluded from the delivery poller scan.
func (s CodStatus) IsTerminal() bool {
	return s == CodStatusDelivered || s == CodStatusCancelled || s == CodStatusFailed
}
