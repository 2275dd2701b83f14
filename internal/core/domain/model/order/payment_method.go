package order

import (
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"
)

// PaymentMethod identifies how an order is paid. The payment method selects
// which lifecycle field is authoritative for the order: cash-on-delivery
// orders track CodStatus, everything else tracks the generic Status.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodCashOnDelivery is paid in cash to the courier on delivery.
	PaymentMethodCashOnDelivery

	// PaymentMethodCard is paid online via a card gateway.
	PaymentMethodCard

	// PaymentMethodBankTransfer is paid via manual bank transfer.
	PaymentMethodBankTransfer
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown:        "UNKNOWN",
		PaymentMethodCashOnDelivery: "COD",
		PaymentMethodCard:           "CARD",
		PaymentMethodBankTransfer:   "BANK_TRANSFER",
	}
}

func getValidPaymentMethodStrings() map[PaymentMethod]string {
	//nolint:exhaustive // PaymentMethodUnknown is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		PaymentMethodCashOnDelivery: "COD",
		PaymentMethodCard:           "CARD",
		PaymentMethodBankTransfer:   "BANK_TRANSFER",
	}
}

// ParsePaymentMethod converts a payment method name into a PaymentMethod value.
// Matching is case-insensitive. Returns an error for unrecognized names.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for method, name := range getValidPaymentMethodStrings() {
		if name == normalized {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a recognized payment method", s))
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if _, ok := getValidPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the uppercase name of the payment method, e.g. "COD".
// Returns "UNKNOWN" for invalid values. Implements fmt.Stringer.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsCashOnDelivery reports whether the method is cash-on-delivery.
func (m PaymentMethod) IsCashOnDelivery() bool {
	return m == PaymentMethodCashOnDelivery
}
