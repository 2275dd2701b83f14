package kernel

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// ErrMoneyIsNotConstructed indicates that a Money value was not created via NewMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoney")

// Money is a value object representing a monetary amount in cents.
// Amounts are stored as integer cents to avoid floating point drift in
// totals and payment reconciliation.
//
// The zero value is invalid; use NewMoney.
type Money struct {
	cents int64
	guard ConstructorGuard
}

// NewMoney creates a Money value from an amount in cents.
// Negative amounts are rejected.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d cents is negative", cents))
	}
	return Money{
		cents: cents,
		guard: NewConstructorGuard(),
	}, nil
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// IsEqual compares two Money values for exact equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// MatchesWithin reports whether another amount equals this one within the
// given tolerance in cents. Used for reconciling externally reported payment
// amounts against the stored order total.
func (m Money) MatchesWithin(other Money, epsilonCents int64) bool {
	diff := m.cents - other.cents
	if diff < 0 {
		diff = -diff
	}
	return diff <= epsilonCents
}

// Validate checks that the Money value was properly constructed.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
