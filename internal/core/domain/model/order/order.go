package order

import (
	"errors"
	"fmt"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrPaymentAmountMismatch is returned when an externally reported payment
	// amount does not match the stored order total within the allowed epsilon.
	// This is a hard error and must never be silently accepted.
	ErrPaymentAmountMismatch = errors.New("reported payment amount does not match order total")

	// ErrPaymentConfirmationNotSupported is returned when payment confirmation
	// is attempted on a cash-on-delivery order, which is settled by the courier.
	ErrPaymentConfirmationNotSupported = errors.New("cash-on-delivery orders have no payment confirmation")
)

// PaymentAmountEpsilonCents is the tolerance used when reconciling an
// externally reported payment amount against the stored order total.
const PaymentAmountEpsilonCents = 5

// Customer is the buyer and shipping destination captured at checkout.
type Customer struct {
	FirstName   string
	LastName    string
	Phone       string
	Address     string
	RegionID    int
	SubRegionID int
}

// Order represents a storefront order. It is the aggregate root that manages
// the order lifecycle from checkout through fulfilment to delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Must have a valid payment method and a non-negative total
//   - Exactly one lifecycle field is authoritative at any time, selected by
//     the payment method: CodStatus for cash-on-delivery orders, Status for
//     everything else. The other field keeps its last-written value but is
//     never read as authoritative.
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id            kernel.UUID
	orderNumber   string
	paymentMethod PaymentMethod
	total         kernel.Money
	customer      Customer
	itemCount     int
	status        Status
	codStatus     CodStatus
	isConstructed bool
}

// NewOrder creates a new Order at checkout time. The order starts in the
// PENDING state on both lifecycle fields.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - orderNumber: Human-readable unique order number, e.g. "ORD-2024-0113"
//   - paymentMethod: How the order is paid (selects the authoritative lifecycle)
//   - total: Order total
//   - customer: Buyer and shipping destination
//   - itemCount: Number of line items in the order (must be positive)
//
// Returns the created order, or a validation error if any parameter is invalid.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	paymentMethod PaymentMethod,
	total kernel.Money,
	customer Customer,
	itemCount int,
) (*Order, error) {
	order := &Order{
		status:        StatusPending,
		codStatus:     CodStatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setPaymentMethod(paymentMethod),
		order.setTotal(total),
		order.setCustomer(customer),
		order.setItemCount(itemCount),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence.
// All fields are validated; use this only with values previously produced by
// a valid Order.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	paymentMethod PaymentMethod,
	total kernel.Money,
	customer Customer,
	itemCount int,
	status Status,
	codStatus CodStatus,
) (*Order, error) {
	order, err := NewOrder(id, orderNumber, paymentMethod, total, customer, itemCount)
	if err != nil {
		return nil, err
	}

	if err := errors.Join(status.Validate(), codStatus.Validate()); err != nil {
		return nil, err
	}

	order.status = status
	order.codStatus = codStatus
	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// PaymentMethod returns how the order is paid.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// Total returns the order total.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Customer returns the buyer and shipping destination.
func (o *Order) Customer() Customer {
	return o.customer
}

// ItemCount returns the number of line items in the order.
func (o *Order) ItemCount() int {
	return o.itemCount
}

// Status returns the generic lifecycle status.
// Authoritative only for non-COD orders; prefer EffectiveStatus.
func (o *Order) Status() Status {
	return o.status
}

// CodStatus returns the courier-facing COD lifecycle status.
// Authoritative only for COD orders; prefer EffectiveStatus.
func (o *Order) CodStatus() CodStatus {
	return o.codStatus
}

// IsCashOnDelivery reports whether the order is paid cash-on-delivery.
func (o *Order) IsCashOnDelivery() bool {
	return o.paymentMethod.IsCashOnDelivery()
}

// EffectiveStatus returns the name of the authoritative lifecycle status,
// selected by the payment method.
func (o *Order) EffectiveStatus() string {
	if o.IsCashOnDelivery() {
		return o.codStatus.String()
	}
	return o.status.String()
}

// IsTerminal reports whether the authoritative lifecycle field has reached a
// final state. Terminal orders are never mutated by the delivery poller.
func (o *Order) IsTerminal() bool {
	if o.IsCashOnDelivery() {
		return o.codStatus.IsTerminal()
	}
	return o.status.IsTerminal()
}

// ApplyStatusUpdate writes a mapped status value into the authoritative
// lifecycle field. The update's lifecycle kind must match the order's payment
// method; a mismatch indicates the mapper was called with the wrong COD flag.
func (o *Order) ApplyStatusUpdate(update StatusUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}

	switch update.Kind() {
	case LifecycleCashOnDelivery:
		if !o.IsCashOnDelivery() {
			return errs.NewValueIsInvalidErrorWithCause("statusUpdate",
				fmt.Errorf("COD status %s applied to %s order", update.Cod(), o.paymentMethod))
		}
		o.codStatus = update.Cod()
	case LifecycleStandard:
		if o.IsCashOnDelivery() {
			return errs.NewValueIsInvalidErrorWithCause("statusUpdate",
				fmt.Errorf("generic status %s applied to COD order", update.Generic()))
		}
		o.status = update.Generic()
	default:
		return errs.NewValueIsInvalidError("statusUpdate")
	}

	return nil
}

// MarkDelivered transitions the authoritative lifecycle field to DELIVERED.
// Used by the delivery poller when the courier reports a delivered state.
// Idempotent: marking an already delivered order is a no-op.
func (o *Order) MarkDelivered() {
	if o.IsCashOnDelivery() {
		o.codStatus = CodStatusDelivered
		return
	}
	o.status = StatusDelivered
}

// ConfirmPayment reconciles an externally reported payment amount against the
// stored total and, on success, moves the order to CONFIRMED.
//
// The stored total must match the reported amount within
// PaymentAmountEpsilonCents; a mismatch returns ErrPaymentAmountMismatch and
// leaves the order untouched. COD orders are settled by the courier and
// return ErrPaymentConfirmationNotSupported.
func (o *Order) ConfirmPayment(reported kernel.Money) error {
	if err := reported.Validate(); err != nil {
		return err
	}

	if o.IsCashOnDelivery() {
		return ErrPaymentConfirmationNotSupported
	}

	if !o.total.MatchesWithin(reported, PaymentAmountEpsilonCents) {
		return fmt.Errorf("%w: stored %d, reported %d",
			ErrPaymentAmountMismatch, o.total.Cents(), reported.Cents())
	}

	o.status = StatusConfirmed
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setPaymentMethod(paymentMethod PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}
	o.paymentMethod = paymentMethod
	return nil
}

func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return err
	}
	o.total = total
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if strings.TrimSpace(customer.Phone) == "" {
		return errs.NewValueIsRequiredError("customer.phone")
	}
	o.customer = customer
	return nil
}

func (o *Order) setItemCount(itemCount int) error {
	if itemCount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("itemCount",
			fmt.Errorf("%d is not greater than 0", itemCount))
	}
	o.itemCount = itemCount
	return nil
}
