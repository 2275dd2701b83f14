package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
	ErrTotalIsInvalid        = errors.New("total must not be negative")
	ErrItemCountIsInvalid    = errors.New("item count must be greater than 0")
	ErrWeightIsInvalid       = errors.New("weight must not be negative")
)

// CreateOrderCommand represents a checkout request to register a new order.
// Carries the buyer, the shipping destination and the order totals. For
// cash-on-delivery orders the handler also creates a placeholder shipment
// record that is later submitted to the courier.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "ORD-2024-0113", order.PaymentMethodCashOnDelivery,
//	    350000, customer, 3, 2)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	orderNumber   string
	paymentMethod order.PaymentMethod
	totalCents    int64
	customer      order.Customer
	itemCount     int
	weightKg      int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID and payment method are valid, the order number
// is not empty, the total and weight are not negative and the item count is
// positive. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderNumber string,
	paymentMethod order.PaymentMethod,
	totalCents int64,
	customer order.Customer,
	itemCount int,
	weightKg int,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		customer: customer,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setOrderNumber(orderNumber),
		orderCommand.setPaymentMethod(paymentMethod),
		orderCommand.setTotalCents(totalCents),
		orderCommand.setItemCount(itemCount),
		orderCommand.setWeightKg(weightKg),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNumber returns the human-readable order number.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// PaymentMethod returns how the order is paid.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// TotalCents returns the order total in cents.
func (c CreateOrderCommand) TotalCents() int64 {
	return c.totalCents
}

// Customer returns the buyer and shipping destination.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// ItemCount returns the number of line items in the order.
func (c CreateOrderCommand) ItemCount() int {
	return c.itemCount
}

// WeightKg returns the declared shipment weight in kilograms.
// Zero means "not declared"; the handler falls back to a default.
func (c CreateOrderCommand) WeightKg() int {
	return c.weightKg
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}

	c.paymentMethod = paymentMethod
	return nil
}

func (c *CreateOrderCommand) setTotalCents(totalCents int64) error {
	if totalCents < 0 {
		return ErrTotalIsInvalid
	}

	c.totalCents = totalCents
	return nil
}

func (c *CreateOrderCommand) setItemCount(itemCount int) error {
	if itemCount <= 0 {
		return ErrItemCountIsInvalid
	}

	c.itemCount = itemCount
	return nil
}

func (c *CreateOrderCommand) setWeightKg(weightKg int) error {
	if weightKg < 0 {
		return ErrWeightIsInvalid
	}

	c.weightKg = weightKg
	return nil
}
