package order_test

import (
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomer() order.Customer {
	return order.Customer{
		FirstName:   "Amina",
		LastName:    "Benali",
		Phone:       "0550123456",
		Address:     "12 Rue Didouche Mourad",
		RegionID:    16,
		SubRegionID: 1601,
	}
}

func newTestOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()

	total, err := kernel.NewMoney(350000)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "ORD-2024-0042", method, total, testCustomer(), 3)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("starts_pending_on_both_lifecycle_fields", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)

		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, order.CodStatusPending, o.CodStatus())
		assert.Equal(t, "ORD-2024-0042", o.OrderNumber())
		require.NoError(t, o.Validate())
	})

	t.Run("requires_order_number", func(t *testing.T) {
		total, err := kernel.NewMoney(1000)
		require.NoError(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), "  ", order.PaymentMethodCard, total, testCustomer(), 3)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_valid_payment_method", func(t *testing.T) {
		total, err := kernel.NewMoney(1000)
		require.NoError(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), "ORD-1", order.PaymentMethodUnknown, total, testCustomer(), 3)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_EffectiveStatus(t *testing.T) {
	t.Run("cod_order_reads_cod_status", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)

		update, err := order.NewCodStatusUpdate(order.CodStatusDispatched)
		require.NoError(t, err)
		require.NoError(t, o.ApplyStatusUpdate(update))

		assert.Equal(t, "DISPATCHED", o.EffectiveStatus())
		// The generic field stays at its last-written value.
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("card_order_reads_generic_status", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCard)

		update, err := order.NewStandardStatusUpdate(order.StatusShipped)
		require.NoError(t, err)
		require.NoError(t, o.ApplyStatusUpdate(update))

		assert.Equal(t, "SHIPPED", o.EffectiveStatus())
		assert.Equal(t, order.CodStatusPending, o.CodStatus())
	})
}

func TestOrder_ApplyStatusUpdate(t *testing.T) {
	t.Run("rejects_generic_update_on_cod_order", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)

		update, err := order.NewStandardStatusUpdate(order.StatusShipped)
		require.NoError(t, err)

		require.ErrorIs(t, o.ApplyStatusUpdate(update), errs.ErrValueIsInvalid)
	})

	t.Run("rejects_cod_update_on_card_order", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCard)

		update, err := order.NewCodStatusUpdate(order.CodStatusSubmitted)
		require.NoError(t, err)

		require.ErrorIs(t, o.ApplyStatusUpdate(update), errs.ErrValueIsInvalid)
	})

	t.Run("rejects_zero_value_update", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCard)

		require.Error(t, o.ApplyStatusUpdate(order.StatusUpdate{}))
	})
}

func TestOrder_MarkDelivered(t *testing.T) {
	t.Run("cod_order_transitions_cod_status", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)

		o.MarkDelivered()

		assert.Equal(t, order.CodStatusDelivered, o.CodStatus())
		assert.True(t, o.IsTerminal())
	})

	t.Run("card_order_transitions_generic_status", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCard)

		o.MarkDelivered()

		assert.Equal(t, order.StatusDelivered, o.Status())
		assert.True(t, o.IsTerminal())
	})

	t.Run("idempotent", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)

		o.MarkDelivered()
		o.MarkDelivered()

		assert.Equal(t, "DELIVERED", o.EffectiveStatus())
	})
}

func TestOrder_ConfirmPayment(t *testing.T) {
	t.Run("matching_amount_confirms_order", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCard)

		reported, err := kernel.NewMoney(350000)
		require.NoError(t, err)

		require.NoError(t, o.ConfirmPayment(reported))
		assert.Equal(t, order.StatusConfirmed, o.Status())
	})

	t.Run("amount_within_epsilon_is_accepted", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCard)

		reported, err := kernel.NewMoney(350000 + order.PaymentAmountEpsilonCents)
		require.NoError(t, err)

		require.NoError(t, o.ConfirmPayment(reported))
	})

	t.Run("mismatched_amount_is_a_hard_error", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCard)

		reported, err := kernel.NewMoney(340000)
		require.NoError(t, err)

		require.ErrorIs(t, o.ConfirmPayment(reported), order.ErrPaymentAmountMismatch)
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("cod_orders_have_no_payment_confirmation", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)

		reported, err := kernel.NewMoney(350000)
		require.NoError(t, err)

		require.ErrorIs(t, o.ConfirmPayment(reported), order.ErrPaymentConfirmationNotSupported)
	})
}
