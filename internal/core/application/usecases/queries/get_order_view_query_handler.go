package queries

import (
	"context"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderViewQueryHandler loads the admin order view from the database.
// The order and its parcel are read in one statement; the authoritative
// lifecycle status is resolved from the payment method in the projection,
// not in the caller.
type GetOrderViewQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderViewQueryHandler creates a handler for order view queries.
// Requires a GORM database connection for query execution.
func NewGetOrderViewQueryHandler(db *gorm.DB) GetOrderViewQueryHandler {
	return GetOrderViewQueryHandler{db: db}
}

// Handle executes the order view query.
// Returns an ObjectNotFoundError when no order exists with the given id.
func (h GetOrderViewQueryHandler) Handle(
	ctx context.Context,
	query GetOrderViewQuery,
) (GetOrderViewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderViewQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.payment_method,
			o.status,
			o.cod_status,
			o.total_cents,
			o.item_count,
			o.customer_first_name,
			o.customer_last_name,
			o.customer_phone,
			p.tracking,
			p.label_url,
			p.status
		FROM orders o
		LEFT JOIN parcels p ON p.order_id = o.id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderViewQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderViewQueryResponse{}, err
		}
		return GetOrderViewQueryResponse{},
			errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var (
		id            uuid.UUID
		orderNumber   string
		paymentMethod int
		status        int
		codStatus     int
		totalCents    int64
		itemCount     int
		firstName     string
		lastName      string
		phone         string
		tracking      *string
		labelURL      *string
		parcelStatus  *string
	)

	if err = rows.Scan(
		&id,
		&orderNumber,
		&paymentMethod,
		&status,
		&codStatus,
		&totalCents,
		&itemCount,
		&firstName,
		&lastName,
		&phone,
		&tracking,
		&labelURL,
		&parcelStatus,
	); err != nil {
		return GetOrderViewQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderViewQueryResponse{}, err
	}

	method := order.PaymentMethod(paymentMethod)
	effective := order.Status(status).String()
	if method.IsCashOnDelivery() {
		effective = order.CodStatus(codStatus).String()
	}

	return GetOrderViewQueryResponse{
		ID:              orderID,
		OrderNumber:     orderNumber,
		PaymentMethod:   method.String(),
		EffectiveStatus: effective,
		TotalCents:      totalCents,
		ItemCount:       itemCount,
		CustomerName:    strings.TrimSpace(firstName + " " + lastName),
		CustomerPhone:   phone,
		Tracking:        tracking,
		LabelURL:        labelURL,
		ParcelStatus:    parcelStatus,
	}, nil
}
