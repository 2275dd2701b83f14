// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Both lifecycle columns are always written; which one is authoritative is
// decided by the payment method at read time.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber   string    `gorm:"uniqueIndex"`
	PaymentMethod int       `gorm:"index"`
	TotalCents    int64
	Customer      CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	ItemCount     int
	Status        int `gorm:"index"`
	CodStatus     int `gorm:"index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the embedded buyer and shipping destination within
// the order table.
type CustomerDTO struct {
	FirstName   string
	LastName    string
	Phone       string
	Address     string
	RegionID    int
	SubRegionID int
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	customer := aggregate.Customer()

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OrderNumber:   aggregate.OrderNumber(),
		PaymentMethod: int(aggregate.PaymentMethod()),
		TotalCents:    aggregate.Total().Cents(),
		Customer: CustomerDTO{
			FirstName:   customer.FirstName,
			LastName:    customer.LastName,
			Phone:       customer.Phone,
			Address:     customer.Address,
			RegionID:    customer.RegionID,
			SubRegionID: customer.SubRegionID,
		},
		ItemCount: aggregate.ItemCount(),
		Status:    int(aggregate.Status()),
		CodStatus: int(aggregate.CodStatus()),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including both lifecycle fields using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		order.PaymentMethod(dto.PaymentMethod),
		total,
		order.Customer{
			FirstName:   dto.Customer.FirstName,
			LastName:    dto.Customer.LastName,
			Phone:       dto.Customer.Phone,
			Address:     dto.Customer.Address,
			RegionID:    dto.Customer.RegionID,
			SubRegionID: dto.Customer.SubRegionID,
		},
		dto.ItemCount,
		order.Status(dto.Status),
		order.CodStatus(dto.CodStatus),
	)
}
