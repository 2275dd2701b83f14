// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// The courier status history is stored as a JSONB document next to the
// parcel row; it is append-only and read back in full with the aggregate.
package parcelrepo

import (
	"encoding/json"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
type ParcelDTO struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID    `gorm:"type:uuid;uniqueIndex"`
	Recipient RecipientDTO `gorm:"embedded;embeddedPrefix:recipient_"`

	PriceCents int64
	WeightKg   int
	LengthCm   int
	WidthCm    int
	HeightCm   int
	Insurance  bool
	Exchange   bool
	Stopdesk   bool

	Tracking        *string `gorm:"uniqueIndex"`
	LabelURL        *string
	Status          string
	History         []byte `gorm:"type:jsonb"`
	LastStatusCheck *time.Time

	AuditRequest  []byte `gorm:"type:jsonb"`
	AuditResponse []byte `gorm:"type:jsonb"`
	AuditAt       *time.Time
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// RecipientDTO represents the embedded delivery recipient within the parcel table.
type RecipientDTO struct {
	FirstName   string
	LastName    string
	Phone       string
	Address     string
	RegionID    int
	SubRegionID int
}

// statusEventDTO is the JSON shape of one history entry.
type statusEventDTO struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
	Source string    `json:"source"`
}

// fromDomain converts a parcel domain aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) (ParcelDTO, error) {
	recipient := aggregate.Recipient()
	dimensions := aggregate.Dimensions()

	events := aggregate.History()
	history := make([]statusEventDTO, 0, len(events))
	for _, event := range events {
		history = append(history, statusEventDTO{
			Status: event.Status,
			At:     event.At,
			Source: event.Source,
		})
	}

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return ParcelDTO{}, err
	}

	dto := ParcelDTO{
		ID:      aggregate.ID().Bytes(),
		OrderID: aggregate.OrderID().Bytes(),
		Recipient: RecipientDTO{
			FirstName:   recipient.FirstName,
			LastName:    recipient.LastName,
			Phone:       recipient.Phone,
			Address:     recipient.Address,
			RegionID:    recipient.RegionID,
			SubRegionID: recipient.SubRegionID,
		},
		PriceCents:      aggregate.PriceCents(),
		WeightKg:        aggregate.WeightKg(),
		LengthCm:        dimensions.LengthCm,
		WidthCm:         dimensions.WidthCm,
		HeightCm:        dimensions.HeightCm,
		Insurance:       aggregate.Insurance(),
		Exchange:        aggregate.Exchange(),
		Stopdesk:        aggregate.Stopdesk(),
		Tracking:        aggregate.Tracking(),
		LabelURL:        aggregate.LabelURL(),
		Status:          aggregate.Status(),
		History:         historyJSON,
		LastStatusCheck: aggregate.LastStatusCheck(),
	}

	if audit := aggregate.Audit(); audit != nil {
		at := audit.At
		dto.AuditRequest = audit.Request
		dto.AuditResponse = audit.Response
		dto.AuditAt = &at
	}

	return dto, nil
}

// toDomain converts a database DTO to a parcel domain aggregate.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var historyDTOs []statusEventDTO
	if len(dto.History) > 0 {
		if err = json.Unmarshal(dto.History, &historyDTOs); err != nil {
			return nil, err
		}
	}

	history := make([]parcel.StatusEvent, 0, len(historyDTOs))
	for _, event := range historyDTOs {
		history = append(history, parcel.StatusEvent{
			Status: event.Status,
			At:     event.At,
			Source: event.Source,
		})
	}

	var audit *parcel.Audit
	if dto.AuditAt != nil {
		audit = &parcel.Audit{
			Request:  dto.AuditRequest,
			Response: dto.AuditResponse,
			At:       *dto.AuditAt,
		}
	}

	return parcel.RestoreParcel(
		id,
		orderID,
		parcel.Recipient{
			FirstName:   dto.Recipient.FirstName,
			LastName:    dto.Recipient.LastName,
			Phone:       dto.Recipient.Phone,
			Address:     dto.Recipient.Address,
			RegionID:    dto.Recipient.RegionID,
			SubRegionID: dto.Recipient.SubRegionID,
		},
		dto.PriceCents,
		dto.WeightKg,
		parcel.Dimensions{LengthCm: dto.LengthCm, WidthCm: dto.WidthCm, HeightCm: dto.HeightCm},
		dto.Insurance,
		dto.Exchange,
		dto.Stopdesk,
		dto.Tracking,
		dto.LabelURL,
		dto.Status,
		history,
		dto.LastStatusCheck,
		audit,
	)
}
