package ports

import (
	"context"
	"encoding/json"
	"time"
)

// CreateParcelRequest is the payload sent to the courier when creating a
// parcel. Field names mirror the courier's API vocabulary.
type CreateParcelRequest struct {
	OrderNumber string `json:"order_id"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"familyname"`
	Phone       string `json:"contact_phone"`
	Address     string `json:"address"`
	RegionID    int    `json:"to_wilaya_id"`
	SubRegionID int    `json:"to_commune_id"`
	PriceCents  int64  `json:"price"`
	WeightKg    int    `json:"weight"`
	LengthCm    int    `json:"length"`
	WidthCm     int    `json:"width"`
	HeightCm    int    `json:"height"`
	Insurance   bool   `json:"do_insurance"`
	Exchange    bool   `json:"is_exchange"`
	Stopdesk    bool   `json:"is_stopdesk"`
}

// CreateParcelResult is the courier's acceptance of a parcel-creation call.
// Raw carries the verbatim response body for the audit trail.
type CreateParcelResult struct {
	Tracking string
	LabelURL string
	Status   string
	Raw      json.RawMessage
}

// ParcelStatusResult is the courier's current view of a tracked parcel.
type ParcelStatusResult struct {
	Tracking    string
	Status      string
	DeliveredAt *time.Time
	Raw         json.RawMessage
}

// RegionRecord is a courier region (wilaya) as returned by the reference-data API.
type RegionRecord struct {
	ID     int
	Name   string
	ZoneID int
}

// SubRegionRecord is a courier sub-region (commune) as returned by the reference-data API.
type SubRegionRecord struct {
	ID             int
	RegionID       int
	Name           string
	Deliverable    bool
	HasPickupPoint bool
}

// PickupPointRecord is a courier stop-desk center as returned by the reference-data API.
type PickupPointRecord struct {
	ID          int
	RegionID    int
	SubRegionID int
	Name        string
	Address     string
}

// CourierGateway is the outbound port to the courier's REST API.
// Implementations retry transient failures (rate limits, 5xx) internally;
// errors returned here are final.
type CourierGateway interface {
	// CreateParcel submits a parcel to the courier and returns the assigned
	// tracking code and label URL.
	CreateParcel(ctx context.Context, request CreateParcelRequest) (CreateParcelResult, error)

	// GetParcel fetches the courier's current status for a tracking code.
	GetParcel(ctx context.Context, tracking string) (ParcelStatusResult, error)

	// ListRegions fetches the full paginated region list.
	ListRegions(ctx context.Context) ([]RegionRecord, error)

	// ListSubRegions fetches the full paginated sub-region list.
	ListSubRegions(ctx context.Context) ([]SubRegionRecord, error)

	// ListPickupPoints fetches the full paginated pickup-point center list.
	ListPickupPoints(ctx context.Context) ([]PickupPointRecord, error)
}
