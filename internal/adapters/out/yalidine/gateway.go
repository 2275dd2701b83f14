package yalidine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"shipping/internal/core/ports"
)

// pageSize is the number of records requested per reference-data page.
const pageSize = 100

// deliveredAtLayout is the timestamp format the courier uses for delivery times.
const deliveredAtLayout = "2006-01-02 15:04:05"

// createParcelResponse is one element of the parcel-creation answer.
type createParcelResponse struct {
	OrderID  string `json:"order_id"`
	Success  bool   `json:"success"`
	Tracking string `json:"tracking"`
	Label    string `json:"label"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// parcelStatusResponse is the courier's answer for a single tracking lookup.
type parcelStatusResponse struct {
	Tracking    string  `json:"tracking"`
	Status      string  `json:"last_status"`
	DeliveredAt *string `json:"delivered_at"`
}

// pageEnvelope is the courier's pagination wrapper around list endpoints.
type pageEnvelope struct {
	HasMore   bool            `json:"has_more"`
	TotalData int             `json:"total_data"`
	Data      json.RawMessage `json:"data"`
}

type regionResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	ZoneID int    `json:"zone"`
}

type subRegionResponse struct {
	ID             int    `json:"id"`
	RegionID       int    `json:"wilaya_id"`
	Name           string `json:"name"`
	Deliverable    bool   `json:"is_deliverable"`
	HasPickupPoint bool   `json:"has_stop_desk"`
}

type pickupPointResponse struct {
	ID          int    `json:"center_id"`
	RegionID    int    `json:"wilaya_id"`
	SubRegionID int    `json:"commune_id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
}

// CreateParcel submits a parcel to the courier.
// The API accepts a batch; this gateway always sends a batch of one and
// unwraps the single answer. The verbatim response body is returned in Raw
// for the audit trail.
func (c *Client) CreateParcel(
	ctx context.Context,
	request ports.CreateParcelRequest,
) (ports.CreateParcelResult, error) {
	body, err := json.Marshal([]ports.CreateParcelRequest{request})
	if err != nil {
		return ports.CreateParcelResult{}, fmt.Errorf("marshal parcel request: %w", err)
	}

	responseBody, err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/v1/parcels", body)
	if err != nil {
		return ports.CreateParcelResult{}, err
	}

	var responses []createParcelResponse
	if err = json.Unmarshal(responseBody, &responses); err != nil {
		return ports.CreateParcelResult{}, fmt.Errorf("decode parcel response: %w", err)
	}

	if len(responses) == 0 {
		return ports.CreateParcelResult{}, fmt.Errorf("empty parcel response for order %s", request.OrderNumber)
	}

	answer := responses[0]
	if !answer.Success {
		return ports.CreateParcelResult{}, fmt.Errorf("parcel rejected for order %s: %s",
			request.OrderNumber, answer.Message)
	}

	return ports.CreateParcelResult{
		Tracking: answer.Tracking,
		LabelURL: answer.Label,
		Status:   answer.Status,
		Raw:      json.RawMessage(responseBody),
	}, nil
}

// GetParcel fetches the courier's current status for a tracking code.
func (c *Client) GetParcel(ctx context.Context, tracking string) (ports.ParcelStatusResult, error) {
	endpoint := c.baseURL + "/v1/parcels/" + url.PathEscape(tracking)

	responseBody, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.ParcelStatusResult{}, err
	}

	var answer parcelStatusResponse
	if err = json.Unmarshal(responseBody, &answer); err != nil {
		return ports.ParcelStatusResult{}, fmt.Errorf("decode status response: %w", err)
	}

	var deliveredAt *time.Time
	if answer.DeliveredAt != nil && *answer.DeliveredAt != "" {
		parsed, parseErr := time.Parse(deliveredAtLayout, *answer.DeliveredAt)
		if parseErr != nil {
			return ports.ParcelStatusResult{}, fmt.Errorf("parse delivered_at: %w", parseErr)
		}
		deliveredAt = &parsed
	}

	return ports.ParcelStatusResult{
		Tracking:    answer.Tracking,
		Status:      answer.Status,
		DeliveredAt: deliveredAt,
		Raw:         json.RawMessage(responseBody),
	}, nil
}

// ListRegions fetches the full paginated region list.
func (c *Client) ListRegions(ctx context.Context) ([]ports.RegionRecord, error) {
	var records []ports.RegionRecord

	err := c.fetchAllPages(ctx, "/v1/wilayas", func(data json.RawMessage) error {
		var page []regionResponse
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		for _, item := range page {
			records = append(records, ports.RegionRecord{
				ID:     item.ID,
				Name:   item.Name,
				ZoneID: item.ZoneID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ListSubRegions fetches the full paginated sub-region list.
func (c *Client) ListSubRegions(ctx context.Context) ([]ports.SubRegionRecord, error) {
	var records []ports.SubRegionRecord

	err := c.fetchAllPages(ctx, "/v1/communes", func(data json.RawMessage) error {
		var page []subRegionResponse
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		for _, item := range page {
			records = append(records, ports.SubRegionRecord{
				ID:             item.ID,
				RegionID:       item.RegionID,
				Name:           item.Name,
				Deliverable:    item.Deliverable,
				HasPickupPoint: item.HasPickupPoint,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ListPickupPoints fetches the full paginated pickup-point center list.
func (c *Client) ListPickupPoints(ctx context.Context) ([]ports.PickupPointRecord, error) {
	var records []ports.PickupPointRecord

	err := c.fetchAllPages(ctx, "/v1/centers", func(data json.RawMessage) error {
		var page []pickupPointResponse
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		for _, item := range page {
			records = append(records, ports.PickupPointRecord{
				ID:          item.ID,
				RegionID:    item.RegionID,
				SubRegionID: item.SubRegionID,
				Name:        item.Name,
				Address:     item.Address,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// fetchAllPages walks a paginated list endpoint until has_more is false,
// handing each page's data array to consume.
func (c *Client) fetchAllPages(
	ctx context.Context,
	path string,
	consume func(data json.RawMessage) error,
) error {
	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("%s%s?page=%d&page_size=%d", c.baseURL, path, page, pageSize)

		responseBody, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("fetch %s page %d: %w", path, page, err)
		}

		var envelope pageEnvelope
		if err = json.Unmarshal(responseBody, &envelope); err != nil {
			return fmt.Errorf("decode %s page %d: %w", path, page, err)
		}

		if err = consume(envelope.Data); err != nil {
			return fmt.Errorf("decode %s page %d data: %w", path, page, err)
		}

		if !envelope.HasMore {
			return nil
		}
	}
}
