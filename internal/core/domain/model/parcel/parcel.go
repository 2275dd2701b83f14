package parcel

import (
	"errors"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
	// through the NewParcel or RestoreParcel factory methods.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

	// ErrTrackingAlreadyAssigned is returned when a tracking code is attached to
	// a parcel that already has one. Tracking is set at most once per parcel;
	// subsequent polls update status, history and lastStatusCheck only.
	ErrTrackingAlreadyAssigned = errors.New("parcel already has a tracking code")
)

// Recipient is the customer-facing delivery payload sent to the courier when
// the parcel is created. It is persisted alongside the parcel so the courier
// call can be replayed from the last-saved payload.
type Recipient struct {
	FirstName   string
	LastName    string
	Phone       string
	Address     string
	RegionID    int
	SubRegionID int
}

// Dimensions is the declared parcel size in centimeters.
type Dimensions struct {
	LengthCm int
	WidthCm  int
	HeightCm int
}

// StatusEvent is one entry of the append-only courier status history.
type StatusEvent struct {
	Status string
	At     time.Time
	Source string
}

// History entry sources.
const (
	StatusSourceCreate = "create"
	StatusSourcePoll   = "poll"
)

// Audit captures the raw request and response of the last parcel-creation
// call, kept for support and debugging.
type Audit struct {
	Request  []byte
	Response []byte
	At       time.Time
}

// Parcel represents the courier-side shipment record for a single order.
// It is created as a placeholder (no tracking) when a COD order is placed,
// populated with tracking and label once the courier accepts creation, and
// updated by every successful delivery-status poll.
//
// Invariants:
//   - One parcel per order
//   - Tracking is assigned at most once
//   - Status history is append-only
type Parcel struct {
	id      kernel.UUID
	orderID kernel.UUID

	recipient  Recipient
	priceCents int64
	weightKg   int
	dimensions Dimensions
	insurance  bool
	exchange   bool
	stopdesk   bool

	tracking        *string
	labelURL        *string
	status          string
	history         []StatusEvent
	lastStatusCheck *time.Time
	audit           *Audit

	isConstructed bool
}

// NewParcel creates a placeholder parcel for an order. Tracking and label are
// unset until the courier accepts the parcel-creation call.
func NewParcel(
	id kernel.UUID,
	orderID kernel.UUID,
	recipient Recipient,
	priceCents int64,
	weightKg int,
	dimensions Dimensions,
	insurance bool,
	exchange bool,
	stopdesk bool,
) (*Parcel, error) {
	p := &Parcel{
		recipient:     recipient,
		priceCents:    priceCents,
		weightKg:      weightKg,
		dimensions:    dimensions,
		insurance:     insurance,
		exchange:      exchange,
		stopdesk:      stopdesk,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.validatePayload(),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel reconstructs a Parcel from persistence.
func RestoreParcel(
	id kernel.UUID,
	orderID kernel.UUID,
	recipient Recipient,
	priceCents int64,
	weightKg int,
	dimensions Dimensions,
	insurance bool,
	exchange bool,
	stopdesk bool,
	tracking *string,
	labelURL *string,
	status string,
	history []StatusEvent,
	lastStatusCheck *time.Time,
	audit *Audit,
) (*Parcel, error) {
	p, err := NewParcel(id, orderID, recipient, priceCents, weightKg, dimensions, insurance, exchange, stopdesk)
	if err != nil {
		return nil, err
	}

	p.tracking = tracking
	p.labelURL = labelURL
	p.status = NormalizeStatus(status)
	p.history = history
	p.lastStatusCheck = lastStatusCheck
	p.audit = audit
	return p, nil
}

// Validate ensures the Parcel was properly constructed through a factory method.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// OrderID returns the identifier of the owning order.
func (p *Parcel) OrderID() kernel.UUID {
	return p.orderID
}

// Recipient returns the delivery payload last saved for the courier call.
func (p *Parcel) Recipient() Recipient {
	return p.recipient
}

// PriceCents returns the cash amount the courier collects on delivery.
func (p *Parcel) PriceCents() int64 {
	return p.priceCents
}

// WeightKg returns the declared parcel weight.
func (p *Parcel) WeightKg() int {
	return p.weightKg
}

// Dimensions returns the declared parcel size.
func (p *Parcel) Dimensions() Dimensions {
	return p.dimensions
}

// Insurance reports whether the parcel is insured.
func (p *Parcel) Insurance() bool {
	return p.insurance
}

// Exchange reports whether the courier performs an exchange on delivery.
func (p *Parcel) Exchange() bool {
	return p.exchange
}

// Stopdesk reports whether the parcel is delivered to a pickup point
// instead of the recipient's address.
func (p *Parcel) Stopdesk() bool {
	return p.stopdesk
}

// Tracking returns the courier tracking code, or nil if the parcel has not
// been accepted by the courier yet.
func (p *Parcel) Tracking() *string {
	return p.tracking
}

// LabelURL returns the shipping label URL, or nil if unset.
func (p *Parcel) LabelURL() *string {
	return p.labelURL
}

// Status returns the lowercase-normalized courier status.
func (p *Parcel) Status() string {
	return p.status
}

// History returns the append-only courier status history.
func (p *Parcel) History() []StatusEvent {
	return p.history
}

// LastStatusCheck returns when the courier status last changed via a poll.
func (p *Parcel) LastStatusCheck() *time.Time {
	return p.lastStatusCheck
}

// Audit returns the raw payloads of the last parcel-creation call, or nil.
func (p *Parcel) Audit() *Audit {
	return p.audit
}

// HasTracking reports whether the courier has accepted the parcel.
func (p *Parcel) HasTracking() bool {
	return p.tracking != nil && *p.tracking != ""
}

// AttachTracking records the courier's acceptance of the parcel: tracking
// code, label URL, initial courier status, and the raw request/response audit
// payload. Returns ErrTrackingAlreadyAssigned if tracking was set before.
func (p *Parcel) AttachTracking(tracking, labelURL, status string, request, response []byte, at time.Time) error {
	if p.HasTracking() {
		return ErrTrackingAlreadyAssigned
	}
	if strings.TrimSpace(tracking) == "" {
		return errs.NewValueIsRequiredError("tracking")
	}

	normalized := NormalizeStatus(status)
	p.tracking = &tracking
	if labelURL != "" {
		p.labelURL = &labelURL
	}
	p.status = normalized
	p.history = append(p.history, StatusEvent{Status: normalized, At: at, Source: StatusSourceCreate})
	p.audit = &Audit{Request: request, Response: response, At: at}
	return nil
}

// RecordCourierStatus applies a polled courier status. If the normalized
// status equals the stored one the parcel is left untouched and false is
// returned, which makes repeated polls a no-op. On change the status history
// gains one entry and lastStatusCheck is updated.
func (p *Parcel) RecordCourierStatus(status string, at time.Time) bool {
	normalized := NormalizeStatus(status)
	if normalized == "" || normalized == p.status {
		return false
	}

	p.status = normalized
	p.history = append(p.history, StatusEvent{Status: normalized, At: at, Source: StatusSourcePoll})
	p.lastStatusCheck = &at
	return true
}

// IsDelivered reports whether the stored courier status is in the
// delivered-synonym set.
func (p *Parcel) IsDelivered() bool {
	return IsDeliveredStatus(p.status)
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	p.orderID = orderID
	return nil
}

func (p *Parcel) validatePayload() error {
	if p.priceCents < 0 {
		return errs.NewValueIsInvalidError("price")
	}
	if p.weightKg < 0 {
		return errs.NewValueIsInvalidError("weight")
	}
	return nil
}
