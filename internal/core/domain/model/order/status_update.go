package order

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// LifecycleKind discriminates which lifecycle field a status value targets.
// Modeling the target explicitly keeps the "which field is authoritative"
// decision out of business logic: callers carry a single StatusUpdate value
// and only the aggregate knows where it lands.
type LifecycleKind int

const (
	// LifecycleUnknown represents an invalid or undefined lifecycle kind.
	LifecycleUnknown LifecycleKind = iota

	// LifecycleStandard targets the generic Status field.
	LifecycleStandard

	// LifecycleCashOnDelivery targets the CodStatus field.
	LifecycleCashOnDelivery
)

// StatusUpdate is a discriminated status value produced by the status mapper.
// It carries either a generic Status or a CodStatus, never both.
type StatusUpdate struct {
	kind    LifecycleKind
	generic Status
	cod     CodStatus
}

// NewStandardStatusUpdate creates a StatusUpdate targeting the generic
// Status field.
func NewStandardStatusUpdate(status Status) (StatusUpdate, error) {
	if err := status.Validate(); err != nil {
		return StatusUpdate{}, err
	}
	return StatusUpdate{kind: LifecycleStandard, generic: status}, nil
}

// NewCodStatusUpdate creates a StatusUpdate targeting the CodStatus field.
func NewCodStatusUpdate(status CodStatus) (StatusUpdate, error) {
	if err := status.Validate(); err != nil {
		return StatusUpdate{}, err
	}
	return StatusUpdate{kind: LifecycleCashOnDelivery, cod: status}, nil
}

// Kind returns which lifecycle field the update targets.
func (u StatusUpdate) Kind() LifecycleKind {
	return u.kind
}

// Generic returns the generic status value.
// Only meaningful when Kind() is LifecycleStandard.
func (u StatusUpdate) Generic() Status {
	return u.generic
}

// Cod returns the COD status value.
// Only meaningful when Kind() is LifecycleCashOnDelivery.
func (u StatusUpdate) Cod() CodStatus {
	return u.cod
}

// String returns the uppercase name of the carried status value.
func (u StatusUpdate) String() string {
	if u.kind == LifecycleCashOnDelivery {
		return u.cod.String()
	}
	return u.generic.String()
}

// Validate checks that the StatusUpdate was created via one of its constructors.
func (u StatusUpdate) Validate() error {
	switch u.kind {
	case LifecycleStandard:
		return u.generic.Validate()
	case LifecycleCashOnDelivery:
		return u.cod.Validate()
	default:
		return errs.NewValueIsInvalidErrorWithCause("statusUpdate",
			fmt.Errorf("%d is not a valid lifecycle kind", u.kind))
	}
}
