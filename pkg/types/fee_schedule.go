package types

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type feeKind int

const (
	feeKindNone feeKind = iota
	feeKindFlat
	feeKindPerVendor
)

// FeeSchedule is the request-level shipping or clearing fee. The backend
// stores it either as a single number applying to every vendor group or as a
// map keyed by vendor. Both shapes are accepted on the wire; callers work
// through the tagged accessors instead of duck-typing.
type FeeSchedule struct {
	kind      feeKind
	flat      decimal.Decimal
	perVendor map[string]decimal.Decimal
}

// NewFlatFee builds a schedule where every vendor group shares one fee.
func NewFlatFee(amount decimal.Decimal) FeeSchedule {
	return FeeSchedule{kind: feeKindFlat, flat: amount}
}

// NewPerVendorFee builds a schedule keyed by vendor.
func NewPerVendorFee(fees map[string]decimal.Decimal) FeeSchedule {
	copied := make(map[string]decimal.Decimal, len(fees))
	for k, v := range fees {
		copied[k] = v
	}
	return FeeSchedule{kind: feeKindPerVendor, perVendor: copied}
}

// IsZero reports whether no fee has been recorded at the request level.
func (f FeeSchedule) IsZero() bool {
	return f.kind == feeKindNone
}

// Flat returns the global fee when the schedule is the single-number shape.
func (f FeeSchedule) Flat() (decimal.Decimal, bool) {
	if f.kind != feeKindFlat {
		return decimal.Zero, false
	}
	return f.flat, true
}

// Lookup returns the fee stored under the given key in the per-vendor shape.
func (f FeeSchedule) Lookup(key string) (decimal.Decimal, bool) {
	if f.kind != feeKindPerVendor || key == "" {
		return decimal.Zero, false
	}
	v, ok := f.perVendor[key]
	return v, ok
}

// SetVendorFee records a fee for one vendor key, converting a flat schedule
// into the per-vendor shape while keeping the old flat value as the default.
func (f *FeeSchedule) SetVendorFee(key string, amount decimal.Decimal) {
	if key == "" {
		return
	}
	switch f.kind {
	case feeKindPerVendor:
		f.perVendor[key] = amount
	case feeKindFlat:
		f.perVendor = map[string]decimal.Decimal{"default": f.flat, key: amount}
		f.flat = decimal.Zero
		f.kind = feeKindPerVendor
	default:
		f.perVendor = map[string]decimal.Decimal{key: amount}
		f.kind = feeKindPerVendor
	}
}

// MarshalJSON writes the schedule back in the shape it was stored in.
func (f FeeSchedule) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case feeKindFlat:
		return json.Marshal(f.flat)
	case feeKindPerVendor:
		return json.Marshal(f.perVendor)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts the number shape, the per-vendor map shape, or null.
func (f *FeeSchedule) UnmarshalJSON(data []byte) error {
	trimmed := string(data)
	if trimmed == "null" || trimmed == "" {
		*f = FeeSchedule{}
		return nil
	}

	var flat decimal.Decimal
	if err := json.Unmarshal(data, &flat); err == nil {
		*f = NewFlatFee(flat)
		return nil
	}

	var perVendor map[string]decimal.Decimal
	if err := json.Unmarshal(data, &perVendor); err == nil {
		*f = NewPerVendorFee(perVendor)
		return nil
	}

	return fmt.Errorf("fee schedule must be a number or an object of numbers")
}
