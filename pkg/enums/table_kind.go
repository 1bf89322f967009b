package enums

import "fmt"

// TableKind names the item table variants rendered by the client. The
// shipping and clearing tables run in fee-hiding mode: line prices are
// replaced by the vendor group's resolved fee.
type TableKind string

const (
	TableKindShipping  TableKind = "shipping"
	TableKindClearing  TableKind = "clearing"
	TableKindAccount   TableKind = "account"
	TableKindLegalHead TableKind = "legalhead"
	TableKindService   TableKind = "service"
)

var validTableKinds = []TableKind{
	TableKindShipping,
	TableKindClearing,
	TableKindAccount,
	TableKindLegalHead,
	TableKindService,
}

// String implements fmt.Stringer.
func (k TableKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known TableKind.
func (k TableKind) IsValid() bool {
	for _, candidate := range validTableKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// HidesPrices reports whether this table replaces line totals with the vendor
// group fee.
func (k TableKind) HidesPrices() bool {
	return k == TableKindShipping || k == TableKindClearing
}

// ParseTableKind converts raw input into a TableKind.
func ParseTableKind(value string) (TableKind, error) {
	for _, candidate := range validTableKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid table kind %q", value)
}
