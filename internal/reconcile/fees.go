package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/blueanchorhq/procurement-gateway/pkg/types"
)

// feeDefaultKey is the schedule key consulted when nothing vendor-specific
// matches. The backend writes it when a request-wide fee is promoted to a
// per-vendor schedule.
const feeDefaultKey = "default"

// ResolveFee resolves the shared fee for one item's vendor group. A flat
// schedule applies to every group; a per-vendor schedule is probed by vendor
// id, then vendor display name, then item id, then the default key. When the
// schedule yields nothing the item's own fee field applies, else zero.
func ResolveFee(schedule types.FeeSchedule, vendor types.VendorRef, itemID string, itemFee decimal.Decimal) decimal.Decimal {
	if flat, ok := schedule.Flat(); ok {
		return flat
	}

	for _, key := range []string{vendor.ID, vendor.Display(), itemID, feeDefaultKey} {
		if key == "" {
			continue
		}
		if fee, ok := schedule.Lookup(key); ok {
			return fee
		}
	}

	if !itemFee.IsZero() {
		return itemFee
	}
	return decimal.Zero
}
