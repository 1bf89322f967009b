package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/blueanchorhq/procurement-gateway/pkg/types"
)

// VendorGroup collects the overlays sharing one vendor key within a request.
// Fee and payment-status edits in fee-hiding mode apply to the whole group.
type VendorGroup struct {
	Key      string
	Vendor   types.VendorRef
	Overlays []*ItemOverlay
	Fee      decimal.Decimal
}

// GroupByVendor partitions overlays into vendor groups in first-seen order.
// Overlays without any vendor information each form their own group keyed by
// item id so they never merge with one another.
func GroupByVendor(overlays []*ItemOverlay, schedule types.FeeSchedule) []VendorGroup {
	groups := make([]VendorGroup, 0, len(overlays))
	index := make(map[string]int, len(overlays))

	for _, overlay := range overlays {
		key := overlay.Current.Vendor.Key()
		if key == "" {
			key = overlay.Current.ID
		}
		if at, ok := index[key]; ok {
			groups[at].Overlays = append(groups[at].Overlays, overlay)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, VendorGroup{
			Key:    key,
			Vendor: overlay.Current.Vendor,
			Fee:    ResolveFee(schedule, overlay.Current.Vendor, overlay.Current.ID, overlay.Current.Fee),
			Overlays: []*ItemOverlay{overlay},
		})
	}
	return groups
}
