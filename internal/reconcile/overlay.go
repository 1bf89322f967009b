package reconcile

import (
	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
)

// ItemOverlay is the editable copy of one upstream item. The snapshot keeps
// the last-known server values so the diff builder can compare against them;
// the dirty flag is the only source of truth for "has unsaved changes".
type ItemOverlay struct {
	Current  upstream.Item
	snapshot upstream.Item
	dirty    bool
}

// NewOverlay wraps a server item in an editable overlay.
func NewOverlay(item upstream.Item) *ItemOverlay {
	return &ItemOverlay{Current: item, snapshot: item}
}

// NewOverlays wraps a server item list, preserving order.
func NewOverlays(items []upstream.Item) []*ItemOverlay {
	overlays := make([]*ItemOverlay, 0, len(items))
	for _, item := range items {
		overlays = append(overlays, NewOverlay(item))
	}
	return overlays
}

// Snapshot returns the last-known server values.
func (o *ItemOverlay) Snapshot() upstream.Item {
	return o.snapshot
}

// Dirty reports whether the overlay holds unsaved edits.
func (o *ItemOverlay) Dirty() bool {
	return o.dirty
}

// PendingVendor reports whether the overlay references an ad hoc vendor name
// that does not exist server-side yet.
func (o *ItemOverlay) PendingVendor() bool {
	return o.Current.Vendor.Pending()
}

func (o *ItemOverlay) markDirty() {
	o.dirty = true
}

// Resync replaces both the editable copy and the snapshot with the server's
// canonical item and clears the dirty flag.
func (o *ItemOverlay) Resync(item upstream.Item) {
	o.Current = item
	o.snapshot = item
	o.dirty = false
}

// ClearDirty accepts the local edits as saved without fresh server data: the
// snapshot becomes the edited values.
func (o *ItemOverlay) ClearDirty() {
	o.snapshot = o.Current
	o.dirty = false
}
