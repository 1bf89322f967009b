package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/types"
)

// Table is the editable view over one request's items for a given table kind.
// Shipping and clearing tables run in fee-hiding mode: the effective total of
// an item is its vendor group's resolved fee rather than the priced line
// total, and fee or payment edits propagate across the whole group.
type Table struct {
	Kind      enums.TableKind
	RequestID string
	Fees      types.FeeSchedule
	Overlays  []*ItemOverlay
}

// NewTable builds the editable table for a request. The shipping table reads
// the request's shipping fee schedule, the clearing table the clearing one;
// the priced tables ignore fees entirely.
func NewTable(kind enums.TableKind, request *upstream.Request) (*Table, error) {
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table kind is invalid")
	}
	if request == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request is required")
	}

	var fees types.FeeSchedule
	switch kind {
	case enums.TableKindShipping:
		fees = request.ShippingFee
	case enums.TableKindClearing:
		fees = request.ClearingFee
	}

	return &Table{
		Kind:      kind,
		RequestID: request.ID,
		Fees:      fees,
		Overlays:  NewOverlays(request.Items),
	}, nil
}

// Find returns the overlay for an item id.
func (t *Table) Find(itemID string) *ItemOverlay {
	for _, overlay := range t.Overlays {
		if overlay.Current.ID == itemID {
			return overlay
		}
	}
	return nil
}

// Groups returns the vendor groups in first-seen item order.
func (t *Table) Groups() []VendorGroup {
	return GroupByVendor(t.Overlays, t.Fees)
}

// DirtyOverlays returns the overlays holding unsaved edits.
func (t *Table) DirtyOverlays() []*ItemOverlay {
	dirty := make([]*ItemOverlay, 0, len(t.Overlays))
	for _, overlay := range t.Overlays {
		if overlay.Dirty() {
			dirty = append(dirty, overlay)
		}
	}
	return dirty
}

// EffectiveTotal is the amount payment math runs against: the group fee in
// fee-hiding mode, the priced line total otherwise.
func (t *Table) EffectiveTotal(overlay *ItemOverlay) decimal.Decimal {
	if t.Kind.HidesPrices() {
		return ResolveFee(t.Fees, overlay.Current.Vendor, overlay.Current.ID, overlay.Current.Fee)
	}
	return LineTotal(overlay.Current)
}

// SetPaymentStatus applies a payment status edit. Part-payment keeps the
// item's current percentage. In fee-hiding mode the edit propagates to every
// overlay in the same vendor group.
func (t *Table) SetPaymentStatus(itemID string, status enums.PaymentStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment status is invalid")
	}
	overlay := t.Find(itemID)
	if overlay == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found in table")
	}

	for _, target := range t.editTargets(overlay) {
		applyPayment(&target.Current, t.EffectiveTotal(target), status, target.Current.PercentagePaid)
		target.markDirty()
	}
	return nil
}

// SetPercentagePaid applies a part-payment percentage edit, clamped to
// [0, 100].
func (t *Table) SetPercentagePaid(itemID string, pct decimal.Decimal) error {
	overlay := t.Find(itemID)
	if overlay == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found in table")
	}

	for _, target := range t.editTargets(overlay) {
		applyPayment(&target.Current, t.EffectiveTotal(target), enums.PaymentStatusPartPayment, pct)
		target.markDirty()
	}
	return nil
}

// SetQuantity updates the ordered quantity, clamps the shipping quantity to
// it, and recomputes the payment split from the new effective total.
func (t *Table) SetQuantity(itemID string, quantity decimal.Decimal) error {
	overlay := t.Find(itemID)
	if overlay == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found in table")
	}
	if quantity.IsNegative() {
		quantity = decimal.Zero
	}

	overlay.Current.Quantity = quantity
	if overlay.Current.ShippingQuantity.GreaterThan(quantity) {
		overlay.Current.ShippingQuantity = quantity
	}
	t.recomputePayment(overlay)
	overlay.markDirty()
	return nil
}

// SetShippingQuantity updates the shipped quantity, clamped to the ordered
// quantity.
func (t *Table) SetShippingQuantity(itemID string, quantity decimal.Decimal) error {
	overlay := t.Find(itemID)
	if overlay == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found in table")
	}
	if quantity.IsNegative() {
		quantity = decimal.Zero
	}
	if quantity.GreaterThan(overlay.Current.Quantity) {
		quantity = overlay.Current.Quantity
	}
	overlay.Current.ShippingQuantity = quantity
	overlay.markDirty()
	return nil
}

// SetUnitPrice updates the unit price and recomputes the payment split.
func (t *Table) SetUnitPrice(itemID string, price decimal.Decimal) error {
	overlay := t.Find(itemID)
	if overlay == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found in table")
	}
	if price.IsNegative() {
		price = decimal.Zero
	}
	overlay.Current.UnitPrice = price
	t.recomputePayment(overlay)
	overlay.markDirty()
	return nil
}

// SetVendor reassigns the item's vendor reference.
func (t *Table) SetVendor(itemID string, vendor types.VendorRef) error {
	overlay := t.Find(itemID)
	if overlay == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found in table")
	}
	overlay.Current.Vendor = vendor
	t.recomputePayment(overlay)
	overlay.markDirty()
	return nil
}

// SetCurrency updates the item's currency code.
func (t *Table) SetCurrency(itemID, currency string) error {
	overlay := t.Find(itemID)
	if overlay == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found in table")
	}
	overlay.Current.Currency = currency
	overlay.markDirty()
	return nil
}

// SetFee records a fee edit. In fee-hiding mode the fee lands on the vendor
// group's schedule entry and propagates to every group member; otherwise it
// stays on the single item.
func (t *Table) SetFee(itemID string, fee decimal.Decimal) error {
	overlay := t.Find(itemID)
	if overlay == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found in table")
	}
	if fee.IsNegative() {
		fee = decimal.Zero
	}

	if !t.Kind.HidesPrices() {
		overlay.Current.Fee = fee
		overlay.markDirty()
		return nil
	}

	key := overlay.Current.Vendor.Key()
	if key == "" {
		key = overlay.Current.ID
	}
	t.Fees.SetVendorFee(key, fee)

	for _, target := range t.editTargets(overlay) {
		target.Current.Fee = fee
		t.recomputePayment(target)
		target.markDirty()
	}
	return nil
}

// editTargets returns the overlays an edit applies to: the vendor group in
// fee-hiding mode, just the edited overlay otherwise.
func (t *Table) editTargets(overlay *ItemOverlay) []*ItemOverlay {
	if !t.Kind.HidesPrices() {
		return []*ItemOverlay{overlay}
	}

	key := overlay.Current.Vendor.Key()
	if key == "" {
		return []*ItemOverlay{overlay}
	}

	targets := make([]*ItemOverlay, 0, 2)
	for _, candidate := range t.Overlays {
		if candidate.Current.Vendor.Key() == key {
			targets = append(targets, candidate)
		}
	}
	return targets
}

// recomputePayment re-derives paid and balance from the stored percentage
// after the effective total changed underneath them.
func (t *Table) recomputePayment(overlay *ItemOverlay) {
	status := overlay.Current.PaymentStatus
	if !status.IsValid() {
		status = enums.PaymentStatusNotPaid
	}
	applyPayment(&overlay.Current, t.EffectiveTotal(overlay), status, overlay.Current.PercentagePaid)
}

// ResyncAll replaces the table's overlays verbatim from a canonical server
// item list, clearing every dirty flag.
func (t *Table) ResyncAll(items []upstream.Item) {
	t.Overlays = NewOverlays(items)
}
