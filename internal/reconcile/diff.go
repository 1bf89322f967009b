package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
)

// Diff field names as the backend expects them.
const (
	fieldQuantity         = "quantity"
	fieldShippingQuantity = "shippingQuantity"
	fieldVendor           = "vendor"
	fieldFee              = "fee"
	fieldCurrency         = "currency"
	fieldPaymentStatus    = "paymentStatus"
	fieldPercentagePaid   = "percentagePaid"
	fieldPaid             = "paid"
	fieldBalance          = "balance"
)

var paymentFields = []string{fieldPaymentStatus, fieldPercentagePaid, fieldPaid, fieldBalance}

// allowedFields is the per-table diff allow-list. The priced tables persist
// only the payment split; the fee-hiding tables additionally own quantities,
// vendor assignment, fees, and currency.
func allowedFields(kind enums.TableKind) []string {
	if kind.HidesPrices() {
		fields := []string{fieldQuantity, fieldShippingQuantity, fieldVendor, fieldFee, fieldCurrency}
		return append(fields, paymentFields...)
	}
	return paymentFields
}

// BuildDiff computes the minimal change-set for one overlay by comparing the
// normalized string form of each allowed field against the server snapshot.
// An empty map means nothing changed and no network call should be made.
func BuildDiff(overlay *ItemOverlay, kind enums.TableKind) map[string]any {
	changes := make(map[string]any)
	snapshot := overlay.Snapshot()
	current := overlay.Current

	for _, field := range allowedFields(kind) {
		oldValue, newValue := fieldStrings(snapshot, current, field)
		if oldValue == newValue {
			continue
		}
		changes[field] = fieldPayload(current, field)
	}
	return changes
}

func fieldStrings(snapshot, current upstream.Item, field string) (string, string) {
	switch field {
	case fieldQuantity:
		return snapshot.Quantity.String(), current.Quantity.String()
	case fieldShippingQuantity:
		return snapshot.ShippingQuantity.String(), current.ShippingQuantity.String()
	case fieldVendor:
		return snapshot.Vendor.Key(), current.Vendor.Key()
	case fieldFee:
		return snapshot.Fee.String(), current.Fee.String()
	case fieldCurrency:
		return snapshot.Currency, current.Currency
	case fieldPaymentStatus:
		return snapshot.PaymentStatus.String(), current.PaymentStatus.String()
	case fieldPercentagePaid:
		return snapshot.PercentagePaid.String(), current.PercentagePaid.String()
	case fieldPaid:
		return snapshot.Paid.String(), current.Paid.String()
	case fieldBalance:
		return snapshot.Balance.String(), current.Balance.String()
	default:
		return "", ""
	}
}

// fieldPayload renders the outgoing value with numeric fields coerced to
// plain numbers.
func fieldPayload(current upstream.Item, field string) any {
	switch field {
	case fieldQuantity:
		return numeric(current.Quantity)
	case fieldShippingQuantity:
		return numeric(current.ShippingQuantity)
	case fieldVendor:
		if current.Vendor.ID != "" {
			return current.Vendor.ID
		}
		return current.Vendor.Display()
	case fieldFee:
		return numeric(current.Fee)
	case fieldCurrency:
		return current.Currency
	case fieldPaymentStatus:
		return current.PaymentStatus.String()
	case fieldPercentagePaid:
		return numeric(current.PercentagePaid)
	case fieldPaid:
		return numeric(current.Paid)
	case fieldBalance:
		return numeric(current.Balance)
	default:
		return nil
	}
}

func numeric(value decimal.Decimal) float64 {
	f, _ := value.Float64()
	return f
}
