package reconcile

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
)

var hundred = decimal.NewFromInt(100)

// LineTotal is the priced total for one item: quantity times unit price,
// reduced by the discount percentage, then increased by the VAT percentage.
// Rounded to 2 decimal places.
func LineTotal(item upstream.Item) decimal.Decimal {
	base := item.Quantity.Mul(item.UnitPrice)
	if !item.DiscountPercent.IsZero() {
		base = base.Sub(base.Mul(item.DiscountPercent).Div(hundred))
	}
	if !item.VATPercent.IsZero() {
		base = base.Add(base.Mul(item.VATPercent).Div(hundred))
	}
	return base.Round(2)
}

// ParseAmount turns free-form numeric input into a decimal, coercing anything
// unparseable to zero.
func ParseAmount(value string) decimal.Decimal {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// ClampPercent restricts a percentage to [0, 100].
func ClampPercent(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// applyPayment recomputes paid, balance, and percentagePaid together from the
// effective total. They are never mutated independently.
func applyPayment(item *upstream.Item, effectiveTotal decimal.Decimal, status enums.PaymentStatus, pct decimal.Decimal) {
	switch status {
	case enums.PaymentStatusNotPaid:
		item.PaymentStatus = status
		item.PercentagePaid = decimal.Zero
		item.Paid = decimal.Zero
		item.Balance = effectiveTotal.Round(2)
	case enums.PaymentStatusPaid:
		item.PaymentStatus = status
		item.PercentagePaid = hundred
		item.Paid = effectiveTotal.Round(2)
		item.Balance = decimal.Zero
	case enums.PaymentStatusPartPayment:
		clamped := ClampPercent(pct)
		item.PaymentStatus = status
		item.PercentagePaid = clamped
		item.Paid = clamped.Div(hundred).Mul(effectiveTotal).Round(2)
		item.Balance = effectiveTotal.Sub(item.Paid).Round(2)
	}
}
