package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
)

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return d
}

func pricedItem(id string, quantity, unitPrice int64) upstream.Item {
	return upstream.Item{
		ID:        id,
		Quantity:  decimal.NewFromInt(quantity),
		UnitPrice: decimal.NewFromInt(unitPrice),
	}
}

func TestLineTotalAppliesDiscountThenVAT(t *testing.T) {
	item := pricedItem("item-1", 10, 100)
	if got := LineTotal(item); !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("plain total: got %s", got)
	}

	item.DiscountPercent = decimal.NewFromInt(10)
	if got := LineTotal(item); !got.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("discounted total: got %s", got)
	}

	item.VATPercent = decimal.NewFromInt(5)
	if got := LineTotal(item); !got.Equal(decimal.NewFromInt(945)) {
		t.Fatalf("vat total: got %s", got)
	}
}

func TestApplyPaymentStatusIdentities(t *testing.T) {
	total := mustDecimal(t, "1000")

	item := pricedItem("item-1", 10, 100)
	applyPayment(&item, total, enums.PaymentStatusPaid, decimal.Zero)
	if !item.Balance.IsZero() || !item.PercentagePaid.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("paid: balance=%s pct=%s", item.Balance, item.PercentagePaid)
	}
	if !item.Paid.Equal(total) {
		t.Fatalf("paid: paid=%s", item.Paid)
	}

	applyPayment(&item, total, enums.PaymentStatusNotPaid, decimal.Zero)
	if !item.Paid.IsZero() || !item.Balance.Equal(total) || !item.PercentagePaid.IsZero() {
		t.Fatalf("notpaid: paid=%s balance=%s pct=%s", item.Paid, item.Balance, item.PercentagePaid)
	}
}

func TestApplyPaymentPartPaymentScenario(t *testing.T) {
	// 10 x 100, no discount or VAT, 30% part payment.
	item := pricedItem("item-1", 10, 100)
	total := LineTotal(item)

	applyPayment(&item, total, enums.PaymentStatusPartPayment, decimal.NewFromInt(30))
	if !item.Paid.Equal(mustDecimal(t, "300")) {
		t.Fatalf("expected paid=300, got %s", item.Paid)
	}
	if !item.Balance.Equal(mustDecimal(t, "700")) {
		t.Fatalf("expected balance=700, got %s", item.Balance)
	}
}

func TestPartPaymentSplitSumsToTotal(t *testing.T) {
	total := mustDecimal(t, "333.33")
	for _, pct := range []string{"0", "1", "33.5", "50", "66.67", "99", "100"} {
		item := upstream.Item{ID: "item-1"}
		applyPayment(&item, total, enums.PaymentStatusPartPayment, mustDecimal(t, pct))
		if sum := item.Paid.Add(item.Balance); !sum.Equal(total) {
			t.Fatalf("pct %s: paid %s + balance %s = %s, want %s", pct, item.Paid, item.Balance, sum, total)
		}
	}
}

func TestPartPaymentClampsPercentage(t *testing.T) {
	total := mustDecimal(t, "200")

	item := upstream.Item{ID: "item-1"}
	applyPayment(&item, total, enums.PaymentStatusPartPayment, decimal.NewFromInt(150))
	if !item.PercentagePaid.Equal(decimal.NewFromInt(100)) || !item.Paid.Equal(total) {
		t.Fatalf("over 100: pct=%s paid=%s", item.PercentagePaid, item.Paid)
	}

	applyPayment(&item, total, enums.PaymentStatusPartPayment, decimal.NewFromInt(-10))
	if !item.PercentagePaid.IsZero() || !item.Paid.IsZero() {
		t.Fatalf("below 0: pct=%s paid=%s", item.PercentagePaid, item.Paid)
	}
}

func TestParseAmountCoercesMalformedInputToZero(t *testing.T) {
	cases := map[string]string{
		"12.50":    "12.5",
		" 7 ":      "7",
		"":         "0",
		"abc":      "0",
		"1,000.00": "0",
	}
	for input, want := range cases {
		if got := ParseAmount(input); got.String() != want {
			t.Fatalf("ParseAmount(%q) = %s, want %s", input, got, want)
		}
	}
}
