package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
	"github.com/blueanchorhq/procurement-gateway/pkg/types"
)

func TestBuildDiffEmptyWhenNothingChanged(t *testing.T) {
	overlay := NewOverlay(upstream.Item{
		ID:            "item-1",
		Quantity:      decimal.NewFromInt(10),
		PaymentStatus: enums.PaymentStatusNotPaid,
	})

	for _, kind := range []enums.TableKind{enums.TableKindShipping, enums.TableKindAccount} {
		if diff := BuildDiff(overlay, kind); len(diff) != 0 {
			t.Fatalf("%s: expected empty diff, got %+v", kind, diff)
		}
	}
}

func TestBuildDiffEmptyAfterEditBackToOriginal(t *testing.T) {
	overlay := NewOverlay(upstream.Item{ID: "item-1", Quantity: decimal.NewFromInt(10)})
	overlay.Current.Quantity = decimal.NewFromInt(5)
	overlay.Current.Quantity = decimal.NewFromInt(10)

	if diff := BuildDiff(overlay, enums.TableKindShipping); len(diff) != 0 {
		t.Fatalf("expected empty diff, got %+v", diff)
	}
}

func TestBuildDiffRespectsPerTableAllowList(t *testing.T) {
	overlay := NewOverlay(upstream.Item{
		ID:       "item-1",
		Quantity: decimal.NewFromInt(10),
		Currency: "USD",
	})
	overlay.Current.Quantity = decimal.NewFromInt(7)
	overlay.Current.Currency = "EUR"
	overlay.Current.Paid = decimal.NewFromInt(100)

	shipping := BuildDiff(overlay, enums.TableKindShipping)
	if shipping["quantity"] != float64(7) {
		t.Fatalf("shipping diff missing quantity: %+v", shipping)
	}
	if shipping["currency"] != "EUR" {
		t.Fatalf("shipping diff missing currency: %+v", shipping)
	}

	account := BuildDiff(overlay, enums.TableKindAccount)
	if _, exists := account["quantity"]; exists {
		t.Fatalf("account diff must not carry quantity: %+v", account)
	}
	if _, exists := account["currency"]; exists {
		t.Fatalf("account diff must not carry currency: %+v", account)
	}
	if account["paid"] != float64(100) {
		t.Fatalf("account diff missing paid: %+v", account)
	}
}

func TestBuildDiffVendorPrefersID(t *testing.T) {
	overlay := NewOverlay(upstream.Item{ID: "item-1"})
	overlay.Current.Vendor = types.VendorRef{ID: "v-1", Name: "Acme Marine"}

	diff := BuildDiff(overlay, enums.TableKindShipping)
	if diff["vendor"] != "v-1" {
		t.Fatalf("expected vendor id in diff, got %+v", diff)
	}

	overlay = NewOverlay(upstream.Item{ID: "item-2"})
	overlay.Current.Vendor = types.VendorRef{Name: "New Vendor Ltd"}
	diff = BuildDiff(overlay, enums.TableKindShipping)
	if diff["vendor"] != "New Vendor Ltd" {
		t.Fatalf("expected pending vendor name in diff, got %+v", diff)
	}
}

func TestBuildDiffCoercesNumericFields(t *testing.T) {
	overlay := NewOverlay(upstream.Item{ID: "item-1"})
	overlay.Current.PercentagePaid = decimal.NewFromInt(30)
	overlay.Current.Paid = decimal.RequireFromString("300.00")
	overlay.Current.Balance = decimal.RequireFromString("700.00")
	overlay.Current.PaymentStatus = enums.PaymentStatusPartPayment

	diff := BuildDiff(overlay, enums.TableKindAccount)
	if diff["percentagePaid"] != float64(30) {
		t.Fatalf("percentagePaid: %+v", diff["percentagePaid"])
	}
	if diff["paid"] != float64(300) {
		t.Fatalf("paid: %+v", diff["paid"])
	}
	if diff["balance"] != float64(700) {
		t.Fatalf("balance: %+v", diff["balance"])
	}
	if diff["paymentStatus"] != "partpayment" {
		t.Fatalf("paymentStatus: %+v", diff["paymentStatus"])
	}
}
