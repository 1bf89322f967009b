package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/blueanchorhq/procurement-gateway/pkg/types"
)

func TestResolveFeeFlatAppliesToEveryGroup(t *testing.T) {
	schedule := types.NewFlatFee(decimal.NewFromInt(250))
	fee := ResolveFee(schedule, types.VendorRef{ID: "v-1", Name: "Acme Marine"}, "item-1", decimal.Zero)
	if !fee.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected flat fee 250, got %s", fee)
	}
}

func TestResolveFeeVendorAndDefaultFallback(t *testing.T) {
	schedule := types.NewPerVendorFee(map[string]decimal.Decimal{
		"vendorA": decimal.NewFromInt(500),
		"default": decimal.NewFromInt(100),
	})

	got := ResolveFee(schedule, types.VendorRef{ID: "vendorA"}, "item-1", decimal.Zero)
	if !got.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("vendorA fee: got %s, want 500", got)
	}

	got = ResolveFee(schedule, types.VendorRef{ID: "vendorB"}, "item-2", decimal.Zero)
	if !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("default fallback: got %s, want 100", got)
	}
}

func TestResolveFeeProbesKeysInOrder(t *testing.T) {
	schedule := types.NewPerVendorFee(map[string]decimal.Decimal{
		"v-1":         decimal.NewFromInt(10),
		"Acme Marine": decimal.NewFromInt(20),
		"item-1":      decimal.NewFromInt(30),
		"default":     decimal.NewFromInt(40),
	})
	vendor := types.VendorRef{ID: "v-1", Name: "Acme Marine"}

	if got := ResolveFee(schedule, vendor, "item-1", decimal.Zero); !got.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("vendor id should win: got %s", got)
	}

	schedule = types.NewPerVendorFee(map[string]decimal.Decimal{
		"Acme Marine": decimal.NewFromInt(20),
		"item-1":      decimal.NewFromInt(30),
	})
	if got := ResolveFee(schedule, vendor, "item-1", decimal.Zero); !got.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("vendor name should win over item id: got %s", got)
	}

	schedule = types.NewPerVendorFee(map[string]decimal.Decimal{
		"item-1": decimal.NewFromInt(30),
	})
	if got := ResolveFee(schedule, vendor, "item-1", decimal.Zero); !got.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("item id should win over default: got %s", got)
	}
}

func TestResolveFeeFallsBackToItemFeeThenZero(t *testing.T) {
	vendor := types.VendorRef{Name: "Unlisted Vendor"}

	got := ResolveFee(types.FeeSchedule{}, vendor, "item-1", decimal.NewFromInt(75))
	if !got.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("item-level fee: got %s, want 75", got)
	}

	got = ResolveFee(types.FeeSchedule{}, vendor, "item-1", decimal.Zero)
	if !got.IsZero() {
		t.Fatalf("expected zero fee, got %s", got)
	}
}
