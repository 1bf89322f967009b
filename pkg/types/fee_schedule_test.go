package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFeeScheduleUnmarshalNumber(t *testing.T) {
	var fee FeeSchedule
	if err := json.Unmarshal([]byte(`150.5`), &fee); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	flat, ok := fee.Flat()
	if !ok {
		t.Fatal("expected flat shape")
	}
	if !flat.Equal(decimal.NewFromFloat(150.5)) {
		t.Fatalf("unexpected flat fee %s", flat)
	}
	if _, ok := fee.Lookup("vendorA"); ok {
		t.Fatal("flat schedule should not answer vendor lookups")
	}
}

func TestFeeScheduleUnmarshalMap(t *testing.T) {
	var fee FeeSchedule
	if err := json.Unmarshal([]byte(`{"vendorA":500,"default":100}`), &fee); err != nil {
		t.Fatalf("unmarshal map: %v", err)
	}
	if _, ok := fee.Flat(); ok {
		t.Fatal("map schedule should not report a flat fee")
	}
	got, ok := fee.Lookup("vendorA")
	if !ok || !got.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected vendorA fee 500, got %s ok=%v", got, ok)
	}
	fallback, ok := fee.Lookup("default")
	if !ok || !fallback.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected default fee 100, got %s ok=%v", fallback, ok)
	}
}

func TestFeeScheduleUnmarshalNull(t *testing.T) {
	var fee FeeSchedule
	if err := json.Unmarshal([]byte(`null`), &fee); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !fee.IsZero() {
		t.Fatal("expected zero schedule")
	}
}

func TestFeeScheduleUnmarshalRejectsString(t *testing.T) {
	var fee FeeSchedule
	if err := json.Unmarshal([]byte(`"free"`), &fee); err == nil {
		t.Fatal("expected error for string fee")
	}
}

func TestFeeScheduleMarshalRoundTrip(t *testing.T) {
	flat := NewFlatFee(decimal.NewFromInt(75))
	data, err := json.Marshal(flat)
	if err != nil {
		t.Fatalf("marshal flat: %v", err)
	}
	if string(data) != `"75"` && string(data) != `75` {
		t.Fatalf("unexpected flat encoding %s", data)
	}

	perVendor := NewPerVendorFee(map[string]decimal.Decimal{"v1": decimal.NewFromInt(10)})
	data, err = json.Marshal(perVendor)
	if err != nil {
		t.Fatalf("marshal per-vendor: %v", err)
	}
	var decoded FeeSchedule
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if got, ok := decoded.Lookup("v1"); !ok || !got.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("round trip lost vendor fee: %s ok=%v", got, ok)
	}
}

func TestFeeScheduleSetVendorFeePromotesFlat(t *testing.T) {
	fee := NewFlatFee(decimal.NewFromInt(100))
	fee.SetVendorFee("vendorA", decimal.NewFromInt(500))

	if _, ok := fee.Flat(); ok {
		t.Fatal("schedule should no longer be flat")
	}
	if got, ok := fee.Lookup("vendorA"); !ok || !got.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected vendorA 500, got %s ok=%v", got, ok)
	}
	if got, ok := fee.Lookup("default"); !ok || !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected promoted default 100, got %s ok=%v", got, ok)
	}
}
