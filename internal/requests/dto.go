package requests

import (
	"github.com/shopspring/decimal"

	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
)

// ItemEdit is one row's worth of submitted edits. Nil fields were not
// touched; numeric fields arrive as strings and coerce to zero when
// malformed.
type ItemEdit struct {
	ItemID           string  `json:"item_id" validate:"required"`
	PaymentStatus    *string `json:"payment_status,omitempty"`
	PercentagePaid   *string `json:"percentage_paid,omitempty"`
	Quantity         *string `json:"quantity,omitempty"`
	ShippingQuantity *string `json:"shipping_quantity,omitempty"`
	UnitPrice        *string `json:"unit_price,omitempty"`
	Fee              *string `json:"fee,omitempty"`
	Vendor           *string `json:"vendor,omitempty"`
	Currency         *string `json:"currency,omitempty"`
}

// SaveTableRequest carries a save-all batch for one table. The table kind
// comes from the URL, not the body.
type SaveTableRequest struct {
	Edits []ItemEdit `json:"edits" validate:"required,min=1,dive"`
}

// ItemView is one rendered table row.
type ItemView struct {
	ID               string          `json:"id"`
	Description      string          `json:"description"`
	Maker            string          `json:"maker,omitempty"`
	PartNo           string          `json:"part_no,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	ShippingQuantity decimal.Decimal `json:"shipping_quantity"`
	Currency         string          `json:"currency,omitempty"`
	Vendor           string          `json:"vendor,omitempty"`
	PaymentStatus    string          `json:"payment_status,omitempty"`
	PercentagePaid   decimal.Decimal `json:"percentage_paid"`
	Paid             decimal.Decimal `json:"paid"`
	Balance          decimal.Decimal `json:"balance"`
	EffectiveTotal   decimal.Decimal `json:"effective_total"`

	// Unit price and discount are omitted in fee-hiding mode.
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`

	MovedFromRequestID string `json:"moved_from_request_id,omitempty"`
	IsAttached         bool   `json:"is_attached,omitempty"`
}

// GroupView is one vendor group with its rows and shared fee.
type GroupView struct {
	Vendor string          `json:"vendor"`
	Fee    decimal.Decimal `json:"fee"`
	Items  []ItemView      `json:"items"`
}

// TableView is the assembled table for one request and kind.
type TableView struct {
	RequestID     string          `json:"request_id"`
	Kind          enums.TableKind `json:"kind"`
	WorkflowState string          `json:"workflow_state"`
	Stages        []string        `json:"stages"`
	HidesPrices   bool            `json:"hides_prices"`
	Groups        []GroupView     `json:"groups"`
	Total         decimal.Decimal `json:"total"`
}

// SaveOutcome reports what a save batch did.
type SaveOutcome struct {
	Saved       int             `json:"saved"`
	Failed      int             `json:"failed"`
	FailedItems []string        `json:"failed_items,omitempty"`
	Refreshed   []upstream.Item `json:"-"`
	Table       *TableView      `json:"table,omitempty"`
}
