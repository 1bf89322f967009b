package upstream

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
	"github.com/blueanchorhq/procurement-gateway/pkg/types"
)

// Request is an approval-workflow document held by the procurement backend.
// The workflow state is a backend-owned string tag, not enumerated here.
type Request struct {
	ID            string             `json:"id"`
	Type          enums.RequestType  `json:"type"`
	WorkflowState string             `json:"workflowState"`
	VesselID      string             `json:"vesselId,omitempty"`
	CompanyID     string             `json:"companyId,omitempty"`
	Items         []Item             `json:"items,omitempty"`
	ShippingFee   types.FeeSchedule  `json:"shippingFee,omitempty"`
	ClearingFee   types.FeeSchedule  `json:"clearingFee,omitempty"`
	CreatedAt     time.Time          `json:"createdAt,omitempty"`
	UpdatedAt     time.Time          `json:"updatedAt,omitempty"`
}

// Item is one requisition line. Money columns ride as decimals so the
// reconciliation math never touches floats.
type Item struct {
	ID               string              `json:"id"`
	RequestID        string              `json:"requestId,omitempty"`
	Description      string              `json:"description"`
	Maker            string              `json:"maker,omitempty"`
	PartNo           string              `json:"partNo,omitempty"`
	Quantity         decimal.Decimal     `json:"quantity"`
	UnitPrice        decimal.Decimal     `json:"unitPrice"`
	DiscountPercent  decimal.Decimal     `json:"discountPercent"`
	VATPercent       decimal.Decimal     `json:"vat"`
	Currency         string              `json:"currency,omitempty"`
	Vendor           types.VendorRef     `json:"vendor,omitempty"`
	Fee              decimal.Decimal     `json:"fee,omitempty"`
	ShippingQuantity decimal.Decimal     `json:"shippingQuantity"`
	PaymentStatus    enums.PaymentStatus `json:"paymentStatus,omitempty"`
	PercentagePaid   decimal.Decimal     `json:"percentagePaid"`
	Paid             decimal.Decimal     `json:"paid"`
	Balance          decimal.Decimal     `json:"balance"`

	// Cross-request linkage set when an item is merged in from another
	// request.
	MovedFromRequestID string `json:"movedFromRequestId,omitempty"`
	IsAttached         bool   `json:"isAttached,omitempty"`
}

// Vendor is the backend's vendor record.
type Vendor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Company is a customer organization record.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// User is a backend account visible to gateway admins.
type User struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email,omitempty"`
	Role      enums.UserRole `json:"role"`
	CompanyID string         `json:"companyId,omitempty"`
	VesselID  string         `json:"vesselId,omitempty"`
	CreatedAt time.Time      `json:"createdAt,omitempty"`
}

// Vessel is a ship record requests are raised against.
type Vessel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IMONumber string    `json:"imoNumber,omitempty"`
	CompanyID string    `json:"companyId,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// InventoryItem is a stocked spare tracked per vessel.
type InventoryItem struct {
	ID          string          `json:"id"`
	VesselID    string          `json:"vesselId,omitempty"`
	Description string          `json:"description"`
	Maker       string          `json:"maker,omitempty"`
	PartNo      string          `json:"partNo,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Location    string          `json:"location,omitempty"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}

// Notification is one entry in a user's backend notification feed.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Artifact describes an uploaded document after the backend stores it.
type Artifact struct {
	ID        string             `json:"id"`
	Kind      enums.ArtifactKind `json:"kind"`
	RequestID string             `json:"requestId,omitempty"`
	FileName  string             `json:"fileName"`
	URL       string             `json:"url,omitempty"`
	CreatedAt time.Time          `json:"createdAt,omitempty"`
}
