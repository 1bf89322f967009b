package requests

import "github.com/blueanchorhq/procurement-gateway/pkg/enums"

// Workflow stages are display data owned by the backend's approval engine;
// the gateway only serves the static progression per request type.
var (
	purchaseOrderStages = []string{
		"requested",
		"captain-approval",
		"legal-review",
		"quotation",
		"purchase",
		"shipping",
		"clearing",
		"delivered",
		"closed",
	}
	pettyCashStages = []string{
		"requested",
		"captain-approval",
		"accounting",
		"disbursed",
		"closed",
	}
)

// WorkflowStages returns the display stage list for a request type.
func WorkflowStages(requestType enums.RequestType) []string {
	switch requestType {
	case enums.RequestTypePettyCash:
		return pettyCashStages
	default:
		return purchaseOrderStages
	}
}
