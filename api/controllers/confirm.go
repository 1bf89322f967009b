package controllers

import (
	"net/http"
	"strings"

	"github.com/blueanchorhq/procurement-gateway/api/middleware"
	"github.com/blueanchorhq/procurement-gateway/internal/alerts"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
)

const confirmTokenHeader = "X-Confirm-Token"

// Destructive actions gated behind a two-phase confirmation token.
const (
	ActionDeleteVendor       = "vendor.delete"
	ActionDeleteCompany      = "company.delete"
	ActionDeleteUser         = "user.delete"
	ActionDeleteVessel       = "vessel.delete"
	ActionDeleteInventory    = "inventory.delete"
	ActionClearNotifications = "notifications.clear"
)

// requireConfirm consumes the single-use confirmation token presented for a
// destructive action. The token must have been issued to the same session
// for the same action.
func requireConfirm(r *http.Request, alertsSvc alerts.Service, action string) error {
	if alertsSvc == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "alerts service unavailable")
	}
	token := strings.TrimSpace(r.Header.Get(confirmTokenHeader))
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeForbidden, "confirmation token required")
	}
	return alertsSvc.Confirm(r.Context(), middleware.SessionIDFromContext(r.Context()), token, action)
}
