package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blueanchorhq/procurement-gateway/api/middleware"
	"github.com/blueanchorhq/procurement-gateway/api/responses"
	"github.com/blueanchorhq/procurement-gateway/api/validators"
	"github.com/blueanchorhq/procurement-gateway/internal/alerts"
	"github.com/blueanchorhq/procurement-gateway/internal/requests"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/logger"
)

// tableAccess maps each role to the table kinds its dashboard may open.
// Admins see everything.
var tableAccess = map[enums.UserRole][]enums.TableKind{
	enums.UserRoleAccountant: {enums.TableKindAccount, enums.TableKindService},
	enums.UserRoleShipping:   {enums.TableKindShipping},
	enums.UserRoleClearing:   {enums.TableKindClearing},
	enums.UserRoleLegalHead:  {enums.TableKindLegalHead},
	enums.UserRoleCaptain:    {enums.TableKindService},
	enums.UserRoleCrew:       {enums.TableKindService},
}

func canOpenTable(role string, kind enums.TableKind) bool {
	if role == string(enums.UserRoleAdmin) {
		return true
	}
	for _, allowed := range tableAccess[enums.UserRole(role)] {
		if allowed == kind {
			return true
		}
	}
	return false
}

func ListRequests(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), middleware.UpstreamTokenFromContext(r.Context()), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// GetTable renders one item table for a request, in the variant named by the
// URL. Shipping and clearing run fee-hiding.
func GetTable(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		kind, err := tableKindFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !canOpenTable(middleware.RoleFromContext(r.Context()), kind) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "table not available for role"))
			return
		}

		view, err := svc.GetTable(r.Context(), middleware.UpstreamTokenFromContext(r.Context()), chi.URLParam(r, "requestId"), kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// SaveTable runs the save-all batch for one table and reports the outcome to
// the caller's alert feed.
func SaveTable(svc requests.Service, alertsSvc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		kind, err := tableKindFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !canOpenTable(middleware.RoleFromContext(r.Context()), kind) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "table not available for role"))
			return
		}

		var body requests.SaveTableRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.UpstreamTokenFromContext(r.Context())
		outcome, err := svc.SaveTable(r.Context(), token, chi.URLParam(r, "requestId"), kind, body.Edits)
		if err != nil {
			pushSaveAlert(r, alertsSvc, logg, saveAlertForError(err))
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pushSaveAlert(r, alertsSvc, logg, saveAlert{
			severity: enums.AlertSeveritySuccess,
			message:  fmt.Sprintf("saved %d item(s)", outcome.Saved),
		})
		responses.WriteSuccess(w, outcome)
	}
}

func AttachItems(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		var body struct {
			SourceRequestID string   `json:"source_request_id" validate:"required"`
			ItemIDs         []string `json:"item_ids" validate:"required,min=1"`
		}
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Attach(r.Context(), middleware.UpstreamTokenFromContext(r.Context()), chi.URLParam(r, "requestId"), body.SourceRequestID, body.ItemIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func DetachItem(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		items, err := svc.Detach(r.Context(), middleware.UpstreamTokenFromContext(r.Context()), chi.URLParam(r, "requestId"), chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func tableKindFromURL(r *http.Request) (enums.TableKind, error) {
	kind, err := enums.ParseTableKind(chi.URLParam(r, "kind"))
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "table kind is invalid")
	}
	return kind, nil
}

type saveAlert struct {
	severity enums.AlertSeverity
	message  string
}

func saveAlertForError(err error) saveAlert {
	typed := pkgerrors.As(err)
	if typed != nil && typed.Code() == pkgerrors.CodeNoChanges {
		return saveAlert{severity: enums.AlertSeverityInfo, message: "no changes to save"}
	}
	message := "some items failed to save"
	if typed != nil && typed.Code() == pkgerrors.CodeUpstream && typed.Message() != "" {
		message = typed.Message()
	}
	return saveAlert{severity: enums.AlertSeverityError, message: message}
}

func pushSaveAlert(r *http.Request, alertsSvc alerts.Service, logg *logger.Logger, alert saveAlert) {
	if alertsSvc == nil {
		return
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return
	}
	if err := alertsSvc.Push(r.Context(), sessionID, alert.severity, alert.message); err != nil && logg != nil {
		logg.Error(r.Context(), "push save alert", err)
	}
}
