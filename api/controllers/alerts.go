package controllers

import (
	"net/http"

	"github.com/blueanchorhq/procurement-gateway/api/middleware"
	"github.com/blueanchorhq/procurement-gateway/api/responses"
	"github.com/blueanchorhq/procurement-gateway/api/validators"
	"github.com/blueanchorhq/procurement-gateway/internal/alerts"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/logger"
)

// AlertFeed returns the caller's transient alerts, newest first.
func AlertFeed(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alerts service unavailable"))
			return
		}

		feed, err := svc.Feed(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, feed)
	}
}

// IssueConfirm hands out a single-use token for a destructive action. The
// client replays the destructive call with the token in X-Confirm-Token.
func IssueConfirm(svc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alerts service unavailable"))
			return
		}

		var body struct {
			Action  string `json:"action" validate:"required"`
			Subject string `json:"subject,omitempty"`
		}
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticket, err := svc.IssueConfirm(r.Context(), middleware.SessionIDFromContext(r.Context()), body.Action, body.Subject)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ticket)
	}
}
