package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blueanchorhq/procurement-gateway/api/middleware"
	"github.com/blueanchorhq/procurement-gateway/api/responses"
	"github.com/blueanchorhq/procurement-gateway/api/validators"
	"github.com/blueanchorhq/procurement-gateway/internal/alerts"
	"github.com/blueanchorhq/procurement-gateway/internal/notifications"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/logger"
)

func ListNotifications(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
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

func MarkNotificationRead(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		notification, err := svc.MarkRead(r.Context(), middleware.UpstreamTokenFromContext(r.Context()), chi.URLParam(r, "notificationId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, notification)
	}
}

func DeleteNotification(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		if err := svc.Delete(r.Context(), middleware.UpstreamTokenFromContext(r.Context()), chi.URLParam(r, "notificationId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ClearNotifications wipes the whole feed. A confirmation token is required.
func ClearNotifications(svc notifications.Service, alertsSvc alerts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications service unavailable"))
			return
		}

		if err := requireConfirm(r, alertsSvc, ActionClearNotifications); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ClearAll(r.Context(), middleware.UpstreamTokenFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
