package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blueanchorhq/procurement-gateway/api/controllers"
	"github.com/blueanchorhq/procurement-gateway/api/middleware"
	"github.com/blueanchorhq/procurement-gateway/internal/adminpanel"
	"github.com/blueanchorhq/procurement-gateway/internal/alerts"
	"github.com/blueanchorhq/procurement-gateway/internal/auth"
	"github.com/blueanchorhq/procurement-gateway/internal/notifications"
	"github.com/blueanchorhq/procurement-gateway/internal/requests"
	"github.com/blueanchorhq/procurement-gateway/internal/vendors"
	"github.com/blueanchorhq/procurement-gateway/pkg/config"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
	"github.com/blueanchorhq/procurement-gateway/pkg/logger"
	"github.com/blueanchorhq/procurement-gateway/pkg/redis"
)

// Deps collects everything the router wires into handlers.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	Redis         *redis.Client
	Sessions      middleware.SessionReader
	Auth          auth.Service
	Requests      requests.Service
	Vendors       vendors.Service
	Admin         adminpanel.Service
	Notifications notifications.Service
	Alerts        alerts.Service
	Uploader      controllers.ArtifactUploader
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Redis))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/requests", func(r chi.Router) {
			r.Get("/", controllers.ListRequests(deps.Requests, logg))
			r.Get("/{requestId}/tables/{kind}", controllers.GetTable(deps.Requests, logg))
			r.Post("/{requestId}/tables/{kind}/save", controllers.SaveTable(deps.Requests, deps.Alerts, logg))
			r.Post("/{requestId}/attach", controllers.AttachItems(deps.Requests, logg))
			r.Post("/{requestId}/items/{itemId}/detach", controllers.DetachItem(deps.Requests, logg))
		})

		r.Route("/v1/vendors", func(r chi.Router) {
			r.Get("/", controllers.ListVendors(deps.Vendors, logg))
			r.Post("/", controllers.CreateVendor(deps.Vendors, logg))
			r.With(middleware.RequireRole(enums.UserRoleAdmin, logg)).Patch("/{vendorId}", controllers.UpdateVendor(deps.Vendors, logg))
			r.With(middleware.RequireRole(enums.UserRoleAdmin, logg)).Delete("/{vendorId}", controllers.DeleteVendor(deps.Vendors, deps.Alerts, logg))
		})

		r.Route("/v1/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(deps.Notifications, logg))
			r.Patch("/{notificationId}/read", controllers.MarkNotificationRead(deps.Notifications, logg))
			r.Delete("/{notificationId}", controllers.DeleteNotification(deps.Notifications, logg))
			r.Delete("/", controllers.ClearNotifications(deps.Notifications, deps.Alerts, logg))
		})

		r.Route("/v1/alerts", func(r chi.Router) {
			r.Get("/", controllers.AlertFeed(deps.Alerts, logg))
			r.Post("/confirm", controllers.IssueConfirm(deps.Alerts, logg))
		})

		r.Route("/v1/uploads", func(r chi.Router) {
			r.Post("/{kind}", controllers.UploadArtifact(deps.Uploader, cfg.Uploads, logg))
		})

		r.Route("/v1/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", controllers.AdminListCompanies(deps.Admin, logg))
				r.Post("/", controllers.AdminCreateCompany(deps.Admin, logg))
				r.Patch("/{companyId}", controllers.AdminUpdateCompany(deps.Admin, logg))
				r.Delete("/{companyId}", controllers.AdminDeleteCompany(deps.Admin, deps.Alerts, logg))
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.AdminListUsers(deps.Admin, logg))
				r.Post("/", controllers.AdminCreateUser(deps.Admin, logg))
				r.Patch("/{userId}", controllers.AdminUpdateUser(deps.Admin, logg))
				r.Delete("/{userId}", controllers.AdminDeleteUser(deps.Admin, deps.Alerts, logg))
			})

			r.Route("/vessels", func(r chi.Router) {
				r.Get("/", controllers.AdminListVessels(deps.Admin, logg))
				r.Post("/", controllers.AdminCreateVessel(deps.Admin, logg))
				r.Patch("/{vesselId}", controllers.AdminUpdateVessel(deps.Admin, logg))
				r.Delete("/{vesselId}", controllers.AdminDeleteVessel(deps.Admin, deps.Alerts, logg))
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", controllers.AdminListInventory(deps.Admin, logg))
				r.Post("/", controllers.AdminCreateInventoryItem(deps.Admin, logg))
				r.Patch("/{itemId}", controllers.AdminUpdateInventoryItem(deps.Admin, logg))
				r.Delete("/{itemId}", controllers.AdminDeleteInventoryItem(deps.Admin, deps.Alerts, logg))
			})
		})
	})

	return r
}
