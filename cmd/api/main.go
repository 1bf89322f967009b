package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/blueanchorhq/procurement-gateway/api/routes"
	"github.com/blueanchorhq/procurement-gateway/internal/adminpanel"
	"github.com/blueanchorhq/procurement-gateway/internal/alerts"
	"github.com/blueanchorhq/procurement-gateway/internal/auth"
	"github.com/blueanchorhq/procurement-gateway/internal/notifications"
	"github.com/blueanchorhq/procurement-gateway/internal/reconcile"
	"github.com/blueanchorhq/procurement-gateway/internal/requests"
	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	"github.com/blueanchorhq/procurement-gateway/internal/vendors"
	"github.com/blueanchorhq/procurement-gateway/pkg/auth/session"
	"github.com/blueanchorhq/procurement-gateway/pkg/config"
	"github.com/blueanchorhq/procurement-gateway/pkg/logger"
	"github.com/blueanchorhq/procurement-gateway/pkg/metrics"
	"github.com/blueanchorhq/procurement-gateway/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	upstreamMetrics := metrics.NewUpstreamMetrics(prometheus.DefaultRegisterer)
	backend, err := upstream.NewClient(cfg.Upstream, upstream.WithMetrics(upstreamMetrics))
	if err != nil {
		logg.Error(context.Background(), "failed to create upstream client", err)
		os.Exit(1)
	}

	saver, err := reconcile.NewSaver(backend, backend, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create saver", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Backend:        backend,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	requestsService, err := requests.NewService(requests.ServiceParams{
		Backend: backend,
		Saver:   saver,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create requests service", err)
		os.Exit(1)
	}

	vendorsService, err := vendors.NewService(backend)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendors service", err)
		os.Exit(1)
	}

	adminService, err := adminpanel.NewService(backend)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(backend)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	alertsService, err := alerts.NewService(redisClient, cfg.Alerts, cfg.Confirm)
	if err != nil {
		logg.Error(context.Background(), "failed to create alerts service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"upstream": cfg.Upstream.BaseURL,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			Redis:         redisClient,
			Sessions:      sessionManager,
			Auth:          authService,
			Requests:      requestsService,
			Vendors:       vendorsService,
			Admin:         adminService,
			Notifications: notificationsService,
			Alerts:        alertsService,
			Uploader:      backend,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
