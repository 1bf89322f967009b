package controllers

import (
	"net/http"

	"github.com/blueanchorhq/procurement-gateway/api/responses"
	"github.com/blueanchorhq/procurement-gateway/pkg/config"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/logger"
	"github.com/blueanchorhq/procurement-gateway/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Procgw-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the gateway's own dependency, Redis. The procurement
// backend is probed lazily; its failures surface per request.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisPinger redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Procgw-Env", cfg.App.Env)

		if redisPinger != nil {
			if err := redisPinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
