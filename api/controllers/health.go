package controllers

import (
	"context"
	"net/http"

	"github.com/atelierline/storefront-gateway/api/responses"
	"github.com/atelierline/storefront-gateway/pkg/config"
	pkgerrors "github.com/atelierline/storefront-gateway/pkg/errors"
	"github.com/atelierline/storefront-gateway/pkg/logger"
)

const envHeader = "X-Storefront-Env"

// Pinger is any dependency with a connectivity check.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the cache and the commerce backend before reporting
// ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, cache, backend Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]string{}
		failed := false

		check := func(name string, p Pinger) {
			if p == nil {
				checks[name] = "skipped"
				return
			}
			if err := p.Ping(r.Context()); err != nil {
				checks[name] = "down"
				failed = true
				if logg != nil {
					logg.Error(r.Context(), "health."+name, err)
				}
				return
			}
			checks[name] = "ok"
		}

		check("redis", cache)
		check("backend", backend)

		if failed {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeUnavailable, "dependency unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
