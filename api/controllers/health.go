package controllers

import (
	"net/http"

	"github.com/contactlearncert-blip/dianda-store/api/responses"
	"github.com/contactlearncert-blip/dianda-store/internal/catalog"
	"github.com/contactlearncert-blip/dianda-store/pkg/config"
	"github.com/contactlearncert-blip/dianda-store/pkg/db"
	pkgerrors "github.com/contactlearncert-blip/dianda-store/pkg/errors"
	"github.com/contactlearncert-blip/dianda-store/pkg/logger"
	"github.com/contactlearncert-blip/dianda-store/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Dianda-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the database, the catalog, and, when configured, the
// catalog cache. A nil cache pinger means the cache is disabled and is
// reported as skipped.
func HealthReady(cfg *config.Config, dbP db.Pinger, cache redis.Pinger, products catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Dianda-Env", cfg.App.Env)

		checks := map[string]string{"db": "ok", "cache": "skipped", "catalog": "ok"}

		if dbP == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "database unavailable"))
			return
		}
		if err := dbP.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database not ready"))
			return
		}

		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache not ready"))
				return
			}
			checks["cache"] = "ok"
		}

		if products == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		if err := products.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog not ready"))
			return
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
