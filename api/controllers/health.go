package controllers

import (
	"net/http"

	"github.com/r70610363/swiftcart-backend/api/responses"
	"github.com/r70610363/swiftcart-backend/pkg/config"
	pkgerrors "github.com/r70610363/swiftcart-backend/pkg/errors"
	"github.com/r70610363/swiftcart-backend/pkg/kvstore"
	"github.com/r70610363/swiftcart-backend/pkg/logger"
)

// HealthLive answers as long as the process is up.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

// HealthReady additionally proves the store answers.
func HealthReady(cfg *config.Config, logg *logger.Logger, store kvstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}
		if err := store.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store ping"))
			return
		}
		responses.WriteSuccess(w, map[string]string{
			"status": "ready",
			"store":  cfg.Store.Driver,
		})
	}
}
