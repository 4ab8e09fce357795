package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/prelaunchhq/enrollment-backend/api/responses"
	"github.com/prelaunchhq/enrollment-backend/pkg/config"
	pkgerrors "github.com/prelaunchhq/enrollment-backend/pkg/errors"
	"github.com/prelaunchhq/enrollment-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PreLaunch-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the database and redis connections before reporting ready.
func HealthReady(cfg *config.Config, database, cache pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PreLaunch-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var err error
		if database != nil {
			err = multierr.Append(err, database.Ping(ctx))
		}
		if cache != nil {
			err = multierr.Append(err, cache.Ping(ctx))
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "readiness check"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
