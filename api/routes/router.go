package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prelaunchhq/enrollment-backend/api/controllers"
	"github.com/prelaunchhq/enrollment-backend/api/middleware"
	internalauth "github.com/prelaunchhq/enrollment-backend/internal/auth"
	"github.com/prelaunchhq/enrollment-backend/internal/enrollments"
	"github.com/prelaunchhq/enrollment-backend/pkg/auth/session"
	"github.com/prelaunchhq/enrollment-backend/pkg/config"
	"github.com/prelaunchhq/enrollment-backend/pkg/db"
	"github.com/prelaunchhq/enrollment-backend/pkg/logger"
	"github.com/prelaunchhq/enrollment-backend/pkg/metrics"
	"github.com/prelaunchhq/enrollment-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// RouterParams bundles everything the HTTP surface needs; kept flat so
// cmd/api reads like an inventory of what the process wires.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionManager sessionManager
	AuthService    internalauth.Service
	Enrollments    enrollments.Service
	Metrics        *metrics.HTTPMetrics
	Registry       prometheus.Gatherer
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(p.Metrics),
	)

	// Redis is optional in tests; without it the rate-limit wrapper is a no-op.
	limit := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if p.Redis == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, p.Redis, logg)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	enrollPolicy := middleware.NewAuthRateLimitPolicy(
		"enroll",
		cfg.AuthRateLimit.EnrollWindow,
		cfg.AuthRateLimit.EnrollIPLimit,
		cfg.AuthRateLimit.EnrollEmailLimit,
	)

	var cache redis.Pinger
	if p.Redis != nil {
		cache = p.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, cache, logg))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(limit(loginPolicy)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.SessionManager, cfg.JWT, logg))
	})

	// Public sign-up. The enrollment itself mints the credential pair, so no
	// separate register endpoint exists under /auth.
	r.With(limit(enrollPolicy)).
		Post("/api/v1/enrollments", controllers.EnrollmentCreate(p.Enrollments, logg))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))

		r.Group(func(r chi.Router) {
			r.Get("/ping", controllers.PrivatePing())

			r.Route("/v1/enrollments", func(r chi.Router) {
				r.Route("/me", func(r chi.Router) {
					r.Get("/", controllers.EnrollmentMe(p.Enrollments, logg))
					r.Put("/", controllers.EnrollmentMeUpdate(p.Enrollments, logg))
					r.Post("/password", controllers.EnrollmentChangePassword(p.Enrollments, logg))
					r.Get("/downline", controllers.EnrollmentMeDownline(p.Enrollments, logg))
				})
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", controllers.EnrollmentGet(p.Enrollments, logg))
					r.Put("/", controllers.EnrollmentUpdate(p.Enrollments, logg))
					r.Get("/downline", controllers.EnrollmentDownline(p.Enrollments, logg))
				})
			})
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))
		r.Use(middleware.RequireRole("admin", logg))
		r.Get("/ping", controllers.AdminPing())
		r.Route("/v1/enrollments", func(r chi.Router) {
			r.Get("/", controllers.AdminEnrollmentList(p.Enrollments, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.EnrollmentGet(p.Enrollments, logg))
				r.Put("/", controllers.EnrollmentUpdate(p.Enrollments, logg))
				r.Patch("/status", controllers.AdminEnrollmentStatus(p.Enrollments, logg))
				r.Patch("/team-volume", controllers.AdminEnrollmentTeamVolume(p.Enrollments, logg))
				r.Delete("/", controllers.AdminEnrollmentDelete(p.Enrollments, logg))
				r.Get("/downline", controllers.EnrollmentDownline(p.Enrollments, logg))
			})
		})
	})

	return r
}
