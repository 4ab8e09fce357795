package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/prelaunchhq/enrollment-backend/api/responses"
	pkgAuth "github.com/prelaunchhq/enrollment-backend/pkg/auth"
	"github.com/prelaunchhq/enrollment-backend/pkg/auth/session"
	"github.com/prelaunchhq/enrollment-backend/pkg/config"
	pkgerrors "github.com/prelaunchhq/enrollment-backend/pkg/errors"
	"github.com/prelaunchhq/enrollment-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxEnrollmentID, claims.EnrollmentID.String())
			ctx = context.WithValue(ctx, ctxRole, string(claims.Role))
			if claims.Code != "" {
				ctx = context.WithValue(ctx, ctxEnrollmentCode, claims.Code)
			}

			if logg != nil {
				fields := map[string]any{
					"enrollment_id": claims.EnrollmentID.String(),
					"actor_role":    string(claims.Role),
				}
				if claims.Code != "" {
					fields["enrollment_code"] = claims.Code
				}
				ctx = logg.WithFields(ctx, fields)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
