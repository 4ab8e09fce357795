package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prelaunchhq/enrollment-backend/api/responses"
	"github.com/prelaunchhq/enrollment-backend/api/validators"
	internalauth "github.com/prelaunchhq/enrollment-backend/internal/auth"
	pkgAuth "github.com/prelaunchhq/enrollment-backend/pkg/auth"
	"github.com/prelaunchhq/enrollment-backend/pkg/auth/session"
	"github.com/prelaunchhq/enrollment-backend/pkg/config"
	pkgerrors "github.com/prelaunchhq/enrollment-backend/pkg/errors"
	"github.com/prelaunchhq/enrollment-backend/pkg/logger"
)

const tokenHeader = "X-PL-Token"

type sessionTokenRotator interface {
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func parseBearerToken(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return token, nil
}

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc internalauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body internalauth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(tokenHeader, result.AccessToken)
		responses.WriteSuccess(w, result)
	}
}

// AuthLogout revokes the refresh mapping tied to the presented access token.
func AuthLogout(manager sessionTokenRotator, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		token, err := parseBearerToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		claims, err := pkgAuth.ParseAccessTokenAllowExpired(cfg, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
			return
		}

		if claims.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
			return
		}

		if err := manager.Revoke(r.Context(), claims.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthRefresh rotates the refresh token and issues a new access token.
func AuthRefresh(manager sessionTokenRotator, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		var body refreshRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := parseBearerToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		claims, err := pkgAuth.ParseAccessTokenAllowExpired(cfg, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
			return
		}

		if claims.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
			return
		}

		newAccessID, newRefreshToken, err := manager.Rotate(r.Context(), claims.ID, body.RefreshToken)
		if err != nil {
			if err == session.ErrInvalidRefreshToken {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session"))
			return
		}

		payload := pkgAuth.AccessTokenPayload{
			EnrollmentID: claims.EnrollmentID,
			Code:         claims.Code,
			Role:         claims.Role,
			JTI:          newAccessID,
		}

		now := time.Now().UTC()
		accessToken, err := pkgAuth.MintAccessToken(cfg, now, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt"))
			return
		}

		w.Header().Set(tokenHeader, accessToken)
		responses.WriteSuccess(w, refreshResponse{
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
		})
	}
}
