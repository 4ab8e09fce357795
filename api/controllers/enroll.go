package controllers

import (
	"net/http"

	"github.com/prelaunchhq/enrollment-backend/api/responses"
	"github.com/prelaunchhq/enrollment-backend/api/validators"
	"github.com/prelaunchhq/enrollment-backend/internal/enrollments"
	pkgerrors "github.com/prelaunchhq/enrollment-backend/pkg/errors"
	"github.com/prelaunchhq/enrollment-backend/pkg/logger"
)

// EnrollmentCreate handles the public sign-up endpoint. The new member is
// returned with a credential pair so the SPA can continue without a separate
// login round-trip.
func EnrollmentCreate(svc enrollments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "enrollment service unavailable"))
			return
		}

		var body enrollments.CreateEnrollmentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set(tokenHeader, result.AccessToken)
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
