package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prelaunchhq/enrollment-backend/api/middleware"
	"github.com/prelaunchhq/enrollment-backend/api/responses"
	"github.com/prelaunchhq/enrollment-backend/api/validators"
	"github.com/prelaunchhq/enrollment-backend/internal/enrollments"
	"github.com/prelaunchhq/enrollment-backend/pkg/enums"
	pkgerrors "github.com/prelaunchhq/enrollment-backend/pkg/errors"
	"github.com/prelaunchhq/enrollment-backend/pkg/logger"
	"github.com/prelaunchhq/enrollment-backend/pkg/pagination"
)

func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.EnrollmentIDFromContext(r.Context())
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return id, nil
}

func actorRole(r *http.Request) enums.MemberRole {
	return enums.MemberRole(middleware.RoleFromContext(r.Context()))
}

// pathEnrollmentID resolves the {id} parameter, enforcing self-or-admin access.
func pathEnrollmentID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid enrollment id")
	}
	if actorRole(r) == enums.MemberRoleAdmin {
		return id, nil
	}
	self, err := actorID(r)
	if err != nil {
		return uuid.Nil, err
	}
	if self != id {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
	}
	return id, nil
}

// EnrollmentMe returns the caller's own record.
func EnrollmentMe(svc enrollments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// EnrollmentMeUpdate applies a self-service update; privileged fields are dropped.
func EnrollmentMeUpdate(svc enrollments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body enrollments.UpdateEnrollmentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Update(r.Context(), id, body, actorRole(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// EnrollmentChangePassword rotates the caller's password.
func EnrollmentChangePassword(svc enrollments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body enrollments.ChangePasswordRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.ChangePassword(r.Context(), id, body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "password_changed"})
	}
}

// EnrollmentMeDownline lists the caller's direct downline.
func EnrollmentMeDownline(svc enrollments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.Downline(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// EnrollmentGet returns a record by id for its owner or an admin.
func EnrollmentGet(svc enrollments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathEnrollmentID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// EnrollmentUpdate updates a record by id for its owner or an admin. The
// service strips privileged fields based on the actor's role.
func EnrollmentUpdate(svc enrollments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathEnrollmentID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body enrollments.UpdateEnrollmentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Update(r.Context(), id, body, actorRole(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// EnrollmentDownline lists the direct downline of a record by id.
func EnrollmentDownline(svc enrollments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathEnrollmentID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.Downline(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// AdminEnrollmentList pages through all enrollments, newest first.
func AdminEnrollmentList(svc enrollments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminEnrollmentStatus patches the record's status; any valid value is accepted.
func AdminEnrollmentStatus(svc enrollments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid enrollment id"))
			return
		}
		var body enrollments.UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.UpdateStatus(r.Context(), id, body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AdminEnrollmentTeamVolume sets team volume and recomputes sales volume.
func AdminEnrollmentTeamVolume(svc enrollments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid enrollment id"))
			return
		}
		var body struct {
			TeamVolume decimal.Decimal `json:"teamVolume"`
		}
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.UpdateTeamVolume(r.Context(), id, body.TeamVolume)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AdminEnrollmentDelete removes the record permanently.
func AdminEnrollmentDelete(svc enrollments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid enrollment id"))
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
