package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prelaunchhq/enrollment-backend/internal/enrollments"
	pkgerrors "github.com/prelaunchhq/enrollment-backend/pkg/errors"
)

func TestEnrollmentCreateSuccess(t *testing.T) {
	var got enrollments.CreateEnrollmentRequest
	svc := &stubEnrollmentsService{
		createFn: func(_ context.Context, req enrollments.CreateEnrollmentRequest) (*enrollments.CreateEnrollmentResponse, error) {
			got = req
			return &enrollments.CreateEnrollmentResponse{
				Enrollment:         &enrollments.EnrollmentDTO{EnrollmentID: "PL-1000"},
				AccessToken:        "access-token",
				RefreshToken:       "refresh-token",
				TempPasswordIssued: true,
			}, nil
		},
	}

	body := strings.NewReader(`{
		"firstName": "Ada",
		"lastName": "Lovelace",
		"email": "ada@example.com",
		"sponsorName": "Grace Hopper",
		"package": "Entry Pack"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enrollments", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	EnrollmentCreate(svc, testLogger(t))(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "access-token", rec.Header().Get("X-PL-Token"))
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "Grace Hopper", got.SponsorName)
	assert.Contains(t, rec.Body.String(), `"tempPasswordIssued":true`)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestEnrollmentCreateValidation(t *testing.T) {
	svc := &stubEnrollmentsService{}

	body := strings.NewReader(`{"firstName": "Ada"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enrollments", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	EnrollmentCreate(svc, testLogger(t))(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnrollmentCreateUnknownField(t *testing.T) {
	svc := &stubEnrollmentsService{}

	body := strings.NewReader(`{"firstName": "Ada", "plan": "Entry Pack"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enrollments", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	EnrollmentCreate(svc, testLogger(t))(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnrollmentCreateDuplicateEmail(t *testing.T) {
	svc := &stubEnrollmentsService{
		createFn: func(context.Context, enrollments.CreateEnrollmentRequest) (*enrollments.CreateEnrollmentResponse, error) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already enrolled")
		},
	}

	body := strings.NewReader(`{
		"firstName": "Ada",
		"lastName": "Lovelace",
		"email": "ada@example.com",
		"sponsorName": "Grace Hopper",
		"package": "Entry Pack"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/enrollments", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	EnrollmentCreate(svc, testLogger(t))(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, rec.Header().Get("X-PL-Token"))
}
