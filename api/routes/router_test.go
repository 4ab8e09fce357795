package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalauth "github.com/prelaunchhq/enrollment-backend/internal/auth"
	"github.com/prelaunchhq/enrollment-backend/internal/enrollments"
	pkgAuth "github.com/prelaunchhq/enrollment-backend/pkg/auth"
	"github.com/prelaunchhq/enrollment-backend/pkg/config"
	"github.com/prelaunchhq/enrollment-backend/pkg/db/models"
	"github.com/prelaunchhq/enrollment-backend/pkg/enums"
	pkgerrors "github.com/prelaunchhq/enrollment-backend/pkg/errors"
	"github.com/prelaunchhq/enrollment-backend/pkg/logger"
	"github.com/prelaunchhq/enrollment-backend/pkg/metrics"
	"github.com/prelaunchhq/enrollment-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(context.Context, string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(context.Context, string, string) (string, string, error) {
	return "rotated", "refresh", nil
}

func (stubSessionManager) Revoke(context.Context, string) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, internalauth.LoginRequest) (*internalauth.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
}

func (stubAuthService) Issue(context.Context, *models.Enrollment) (string, string, error) {
	return "access", "refresh", nil
}

type stubEnrollments struct{}

func (stubEnrollments) Create(_ context.Context, req enrollments.CreateEnrollmentRequest) (*enrollments.CreateEnrollmentResponse, error) {
	return &enrollments.CreateEnrollmentResponse{
		Enrollment:   &enrollments.EnrollmentDTO{ID: uuid.New(), EnrollmentID: "PL-1000", Email: req.Email},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}, nil
}

func (stubEnrollments) Get(_ context.Context, id uuid.UUID) (*enrollments.EnrollmentDTO, error) {
	return &enrollments.EnrollmentDTO{ID: id, EnrollmentID: "PL-1000"}, nil
}

func (stubEnrollments) List(context.Context, pagination.Params) (*enrollments.ListEnrollmentsResponse, error) {
	return &enrollments.ListEnrollmentsResponse{Enrollments: []*enrollments.EnrollmentDTO{}}, nil
}

func (stubEnrollments) Update(_ context.Context, id uuid.UUID, _ enrollments.UpdateEnrollmentRequest, _ enums.MemberRole) (*enrollments.EnrollmentDTO, error) {
	return &enrollments.EnrollmentDTO{ID: id}, nil
}

func (stubEnrollments) UpdateStatus(_ context.Context, id uuid.UUID, _ string) (*enrollments.EnrollmentDTO, error) {
	return &enrollments.EnrollmentDTO{ID: id}, nil
}

func (stubEnrollments) UpdateTeamVolume(_ context.Context, id uuid.UUID, _ decimal.Decimal) (*enrollments.EnrollmentDTO, error) {
	return &enrollments.EnrollmentDTO{ID: id}, nil
}

func (stubEnrollments) Delete(context.Context, uuid.UUID) error {
	return nil
}

func (stubEnrollments) Downline(context.Context, uuid.UUID) ([]*enrollments.EnrollmentDTO, error) {
	return nil, nil
}

func (stubEnrollments) ChangePassword(context.Context, uuid.UUID, enrollments.ChangePasswordRequest) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:                 "routing-test-secret",
			Issuer:                 "prelaunch-test",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("error"), Output: io.Discard})
	registry := prometheus.NewRegistry()
	return NewRouter(RouterParams{
		Config:         cfg,
		Logger:         logg,
		DB:             stubPinger{},
		SessionManager: stubSessionManager{},
		AuthService:    stubAuthService{},
		Enrollments:    stubEnrollments{},
		Metrics:        metrics.NewHTTPMetrics(registry),
		Registry:       registry,
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.MemberRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		EnrollmentID: uuid.New(),
		Code:         "PL-1000",
		Role:         role,
		JTI:          uuid.NewString(),
	})
	require.NoError(t, err)
	return token
}

func TestPublicPing(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/public/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthLiveRoute(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev", rec.Header().Get("X-PreLaunch-Env"))
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEnrollmentCreateIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
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
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "access-token", rec.Header().Get("X-PL-Token"))
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeRouteWithToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/enrollments/me", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleUser))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PL-1000")
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleUser))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, nonAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleAdmin))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminEnrollmentListRoute(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/enrollments", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.MemberRoleAdmin))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
