package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/prelaunchhq/enrollment-backend/internal/enrollments"
	pkgAuth "github.com/prelaunchhq/enrollment-backend/pkg/auth"
	"github.com/prelaunchhq/enrollment-backend/pkg/auth/session"
	"github.com/prelaunchhq/enrollment-backend/pkg/config"
	"github.com/prelaunchhq/enrollment-backend/pkg/db/models"
	pkgerrors "github.com/prelaunchhq/enrollment-backend/pkg/errors"
	"github.com/prelaunchhq/enrollment-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Issue(ctx context.Context, e *models.Enrollment) (accessToken string, refreshToken string, err error)
}

type enrollmentRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Enrollment, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
}

type service struct {
	repo    enrollmentRepository
	session sessionManager
	jwtCfg  config.JWTConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Repo           enrollmentRepository
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("enrollment repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		repo:    params.Repo,
		session: params.SessionManager,
		jwtCfg:  params.JWTConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	e, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := s.Issue(ctx, e)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Enrollment:   enrollments.FromModel(e),
	}, nil
}

// Issue mints a JWT for the enrollment and opens a refresh session for it.
// Used by login and by sign-up, which returns the same credential pair.
func (s *service) Issue(ctx context.Context, e *models.Enrollment) (string, string, error) {
	if e == nil {
		return "", "", pkgerrors.New(pkgerrors.CodeInternal, "enrollment is required")
	}

	accessID := session.NewAccessID()
	payload := pkgAuth.AccessTokenPayload{
		EnrollmentID: e.ID,
		Code:         e.Code,
		Role:         e.Role,
		JTI:          accessID,
	}
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now().UTC(), payload)
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}
	return accessToken, refreshToken, nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.Enrollment, error) {
	input := strings.TrimSpace(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	e, err := s.repo.FindByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup enrollment")
	}

	valid, err := security.VerifyPassword(password, e.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !e.Status.CanLogin() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return e, nil
}
