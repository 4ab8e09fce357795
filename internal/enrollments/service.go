package enrollments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/prelaunchhq/enrollment-backend/pkg/config"
	"github.com/prelaunchhq/enrollment-backend/pkg/db"
	"github.com/prelaunchhq/enrollment-backend/pkg/db/models"
	"github.com/prelaunchhq/enrollment-backend/pkg/enums"
	pkgerrors "github.com/prelaunchhq/enrollment-backend/pkg/errors"
	"github.com/prelaunchhq/enrollment-backend/pkg/pagination"
	"github.com/prelaunchhq/enrollment-backend/pkg/security"
)

const (
	codeAllocationAttempts = 3
	codeAllocationBackoff  = 25 * time.Millisecond
)

// Service defines the registrar behavior needed by the controllers.
type Service interface {
	Create(ctx context.Context, req CreateEnrollmentRequest) (*CreateEnrollmentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*EnrollmentDTO, error)
	List(ctx context.Context, params pagination.Params) (*ListEnrollmentsResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateEnrollmentRequest, actorRole enums.MemberRole) (*EnrollmentDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*EnrollmentDTO, error)
	UpdateTeamVolume(ctx context.Context, id uuid.UUID, team decimal.Decimal) (*EnrollmentDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Downline(ctx context.Context, id uuid.UUID) ([]*EnrollmentDTO, error)
	ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error
}

type repository interface {
	Create(ctx context.Context, e *models.Enrollment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error)
	FindByCode(ctx context.Context, code string) (*models.Enrollment, error)
	FindByEmail(ctx context.Context, email string) (*models.Enrollment, error)
	MaxCodeNumber(ctx context.Context) (int64, error)
	FindByName(ctx context.Context, firstName, lastName string) ([]models.Enrollment, error)
	List(ctx context.Context, params pagination.Params) ([]models.Enrollment, error)
	ListBySponsorID(ctx context.Context, sponsorCode string) ([]models.Enrollment, error)
	Update(ctx context.Context, id uuid.UUID, columns map[string]any) error
	UpdateVolumes(ctx context.Context, id uuid.UUID, team, sales decimal.Decimal) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type credentialIssuer interface {
	Issue(ctx context.Context, e *models.Enrollment) (accessToken string, refreshToken string, err error)
}

type service struct {
	tx          transactor
	repo        repository
	repoForTx   func(tx *gorm.DB) repository
	issuer      credentialIssuer
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build the registrar.
type ServiceParams struct {
	Transactor     transactor
	Repo           repository
	RepoForTx      func(tx *gorm.DB) repository
	Issuer         credentialIssuer
	PasswordConfig config.PasswordConfig
}

// NewService constructs the registrar with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Transactor == nil {
		return nil, fmt.Errorf("transactor is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if params.Issuer == nil {
		return nil, fmt.Errorf("credential issuer is required")
	}
	repoForTx := params.RepoForTx
	if repoForTx == nil {
		repoForTx = func(tx *gorm.DB) repository { return NewRepository(tx) }
	}
	return &service{
		tx:          params.Transactor,
		repo:        params.Repo,
		repoForTx:   repoForTx,
		issuer:      params.Issuer,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// FullName renders the member's display name.
func FullName(e *models.Enrollment) string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (s *service) Create(ctx context.Context, req CreateEnrollmentRequest) (*CreateEnrollmentResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	tier, err := enums.ParsePackageTier(req.Package)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid package")
	}
	defaults, ok := DefaultsForPackage(tier)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid package")
	}

	var paymentMethod *enums.PaymentMethod
	if req.PaymentMethod != nil && strings.TrimSpace(*req.PaymentMethod) != "" {
		parsed, err := enums.ParsePaymentMethod(*req.PaymentMethod)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
		}
		paymentMethod = &parsed
	}

	password := ""
	tempIssued := false
	if req.Password != nil && *req.Password != "" {
		password = *req.Password
	} else {
		generated, err := security.GenerateTempPassword(s.passwordCfg.TempPasswordLen)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
		}
		password = generated
		tempIssued = true
	}
	passwordHash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	sponsorID := s.resolveSponsor(ctx, req.SponsorName)

	enrollment := &models.Enrollment{
		ID:             uuid.New(),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          email,
		Phone:          req.Phone,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		ZipCode:        req.ZipCode,
		Country:        req.Country,
		SponsorName:    strings.TrimSpace(req.SponsorName),
		SponsorID:      sponsorID,
		Package:        tier,
		PaymentMethod:  paymentMethod,
		Status:         enums.EnrollmentStatusPending,
		FastStartBonus: defaults.FastStartBonus,
		PersonalVolume: defaults.PersonalVolume,
		TeamVolume:     decimal.Zero,
		SalesVolume:    defaults.PersonalVolume,
		Role:           enums.MemberRoleUser,
		PasswordHash:   passwordHash,
	}

	if err := s.persistWithCodeRetry(ctx, enrollment); err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := s.issuer.Issue(ctx, enrollment)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue credentials")
	}

	return &CreateEnrollmentResponse{
		Enrollment:         FromModel(enrollment),
		AccessToken:        accessToken,
		RefreshToken:       refreshToken,
		TempPasswordIssued: tempIssued,
	}, nil
}

// persistWithCodeRetry allocates the next member code and inserts the record
// in one transaction. A collision on the code sequence (two sign-ups computing
// the same max) is retried with a fresh read; a duplicate email is terminal.
func (s *service) persistWithCodeRetry(ctx context.Context, enrollment *models.Enrollment) error {
	backoff := retry.WithMaxRetries(codeAllocationAttempts, retry.NewConstant(codeAllocationBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repoForTx(tx)
			max, err := repo.MaxCodeNumber(ctx)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read code sequence")
			}
			n := nextCodeNumber(max)
			enrollment.CodeNumber = n
			enrollment.Code = FormatCode(n)
			return repo.Create(ctx, enrollment)
		})
		if txErr == nil {
			return nil
		}
		if db.IsUniqueViolation(txErr, "uq_enrollments_email") {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already enrolled")
		}
		if db.IsUniqueViolation(txErr, "uq_enrollments_code_number") ||
			db.IsUniqueViolation(txErr, "uq_enrollments_code") {
			return retry.RetryableError(txErr)
		}
		return txErr
	})
	if err == nil {
		return nil
	}
	if appErr := pkgerrors.As(err); appErr != nil {
		return appErr
	}
	if db.IsUniqueViolation(err, "uq_enrollments_code_number") ||
		db.IsUniqueViolation(err, "uq_enrollments_code") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "code allocation contention, retry")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create enrollment")
}

// resolveSponsor matches the free-text sponsor name against existing members.
// Anything short of exactly one case-insensitive match leaves the link unset;
// sign-up never fails on sponsor resolution.
func (s *service) resolveSponsor(ctx context.Context, sponsorName string) *string {
	parts, ok := SplitSponsorName(sponsorName)
	if !ok {
		return nil
	}
	matches, err := s.repo.FindByName(ctx, parts.FirstName, parts.LastName)
	if err != nil || len(matches) != 1 {
		return nil
	}
	code := matches[0].Code
	return &code
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*EnrollmentDTO, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(e), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ListEnrollmentsResponse, error) {
	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list enrollments")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	nextCursor := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	dtos := make([]*EnrollmentDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, FromModel(&rows[i]))
	}
	return &ListEnrollmentsResponse{Enrollments: dtos, NextCursor: nextCursor}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateEnrollmentRequest, actorRole enums.MemberRole) (*EnrollmentDTO, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	columns := map[string]any{}
	setString := func(column string, value *string) {
		if value != nil {
			columns[column] = strings.TrimSpace(*value)
		}
	}
	setString("first_name", req.FirstName)
	setString("last_name", req.LastName)
	setString("phone", req.Phone)
	setString("address", req.Address)
	setString("city", req.City)
	setString("state", req.State)
	setString("zip_code", req.ZipCode)
	setString("country", req.Country)

	if req.Email != nil {
		columns["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.PaymentMethod != nil {
		parsed, err := enums.ParsePaymentMethod(*req.PaymentMethod)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
		}
		columns["payment_method"] = parsed
	}

	// role and status only move for admins; member self-service drops them
	if actorRole == enums.MemberRoleAdmin {
		if req.Role != nil {
			parsed, err := enums.ParseMemberRole(*req.Role)
			if err != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
			}
			columns["role"] = parsed
		}
		if req.Status != nil {
			parsed, err := enums.ParseEnrollmentStatus(*req.Status)
			if err != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
			}
			columns["status"] = parsed
		}
	}

	if len(columns) > 0 {
		if err := s.repo.Update(ctx, id, columns); err != nil {
			if db.IsUniqueViolation(err, "uq_enrollments_email") {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already enrolled")
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "enrollment not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update enrollment")
		}
	}

	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(e), nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*EnrollmentDTO, error) {
	parsed, err := enums.ParseEnrollmentStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}
	if err := s.repo.Update(ctx, id, map[string]any{"status": parsed}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "enrollment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update status")
	}
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(e), nil
}

func (s *service) UpdateTeamVolume(ctx context.Context, id uuid.UUID, team decimal.Decimal) (*EnrollmentDTO, error) {
	if team.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "team volume cannot be negative")
	}
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	sales := e.PersonalVolume.Add(team)
	if err := s.repo.UpdateVolumes(ctx, id, team, sales); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "enrollment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update team volume")
	}

	e.TeamVolume = team
	e.SalesVolume = sales
	return FromModel(e), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "enrollment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete enrollment")
	}
	return nil
}

func (s *service) Downline(ctx context.Context, id uuid.UUID) ([]*EnrollmentDTO, error) {
	e, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListBySponsorID(ctx, e.Code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list downline")
	}
	dtos := make([]*EnrollmentDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error {
	e, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	valid, err := security.VerifyPassword(req.CurrentPassword, e.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, id, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store password")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Enrollment, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "enrollment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load enrollment")
	}
	return e, nil
}
