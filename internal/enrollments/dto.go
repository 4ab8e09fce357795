package enrollments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prelaunchhq/enrollment-backend/pkg/db/models"
	"github.com/prelaunchhq/enrollment-backend/pkg/enums"
)

// EnrollmentDTO is the transport shape of an enrollment. Field names stay
// camelCase for the SPA; the password hash never leaves the model layer.
type EnrollmentDTO struct {
	ID             uuid.UUID              `json:"id"`
	EnrollmentID   string                 `json:"enrollmentId"`
	FirstName      string                 `json:"firstName"`
	LastName       string                 `json:"lastName"`
	Email          string                 `json:"email"`
	Phone          *string                `json:"phone,omitempty"`
	Address        *string                `json:"address,omitempty"`
	City           *string                `json:"city,omitempty"`
	State          *string                `json:"state,omitempty"`
	ZipCode        *string                `json:"zipCode,omitempty"`
	Country        *string                `json:"country,omitempty"`
	SponsorName    string                 `json:"sponsorName"`
	SponsorID      *string                `json:"sponsorId,omitempty"`
	Package        enums.PackageTier      `json:"package"`
	PaymentMethod  *enums.PaymentMethod   `json:"paymentMethod,omitempty"`
	Status         enums.EnrollmentStatus `json:"status"`
	FastStartBonus decimal.Decimal        `json:"fastStartBonus"`
	PersonalVolume decimal.Decimal        `json:"personalVolume"`
	TeamVolume     decimal.Decimal        `json:"teamVolume"`
	SalesVolume    decimal.Decimal        `json:"salesVolume"`
	Role           enums.MemberRole       `json:"role"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// FromModel maps a persisted enrollment to its transport shape.
func FromModel(e *models.Enrollment) *EnrollmentDTO {
	if e == nil {
		return nil
	}
	return &EnrollmentDTO{
		ID:             e.ID,
		EnrollmentID:   e.Code,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		Phone:          e.Phone,
		Address:        e.Address,
		City:           e.City,
		State:          e.State,
		ZipCode:        e.ZipCode,
		Country:        e.Country,
		SponsorName:    e.SponsorName,
		SponsorID:      e.SponsorID,
		Package:        e.Package,
		PaymentMethod:  e.PaymentMethod,
		Status:         e.Status,
		FastStartBonus: e.FastStartBonus,
		PersonalVolume: e.PersonalVolume,
		TeamVolume:     e.TeamVolume,
		SalesVolume:    e.SalesVolume,
		Role:           e.Role,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// CreateEnrollmentRequest is the public sign-up payload.
type CreateEnrollmentRequest struct {
	FirstName     string  `json:"firstName" validate:"required,max=100"`
	LastName      string  `json:"lastName" validate:"required,max=100"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Address       *string `json:"address,omitempty" validate:"omitempty,max=255"`
	City          *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State         *string `json:"state,omitempty" validate:"omitempty,max=100"`
	ZipCode       *string `json:"zipCode,omitempty" validate:"omitempty,max=20"`
	Country       *string `json:"country,omitempty" validate:"omitempty,max=100"`
	SponsorName   string  `json:"sponsorName" validate:"required,max=200"`
	Package       string  `json:"package" validate:"required"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	Password      *string `json:"password,omitempty" validate:"omitempty,min=8,max=128"`
}

// CreateEnrollmentResponse bundles the new record with its session credentials.
type CreateEnrollmentResponse struct {
	Enrollment         *EnrollmentDTO `json:"enrollment"`
	AccessToken        string         `json:"accessToken"`
	RefreshToken       string         `json:"refreshToken"`
	TempPasswordIssued bool           `json:"tempPasswordIssued"`
}

// UpdateEnrollmentRequest carries a partial update. Nil fields are untouched.
// Role, status and the volume figures only take effect for admin callers.
type UpdateEnrollmentRequest struct {
	FirstName     *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName      *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Address       *string `json:"address,omitempty" validate:"omitempty,max=255"`
	City          *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State         *string `json:"state,omitempty" validate:"omitempty,max=100"`
	ZipCode       *string `json:"zipCode,omitempty" validate:"omitempty,max=20"`
	Country       *string `json:"country,omitempty" validate:"omitempty,max=100"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`

	Role   *string `json:"role,omitempty"`
	Status *string `json:"status,omitempty"`
}

// UpdateStatusRequest patches the enrollment status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateTeamVolumeRequest sets the team volume; sales volume is recomputed.
type UpdateTeamVolumeRequest struct {
	TeamVolume decimal.Decimal `json:"teamVolume" validate:"required"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
}

// ListEnrollmentsResponse is a cursor page of enrollments.
type ListEnrollmentsResponse struct {
	Enrollments []*EnrollmentDTO `json:"enrollments"`
	NextCursor  string           `json:"nextCursor,omitempty"`
}
