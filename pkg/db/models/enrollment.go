package models

import (
	"time"

	"github.com/prelaunchhq/enrollment-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Enrollment is the single persistent entity of the pre-launch program. The
// human-facing code (PL-<n>) rides next to its numeric suffix so the database
// can enforce uniqueness of the sequence under concurrent sign-ups.
type Enrollment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code       string    `gorm:"column:code;not null;uniqueIndex:uq_enrollments_code"`
	CodeNumber int64     `gorm:"column:code_number;not null;uniqueIndex:uq_enrollments_code_number"`

	FirstName string  `gorm:"column:first_name;not null"`
	LastName  string  `gorm:"column:last_name;not null"`
	Email     string  `gorm:"type:text;not null;uniqueIndex:uq_enrollments_email"`
	Phone     *string `gorm:"column:phone"`
	Address   *string `gorm:"column:address"`
	City      *string `gorm:"column:city"`
	State     *string `gorm:"column:state"`
	ZipCode   *string `gorm:"column:zip_code"`
	Country   *string `gorm:"column:country"`

	SponsorName string  `gorm:"column:sponsor_name;not null"`
	SponsorID   *string `gorm:"column:sponsor_id"`

	Package       enums.PackageTier      `gorm:"column:package;not null"`
	PaymentMethod *enums.PaymentMethod   `gorm:"column:payment_method"`
	Status        enums.EnrollmentStatus `gorm:"column:status;not null;default:Pending"`

	FastStartBonus decimal.Decimal `gorm:"column:fast_start_bonus;type:numeric(12,2);not null"`
	PersonalVolume decimal.Decimal `gorm:"column:personal_volume;type:numeric(12,2);not null"`
	TeamVolume     decimal.Decimal `gorm:"column:team_volume;type:numeric(12,2);not null"`
	SalesVolume    decimal.Decimal `gorm:"column:sales_volume;type:numeric(12,2);not null"`

	Role         enums.MemberRole `gorm:"column:role;not null;default:user"`
	PasswordHash string           `gorm:"column:password_hash;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
