package auth

import (
	"github.com/prelaunchhq/enrollment-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	EnrollmentID uuid.UUID
	Code         string
	Role         enums.MemberRole
	JTI          string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	EnrollmentID uuid.UUID        `json:"enrollment_id"`
	Code         string           `json:"enrollment_code"`
	Role         enums.MemberRole `json:"role"`
	jwt.RegisteredClaims
}
