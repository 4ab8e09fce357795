package auth

import "github.com/prelaunchhq/enrollment-backend/internal/enrollments"

// LoginRequest carries member credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the credential pair plus the member's record.
type LoginResponse struct {
	AccessToken  string                     `json:"accessToken"`
	RefreshToken string                     `json:"refreshToken"`
	Enrollment   *enrollments.EnrollmentDTO `json:"enrollment"`
}
