package auth

import (
	"testing"
	"time"

	"github.com/prelaunchhq/enrollment-backend/pkg/config"
	"github.com/prelaunchhq/enrollment-backend/pkg/enums"
	"github.com/google/uuid"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "prelaunch-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	id := uuid.New()
	now := time.Now().UTC()

	signed, err := MintAccessToken(cfg, now, AccessTokenPayload{
		EnrollmentID: id,
		Code:         "PL-1000",
		Role:         enums.MemberRoleUser,
		JTI:          "session-1",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.EnrollmentID != id {
		t.Fatalf("expected enrollment id %s got %s", id, claims.EnrollmentID)
	}
	if claims.Code != "PL-1000" {
		t.Fatalf("expected code PL-1000 got %s", claims.Code)
	}
	if claims.Role != enums.MemberRoleUser {
		t.Fatalf("expected user role got %s", claims.Role)
	}
	if claims.ID != "session-1" {
		t.Fatalf("expected jti session-1 got %s", claims.ID)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{
		EnrollmentID: uuid.New(),
		Role:         enums.MemberRoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	bad := cfg
	bad.Secret = "other-secret"
	if _, err := ParseAccessToken(bad, signed); err == nil {
		t.Fatalf("expected parse failure with wrong secret")
	}
}

func TestParseAllowExpired(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().UTC().Add(-2*time.Hour), AccessTokenPayload{
		EnrollmentID: uuid.New(),
		Role:         enums.MemberRoleUser,
		JTI:          "stale",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatalf("expected expired token to fail strict parse")
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, signed)
	if err != nil {
		t.Fatalf("allow-expired parse: %v", err)
	}
	if claims.ID != "stale" {
		t.Fatalf("expected jti stale got %s", claims.ID)
	}
}

func TestMintValidation(t *testing.T) {
	cfg := testJWTConfig()
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Role: enums.MemberRole("bogus"), EnrollmentID: uuid.New()}); err == nil {
		t.Fatalf("expected invalid role error")
	}
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Role: enums.MemberRoleUser}); err == nil {
		t.Fatalf("expected missing enrollment id error")
	}
}
