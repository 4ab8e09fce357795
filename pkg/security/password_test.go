package security

import (
	"strings"
	"testing"

	"github.com/prelaunchhq/enrollment-backend/pkg/config"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Secret123!", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	ok, err := VerifyPassword("Secret123!", hash)
	if err != nil {
		t.Fatalf("verify password: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}

	ok, err = VerifyPassword("wrong", hash)
	if err != nil {
		t.Fatalf("verify wrong password: %v", err)
	}
	if ok {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("anything", "not-a-hash"); err != ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("", config.PasswordConfig{}); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestGenerateTempPassword(t *testing.T) {
	pw, err := GenerateTempPassword(12)
	if err != nil {
		t.Fatalf("generate temp password: %v", err)
	}
	if len(pw) != 12 {
		t.Fatalf("expected 12 chars, got %d", len(pw))
	}

	other, err := GenerateTempPassword(12)
	if err != nil {
		t.Fatalf("generate second temp password: %v", err)
	}
	if pw == other {
		t.Fatalf("expected random passwords to differ")
	}

	if _, err := GenerateTempPassword(0); err == nil {
		t.Fatalf("expected error for non-positive length")
	}
}
