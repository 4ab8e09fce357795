package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolationPgx(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "uq_enrollments_email"}

	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected any-constraint match")
	}
	if !IsUniqueViolation(err, "uq_enrollments_email") {
		t.Fatalf("expected named-constraint match")
	}
	if IsUniqueViolation(err, "uq_enrollments_code_number") {
		t.Fatalf("expected mismatch for other constraint")
	}
}

func TestIsUniqueViolationOtherPGCode(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "uq_enrollments_email"}
	if IsUniqueViolation(err, "") {
		t.Fatalf("foreign key violation must not count as unique violation")
	}
}

func TestIsUniqueViolationSQLiteMessage(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: enrollments.code_number")
	if !IsUniqueViolation(err, "uq_enrollments_code_number") {
		t.Fatalf("expected sqlite message match")
	}
	if IsUniqueViolation(err, "uq_enrollments_email") {
		t.Fatalf("expected mismatch for email constraint")
	}
}

func TestIsUniqueViolationNil(t *testing.T) {
	if IsUniqueViolation(nil, "") {
		t.Fatalf("nil error is not a violation")
	}
}
