package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint violation.
// When constraintName is provided the match is narrowed to that constraint,
// so callers can tell an enrollment-code collision apart from a duplicate
// email. Falls back to message inspection for drivers that do not expose
// typed errors (sqlite in dev).
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		if pgxErr.Code != pgUniqueViolation {
			return false
		}
		return constraintName == "" || pgxErr.ConstraintName == constraintName
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) != pgUniqueViolation {
			return false
		}
		return constraintName == "" || pqErr.Constraint == constraintName
	}

	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	return constraintName == "" || strings.Contains(msg, constraintName) || strings.Contains(msg, columnFromConstraint(constraintName))
}

// columnFromConstraint recovers the column portion of a uq_<table>_<column>
// constraint name so sqlite's "UNIQUE constraint failed: table.column"
// messages still match.
func columnFromConstraint(constraintName string) string {
	const prefix = "uq_enrollments_"
	if strings.HasPrefix(constraintName, prefix) {
		return strings.TrimPrefix(constraintName, prefix)
	}
	return constraintName
}
