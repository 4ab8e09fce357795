package middleware

import "context"

type contextKey string

const (
	ctxEnrollmentID   contextKey = "enrollment_id"
	ctxEnrollmentCode contextKey = "enrollment_code"
	ctxRole           contextKey = "actor_role"
)

func EnrollmentIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxEnrollmentID).(string); ok {
		return v
	}
	return ""
}

func EnrollmentCodeFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxEnrollmentCode).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// WithEnrollmentID injects the enrollment identifier into the context.
func WithEnrollmentID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxEnrollmentID, id)
}

// WithEnrollmentCode injects the member code into the context.
func WithEnrollmentCode(ctx context.Context, code string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxEnrollmentCode, code)
}

// WithRole injects the actor role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}
