// Package requestctx carries per-request identity through context.
package requestctx

import "context"

// userContextKey is the context key for the authenticated subject.
type userContextKey struct{}

// requestIDContextKey is the context key for the request correlation id.
type requestIDContextKey struct{}

// Subject identifies the authenticated caller of a request.
type Subject struct {
	UserID int64
	Name   string
}

// WithSubject stores the authenticated subject in context.
func WithSubject(ctx context.Context, subject Subject) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userContextKey{}, subject)
}

// SubjectFromContext returns the authenticated subject stored in context.
func SubjectFromContext(ctx context.Context) (Subject, bool) {
	if ctx == nil {
		return Subject{}, false
	}
	subject, ok := ctx.Value(userContextKey{}).(Subject)
	return subject, ok
}

// WithUserID stores a user identifier in context.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return WithSubject(ctx, Subject{UserID: userID})
}

// UserIDFromContext returns the user identifier stored in context, or zero.
func UserIDFromContext(ctx context.Context) int64 {
	subject, _ := SubjectFromContext(ctx)
	return subject.UserID
}

// WithRequestID stores a request correlation id in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// RequestIDFromContext returns the request correlation id stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey{}).(string)
	return value
}
