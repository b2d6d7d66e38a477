package requestctx

import (
	"context"
	"testing"
)

func TestUserIDFromContextRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if got := UserIDFromContext(ctx); got != 42 {
		t.Fatalf("UserIDFromContext = %d, want 42", got)
	}
}

func TestUserIDFromContextEmpty(t *testing.T) {
	if got := UserIDFromContext(context.Background()); got != 0 {
		t.Fatalf("expected zero id, got %d", got)
	}
}

func TestUserIDFromContextNil(t *testing.T) {
	if got := UserIDFromContext(nil); got != 0 {
		t.Fatalf("expected zero id for nil context, got %d", got)
	}
}

func TestSubjectRoundTrip(t *testing.T) {
	ctx := WithSubject(nil, Subject{UserID: 7, Name: "Ana"})
	subject, ok := SubjectFromContext(ctx)
	if !ok {
		t.Fatal("expected subject in context")
	}
	if subject.UserID != 7 || subject.Name != "Ana" {
		t.Fatalf("unexpected subject %+v", subject)
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("RequestIDFromContext = %q, want %q", got, "req-1")
	}
}
