package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/louisbranch/taskflow/internal/platform/errors"
	"github.com/louisbranch/taskflow/internal/platform/requestctx"
	"github.com/louisbranch/taskflow/internal/services/taskflow/user"
)

func TestGuardRejectsMissingHeader(t *testing.T) {
	handler := Guard(newTestIssuer(t, nil), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tarefas", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestGuardRejectsMalformedHeader(t *testing.T) {
	handler := Guard(newTestIssuer(t, nil), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	for _, header := range []string{"Token abc", "Bearer", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/api/tarefas", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want %d", header, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestGuardStoresSubject(t *testing.T) {
	issuer := newTestIssuer(t, nil)
	token, _, err := issuer.Issue(user.User{ID: 3, Name: "Bia"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got requestctx.Subject
	handler := Guard(issuer, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := requestctx.SubjectFromContext(r.Context())
		if !ok {
			t.Fatal("expected subject in context")
		}
		got = subject
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tarefas", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got.UserID != 3 || got.Name != "Bia" {
		t.Fatalf("unexpected subject: %+v", got)
	}
}

func TestGuardUsesErrorWriter(t *testing.T) {
	var gotCode apperrors.Code
	onError := func(w http.ResponseWriter, r *http.Request, err error) {
		gotCode = apperrors.GetCode(err)
		w.WriteHeader(http.StatusTeapot)
	}
	handler := Guard(newTestIssuer(t, nil), onError)(http.NotFoundHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tarefas", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if gotCode != apperrors.CodeMissingToken {
		t.Fatalf("code = %q, want %q", gotCode, apperrors.CodeMissingToken)
	}
}
