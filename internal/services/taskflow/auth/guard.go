package auth

import (
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/taskflow/internal/platform/errors"
	"github.com/louisbranch/taskflow/internal/platform/requestctx"
)

const bearerPrefix = "Bearer "

// ErrMissingToken reports a protected request with no Authorization header.
var ErrMissingToken = apperrors.New(apperrors.CodeMissingToken, "token not provided")

// Verifier checks a raw bearer token.
type Verifier interface {
	Verify(token string) (requestctx.Subject, error)
}

// ErrorWriter renders a guard rejection.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Guard rejects requests without a valid bearer token and stores the
// verified subject in the request context.
func Guard(verifier Verifier, onError ErrorWriter) func(http.Handler) http.Handler {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), apperrors.GetCode(err).HTTPStatus())
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := Authenticate(verifier, r.Header.Get("Authorization"))
			if err != nil {
				onError(w, r, err)
				return
			}
			ctx := requestctx.WithSubject(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authenticate resolves an Authorization header value to a subject.
// An absent header is ErrMissingToken; anything else that fails is an
// invalid token.
func Authenticate(verifier Verifier, header string) (requestctx.Subject, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return requestctx.Subject{}, ErrMissingToken
	}
	if verifier == nil {
		return requestctx.Subject{}, ErrInvalidToken
	}
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return requestctx.Subject{}, ErrInvalidToken
	}
	return verifier.Verify(header[len(bearerPrefix):])
}
