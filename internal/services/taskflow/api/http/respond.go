package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	apperrors "github.com/louisbranch/taskflow/internal/platform/errors"
	platformi18n "github.com/louisbranch/taskflow/internal/platform/i18n"
	"github.com/louisbranch/taskflow/internal/platform/requestctx"
	"github.com/louisbranch/taskflow/internal/services/shared/i18nhttp"
)

const maxBodyBytes = 1 << 20

// messageKeyMetadata overrides the catalog key derived from the error code.
const messageKeyMetadata = "MessageKey"

type errorResponse struct {
	Erro   string `json:"erro"`
	Codigo string `json:"codigo"`
}

type messageResponse struct {
	Mensagem string `json:"mensagem"`
	ID       int64  `json:"id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}

// writeMessage writes a localized {mensagem} body.
func writeMessage(w http.ResponseWriter, r *http.Request, key string, id int64) {
	tag := i18nhttp.TagFromContext(r.Context())
	writeJSON(w, http.StatusOK, messageResponse{Mensagem: platformi18n.Localize(tag, key), ID: id})
}

// writeError maps err to its HTTP status and writes a localized error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeErrorStatus(w, r, apperrors.GetCode(err).HTTPStatus(), err)
}

// writeErrorStatus writes err with an explicit status. Causes of server
// failures are logged and never sent to the client.
func writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := apperrors.GetCode(err)
	if code == "" || code == apperrors.CodeUnknown {
		code = apperrors.CodeStorageFailure
	}
	key := code.MessageKey()
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) && domainErr.Metadata[messageKeyMetadata] != "" {
		key = domainErr.Metadata[messageKeyMetadata]
	}
	if status >= http.StatusInternalServerError {
		log.Printf("request %s %s failed (request_id=%s): %v", r.Method, r.URL.Path, requestctx.RequestIDFromContext(r.Context()), err)
	}
	tag := i18nhttp.TagFromContext(r.Context())
	writeJSON(w, status, errorResponse{Erro: platformi18n.Localize(tag, key), Codigo: string(code)})
}

var (
	errRouteNotFound    = apperrors.WithMetadata(apperrors.CodeNotFound, "route not found", map[string]string{messageKeyMetadata: "errors.route_not_found"})
	errMethodNotAllowed = apperrors.New(apperrors.CodeMethodNotAllowed, "method not allowed")
)

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errRouteNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errMethodNotAllowed)
}

// decodeJSON reads one JSON object from the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "malformed request body", err)
	}
	return nil
}
