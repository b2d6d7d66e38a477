package httpapi

import (
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/taskflow/internal/platform/errors"
	"github.com/louisbranch/taskflow/internal/services/taskflow/user"
)

// registerRequest accepts Portuguese keys and their English aliases.
type registerRequest struct {
	Nome     string `json:"nome"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Nome  string `json:"nome"`
}

func (h *handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.auth.Register(r.Context(), user.RegistrationInput{
		Name:     firstNonEmpty(req.Nome, req.Name),
		Email:    req.Email,
		Password: firstNonEmpty(req.Senha, req.Password),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, "api.user_registered", id)
}

func (h *handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	password := firstNonEmpty(req.Senha, req.Password)
	if strings.TrimSpace(req.Email) == "" || password == "" {
		writeError(w, r, apperrors.New(apperrors.CodeInvalidInput, "email and password are required"))
		return
	}

	session, err := h.auth.Login(r.Context(), req.Email, password)
	if err != nil {
		// An unknown email is a credential failure on this route.
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			writeErrorStatus(w, r, http.StatusUnauthorized, err)
			return
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: session.Token, Nome: session.Name})
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
