// Package user defines the TaskFlow identity record and registration input rules.
package user

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/taskflow/internal/platform/errors"
	"golang.org/x/text/unicode/norm"
)

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

var (
	// ErrEmptyName indicates a missing display name.
	ErrEmptyName = apperrors.WithMetadata(apperrors.CodeInvalidInput, "name is required", map[string]string{"Field": "nome"})
	// ErrInvalidEmail indicates a missing or malformed email address.
	ErrInvalidEmail = apperrors.WithMetadata(apperrors.CodeInvalidInput, "email is invalid", map[string]string{"Field": "email"})
	// ErrEmptyPassword indicates a missing password.
	ErrEmptyPassword = apperrors.WithMetadata(apperrors.CodeInvalidInput, "password is required", map[string]string{"Field": "senha"})
	// ErrPasswordTooLong indicates a password longer than MaxPasswordBytes.
	ErrPasswordTooLong = apperrors.WithMetadata(apperrors.CodeInvalidInput, "password exceeds 72 bytes", map[string]string{"Field": "senha"})
)

// User represents a registered identity. It is immutable once stored.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// RegistrationInput carries the untrusted fields of a sign-up request.
type RegistrationInput struct {
	Name     string
	Email    string
	Password string
}

// NormalizeRegistration trims and validates registration input.
// The password is checked for presence and length only and returned untouched.
func NormalizeRegistration(input RegistrationInput) (RegistrationInput, error) {
	input.Name = norm.NFC.String(strings.TrimSpace(input.Name))
	if input.Name == "" {
		return RegistrationInput{}, ErrEmptyName
	}
	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return RegistrationInput{}, err
	}
	input.Email = email
	if input.Password == "" {
		return RegistrationInput{}, ErrEmptyPassword
	}
	if len(input.Password) > MaxPasswordBytes {
		return RegistrationInput{}, ErrPasswordTooLong
	}
	return input, nil
}

// NormalizeEmail lower-cases and trims an address so lookups and the
// uniqueness constraint see one canonical form.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t\r\n") {
		return "", ErrInvalidEmail
	}
	return email, nil
}
