// Package errors provides structured domain errors shared by TaskFlow services.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified error.
	CodeUnknown Code = "UNKNOWN"

	// Credential errors
	CodeDuplicateEmail     Code = "DUPLICATE_EMAIL"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"

	// Session errors
	CodeMissingToken Code = "MISSING_TOKEN"
	CodeInvalidToken Code = "INVALID_TOKEN"

	// Request errors
	CodeInvalidInput     Code = "INVALID_INPUT"
	CodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"

	// Storage errors
	CodeNotFound       Code = "NOT_FOUND"
	CodeStorageFailure Code = "STORAGE_FAILURE"
)

// HTTPStatus maps domain codes to HTTP response statuses.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeDuplicateEmail, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeInvalidCredentials, CodeInvalidToken:
		return http.StatusUnauthorized
	case CodeMissingToken:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// MessageKey returns the catalog key holding the user-facing message for c.
func (c Code) MessageKey() string {
	switch c {
	case CodeDuplicateEmail:
		return "errors.duplicate_email"
	case CodeInvalidCredentials:
		return "errors.invalid_credentials"
	case CodeMissingToken:
		return "errors.missing_token"
	case CodeInvalidToken:
		return "errors.invalid_token"
	case CodeInvalidInput:
		return "errors.invalid_input"
	case CodeNotFound:
		return "errors.not_found"
	case CodeMethodNotAllowed:
		return "errors.method_not_allowed"
	default:
		return "errors.storage_failure"
	}
}
