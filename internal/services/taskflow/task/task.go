// Package task defines the owner-scoped to-do record.
package task

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/taskflow/internal/platform/errors"
	"golang.org/x/text/unicode/norm"
)

// Status is the completion state of a task.
type Status string

const (
	// StatusPending marks an open task. New tasks start here.
	StatusPending Status = "pendente"
	// StatusDone marks a completed task.
	StatusDone Status = "concluida"
)

var (
	// ErrEmptyTitle indicates a title that is blank after trimming.
	ErrEmptyTitle = apperrors.WithMetadata(apperrors.CodeInvalidInput, "title is required", map[string]string{"Field": "titulo"})
	// ErrInvalidStatus indicates a status outside {pendente, concluida}.
	ErrInvalidStatus = apperrors.WithMetadata(apperrors.CodeInvalidInput, "status must be pendente or concluida", map[string]string{"Field": "status"})
)

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID        int64
	Title     string
	Status    Status
	OwnerID   int64
	CreatedAt time.Time
}

// ParseStatus validates a wire status value.
func ParseStatus(value string) (Status, error) {
	switch Status(strings.TrimSpace(value)) {
	case StatusPending:
		return StatusPending, nil
	case StatusDone:
		return StatusDone, nil
	default:
		return "", ErrInvalidStatus
	}
}

// NormalizeTitle trims and NFC-normalizes a title, rejecting blank values.
func NormalizeTitle(title string) (string, error) {
	title = norm.NFC.String(strings.TrimSpace(title))
	if title == "" {
		return "", ErrEmptyTitle
	}
	return title, nil
}
