// Package storage defines the persistence contracts for identities, tasks and
// the auth audit trail.
package storage

import (
	"context"
	"time"

	"github.com/louisbranch/taskflow/internal/platform/errors"
	"github.com/louisbranch/taskflow/internal/services/taskflow/task"
	"github.com/louisbranch/taskflow/internal/services/taskflow/user"
)

var (
	// ErrNotFound indicates a requested record is missing or not owned by the caller.
	ErrNotFound = errors.New(errors.CodeNotFound, "record not found")
	// ErrDuplicateEmail indicates the email uniqueness constraint rejected an insert.
	ErrDuplicateEmail = errors.New(errors.CodeDuplicateEmail, "email already registered")
)

// UserStore persists identity records.
type UserStore interface {
	// CreateUser inserts u and returns its assigned id. A taken email yields ErrDuplicateEmail.
	CreateUser(ctx context.Context, u user.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
}

// TaskStore persists tasks. Every read and write is filtered by owner.
type TaskStore interface {
	// ListTasks returns the owner's tasks in insertion order.
	ListTasks(ctx context.Context, ownerID int64) ([]task.Task, error)
	// CreateTask inserts t and returns it with its assigned id.
	CreateTask(ctx context.Context, t task.Task) (task.Task, error)
	// UpdateTaskStatus returns ErrNotFound when no row matches both ids.
	UpdateTaskStatus(ctx context.Context, ownerID int64, taskID int64, status task.Status) error
	// DeleteTask returns ErrNotFound when no row matches both ids.
	DeleteTask(ctx context.Context, ownerID int64, taskID int64) error
}

// AuditEventType names an auth outcome.
type AuditEventType string

const (
	AuditUserRegistered AuditEventType = "user.registered"
	AuditRegisterFailed AuditEventType = "user.register_failed"
	AuditLoginSucceeded AuditEventType = "login.succeeded"
	AuditLoginFailed    AuditEventType = "login.failed"
)

// AuditEvent records one auth outcome. It never carries credentials.
type AuditEvent struct {
	ID         int64
	Type       AuditEventType
	UserID     int64 // zero when the outcome has no identity
	Email      string
	Detail     string
	RequestID  string
	OccurredAt time.Time
}

// AuditStore appends auth audit events.
type AuditStore interface {
	AppendAuditEvent(ctx context.Context, evt AuditEvent) error
}
