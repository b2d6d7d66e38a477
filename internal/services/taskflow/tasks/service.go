// Package tasks implements owner-scoped task operations.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/taskflow/internal/platform/errors"
	platformotel "github.com/louisbranch/taskflow/internal/platform/otel"
	"github.com/louisbranch/taskflow/internal/services/taskflow/storage"
	"github.com/louisbranch/taskflow/internal/services/taskflow/task"
)

// ErrNoOwner reports a call without an authenticated owner.
var ErrNoOwner = apperrors.New(apperrors.CodeInvalidToken, "owner is required")

// Service runs task operations for one authenticated owner per call.
type Service struct {
	store  storage.TaskStore
	tracer trace.Tracer
}

// NewService builds a task service over store.
func NewService(store storage.TaskStore) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("task store is required")
	}
	return &Service{store: store, tracer: platformotel.Tracer("tasks")}, nil
}

// List returns the owner's tasks in creation order.
func (s *Service) List(ctx context.Context, ownerID int64) ([]task.Task, error) {
	ctx, span := s.start(ctx, "tasks.List", ownerID)
	defer span.End()

	if ownerID <= 0 {
		return nil, recordSpanError(span, ErrNoOwner)
	}
	items, err := s.store.ListTasks(ctx, ownerID)
	if err != nil {
		return nil, recordSpanError(span, apperrors.Wrap(apperrors.CodeStorageFailure, "list tasks", err))
	}
	span.SetAttributes(attribute.Int("task.count", len(items)))
	return items, nil
}

// Create adds a pending task owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID int64, title string) (task.Task, error) {
	ctx, span := s.start(ctx, "tasks.Create", ownerID)
	defer span.End()

	if ownerID <= 0 {
		return task.Task{}, recordSpanError(span, ErrNoOwner)
	}
	normalized, err := task.NormalizeTitle(title)
	if err != nil {
		return task.Task{}, recordSpanError(span, err)
	}
	created, err := s.store.CreateTask(ctx, task.Task{
		Title:   normalized,
		Status:  task.StatusPending,
		OwnerID: ownerID,
	})
	if err != nil {
		return task.Task{}, recordSpanError(span, apperrors.Wrap(apperrors.CodeStorageFailure, "create task", err))
	}
	span.SetAttributes(attribute.String("task.id", strconv.FormatInt(created.ID, 10)))
	return created, nil
}

// UpdateStatus sets the status of a task the owner holds. Missing and
// foreign tasks both report NotFound.
func (s *Service) UpdateStatus(ctx context.Context, ownerID int64, taskID int64, status task.Status) error {
	ctx, span := s.start(ctx, "tasks.UpdateStatus", ownerID)
	defer span.End()

	if ownerID <= 0 {
		return recordSpanError(span, ErrNoOwner)
	}
	parsed, err := task.ParseStatus(string(status))
	if err != nil {
		return recordSpanError(span, err)
	}
	span.SetAttributes(attribute.String("task.id", strconv.FormatInt(taskID, 10)), attribute.String("task.status", string(parsed)))
	if taskID <= 0 {
		return recordSpanError(span, storage.ErrNotFound)
	}
	if err := s.store.UpdateTaskStatus(ctx, ownerID, taskID, parsed); err != nil {
		return recordSpanError(span, mapStoreError("update task status", err))
	}
	return nil
}

// Delete removes a task the owner holds. Missing and foreign tasks both
// report NotFound.
func (s *Service) Delete(ctx context.Context, ownerID int64, taskID int64) error {
	ctx, span := s.start(ctx, "tasks.Delete", ownerID)
	defer span.End()

	if ownerID <= 0 {
		return recordSpanError(span, ErrNoOwner)
	}
	span.SetAttributes(attribute.String("task.id", strconv.FormatInt(taskID, 10)))
	if taskID <= 0 {
		return recordSpanError(span, storage.ErrNotFound)
	}
	if err := s.store.DeleteTask(ctx, ownerID, taskID); err != nil {
		return recordSpanError(span, mapStoreError("delete task", err))
	}
	return nil
}

func (s *Service) start(ctx context.Context, name string, ownerID int64) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("user.id", strconv.FormatInt(ownerID, 10))))
}

func mapStoreError(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return storage.ErrNotFound
	}
	return apperrors.Wrap(apperrors.CodeStorageFailure, op, err)
}

func recordSpanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(apperrors.GetCode(err)))
	return err
}
