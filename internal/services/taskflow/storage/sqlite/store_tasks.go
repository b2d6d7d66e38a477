package sqlite

import (
	"context"
	"fmt"

	"github.com/louisbranch/taskflow/internal/services/taskflow/storage"
	"github.com/louisbranch/taskflow/internal/services/taskflow/task"
)

// ListTasks returns every task owned by ownerID in insertion order.
func (s *Store) ListTasks(ctx context.Context, ownerID int64) ([]task.Task, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if ownerID <= 0 {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, titulo, status, usuario_id, criado_em
		   FROM tarefas
		  WHERE usuario_id = ?
		  ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		var (
			t         task.Task
			status    string
			createdAt int64
		)
		if err := rows.Scan(&t.ID, &t.Title, &status, &t.OwnerID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Status = task.Status(status)
		t.CreatedAt = fromMillis(createdAt)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask inserts t for its owner. An empty status defaults to pending.
func (s *Store) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	if err := s.ready(ctx); err != nil {
		return task.Task{}, err
	}
	if t.OwnerID <= 0 {
		return task.Task{}, fmt.Errorf("owner id is required")
	}
	if t.Title == "" {
		return task.Task{}, fmt.Errorf("task title is required")
	}
	if t.Status == "" {
		t.Status = task.StatusPending
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}

	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO tarefas (titulo, status, usuario_id, criado_em) VALUES (?, ?, ?, ?)`,
		t.Title, string(t.Status), t.OwnerID, toMillis(t.CreatedAt),
	)
	if err != nil {
		return task.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return task.Task{}, fmt.Errorf("read task id: %w", err)
	}
	t.ID = id
	t.CreatedAt = fromMillis(toMillis(t.CreatedAt))
	return t, nil
}

// UpdateTaskStatus sets the status of a task owned by ownerID.
func (s *Store) UpdateTaskStatus(ctx context.Context, ownerID int64, taskID int64, status task.Status) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`UPDATE tarefas SET status = ? WHERE id = ? AND usuario_id = ?`,
		string(status), taskID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return requireAffected(result, "update task status")
}

// DeleteTask removes a task owned by ownerID.
func (s *Store) DeleteTask(ctx context.Context, ownerID int64, taskID int64) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM tarefas WHERE id = ? AND usuario_id = ?`,
		taskID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireAffected(result, "delete task")
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func requireAffected(result rowsAffecter, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
