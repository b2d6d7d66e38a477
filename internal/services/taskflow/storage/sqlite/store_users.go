package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/taskflow/internal/services/taskflow/storage"
	"github.com/louisbranch/taskflow/internal/services/taskflow/user"
)

// CreateUser inserts an identity. The email UNIQUE constraint is the only
// duplicate check.
func (s *Store) CreateUser(ctx context.Context, u user.User) (int64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	name := strings.TrimSpace(u.Name)
	email := strings.TrimSpace(u.Email)
	if name == "" {
		return 0, fmt.Errorf("user name is required")
	}
	if email == "" {
		return 0, fmt.Errorf("user email is required")
	}
	if u.PasswordHash == "" {
		return 0, fmt.Errorf("user password hash is required")
	}
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO usuarios (nome, email, senha_hash, criado_em) VALUES (?, ?, ?, ?)`,
		name, email, u.PasswordHash, toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read user id: %w", err)
	}
	return id, nil
}

// GetUserByEmail loads an identity by its canonical email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	if err := s.ready(ctx); err != nil {
		return user.User{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return user.User{}, fmt.Errorf("email is required")
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, nome, email, senha_hash, criado_em FROM usuarios WHERE email = ?`, email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (user.User, error) {
	var (
		u         user.User
		createdAt int64
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}
