package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/shopkeeper/internal/models"
	"github.com/iudanet/shopkeeper/internal/server/storage"
)

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	// Пустой username храним как NULL, иначе UNIQUE не пропустит
	// второго пользователя без username
	var username sql.NullString
	if user.Username != "" {
		username = sql.NullString{String: user.Username, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)

	if err != nil {
		// UNIQUE нарушение по email или username — в том числе когда
		// параллельная регистрация успела вставить запись первой
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves user by email
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `WHERE email = ?`, email)
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, `WHERE username = ?`, username)
}

// GetUserByIdentity retrieves user matching either username or email
func (s *Storage) GetUserByIdentity(ctx context.Context, username, email string) (*models.User, error) {
	// NULLIF не дает пустой строке совпасть с NULL-колонкой
	return s.getUser(ctx, `WHERE username = NULLIF(?, '') OR email = NULLIF(?, '')`, username, email)
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.getUser(ctx, `WHERE id = ?`, userID)
}

func (s *Storage) getUser(ctx context.Context, where string, args ...any) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
	` + where

	user := &models.User{}
	var username sql.NullString

	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if username.Valid {
		user.Username = username.String
	}

	return user, nil
}
