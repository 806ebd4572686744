// Package auth implements the registration and login flows.
//
// Two named strategies exist behind the Flow interface:
//   - StrictFlow: username is part of the identity, uniqueness is enforced
//     for both email and username, login works by username or email.
//   - PermissiveFlow: email-only identity, username is optional and not
//     checked for uniqueness, login works by email.
//
// Both strategies always verify the password against the stored hash.
// The variant is selected once at startup via configuration.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/shopkeeper/internal/config"
	"github.com/iudanet/shopkeeper/internal/crypto"
	"github.com/iudanet/shopkeeper/internal/errs"
	"github.com/iudanet/shopkeeper/internal/models"
	"github.com/iudanet/shopkeeper/internal/server/storage"
)

// TokenIssuer mints access and refresh tokens bound to a user id
type TokenIssuer interface {
	IssueAccess(userID string) (string, error)
	IssueRefresh(userID string) (string, error)
}

// RegisterInput carries raw registration fields
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput carries raw login credentials
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult is returned on successful login
type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// Flow orchestrates registration and login
type Flow interface {
	// Register validates input, checks uniqueness, hashes the password and
	// persists the user. Never returns the password hash to the caller's
	// response path.
	Register(ctx context.Context, in RegisterInput) (*models.User, error)

	// Login validates input, looks the user up, verifies the password and
	// issues an access/refresh token pair.
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
}

// New selects a flow strategy by its configured name
func New(name string, logger *slog.Logger, users storage.UserStorage, tokens TokenIssuer) (Flow, error) {
	switch name {
	case config.FlowStrict:
		return NewStrictFlow(logger, users, tokens), nil
	case config.FlowPermissive:
		return NewPermissiveFlow(logger, users, tokens), nil
	default:
		return nil, fmt.Errorf("unknown auth flow: %q", name)
	}
}

// hashAndCreate хеширует пароль и сохраняет нового пользователя.
// Гонку параллельных регистраций ловит UNIQUE constraint хранилища:
// проигравшая вставка возвращает Conflict, дубликат не возникает.
func hashAndCreate(ctx context.Context, users storage.UserStorage, in RegisterInput) (*models.User, error) {
	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, errs.Internal(err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil, errs.New(errs.KindConflict, "User already exists")
		}
		return nil, errs.Internal(err)
	}

	return user, nil
}

// issueTokens выпускает пару access/refresh токенов
func issueTokens(tokens TokenIssuer, user *models.User) (*LoginResult, error) {
	access, err := tokens.IssueAccess(user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	refresh, err := tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}

	return &LoginResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// checkPassword сверяет пароль со stored hash
func checkPassword(password string, user *models.User) error {
	if !crypto.CheckPassword(password, user.PasswordHash) {
		return errs.New(errs.KindUnauthorized, "Invalid password")
	}
	return nil
}
