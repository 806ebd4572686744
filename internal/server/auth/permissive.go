package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iudanet/shopkeeper/internal/errs"
	"github.com/iudanet/shopkeeper/internal/models"
	"github.com/iudanet/shopkeeper/internal/server/storage"
)

// PermissiveFlow — email-only вариант: username опционален и на
// уникальность не проверяется, логин только по email.
// Пароль проверяется всегда, как и в строгом варианте.
type PermissiveFlow struct {
	logger *slog.Logger
	users  storage.UserStorage
	tokens TokenIssuer
}

// NewPermissiveFlow creates the permissive auth flow
func NewPermissiveFlow(logger *slog.Logger, users storage.UserStorage, tokens TokenIssuer) *PermissiveFlow {
	return &PermissiveFlow{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

// Register implements Flow
func (f *PermissiveFlow) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Email == "" {
		return nil, errs.New(errs.KindValidation, "Email is required")
	}
	if in.Password == "" {
		return nil, errs.New(errs.KindValidation, "Password is required")
	}

	if _, err := f.users.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, errs.New(errs.KindConflict, "User already exists")
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, errs.Internal(err)
	}

	return hashAndCreate(ctx, f.users, in)
}

// Login implements Flow
func (f *PermissiveFlow) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if in.Email == "" {
		return nil, errs.New(errs.KindValidation, "Email is required")
	}
	if in.Password == "" {
		return nil, errs.New(errs.KindValidation, "Password is required")
	}

	user, err := f.users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, errs.New(errs.KindNotFound, "No user found")
		}
		return nil, errs.Internal(err)
	}

	if err := checkPassword(in.Password, user); err != nil {
		return nil, err
	}

	return issueTokens(f.tokens, user)
}
