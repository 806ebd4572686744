package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iudanet/shopkeeper/internal/errs"
	"github.com/iudanet/shopkeeper/internal/models"
	"github.com/iudanet/shopkeeper/internal/server/storage"
)

// StrictFlow требует username при регистрации и проверяет уникальность
// и email, и username. Логин по username или email.
type StrictFlow struct {
	logger *slog.Logger
	users  storage.UserStorage
	tokens TokenIssuer
}

// NewStrictFlow creates the strict auth flow
func NewStrictFlow(logger *slog.Logger, users storage.UserStorage, tokens TokenIssuer) *StrictFlow {
	return &StrictFlow{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

// Register implements Flow
func (f *StrictFlow) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	// Порядок проверок фиксированный: username, email, password;
	// первая отсутствующая и отвечает
	if in.Username == "" {
		return nil, errs.New(errs.KindValidation, "Username is required")
	}
	if in.Email == "" {
		return nil, errs.New(errs.KindValidation, "Email is required")
	}
	if in.Password == "" {
		return nil, errs.New(errs.KindValidation, "Password is required")
	}

	if err := f.checkUnique(ctx, in); err != nil {
		return nil, err
	}

	return hashAndCreate(ctx, f.users, in)
}

// checkUnique проверяет занятость email и username
func (f *StrictFlow) checkUnique(ctx context.Context, in RegisterInput) error {
	if _, err := f.users.GetUserByEmail(ctx, in.Email); err == nil {
		return errs.New(errs.KindConflict, "User already exists")
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return errs.Internal(err)
	}

	if _, err := f.users.GetUserByUsername(ctx, in.Username); err == nil {
		return errs.New(errs.KindConflict, "User already exists")
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return errs.Internal(err)
	}

	return nil
}

// Login implements Flow
func (f *StrictFlow) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if in.Username == "" && in.Email == "" {
		return nil, errs.New(errs.KindValidation, "Either username or email is required")
	}
	if in.Password == "" {
		return nil, errs.New(errs.KindValidation, "Password is required")
	}

	user, err := f.users.GetUserByIdentity(ctx, in.Username, in.Email)
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
