package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/shopkeeper/internal/server/auth"
	"github.com/iudanet/shopkeeper/internal/server/jwt"
	"github.com/iudanet/shopkeeper/pkg/api"
)

// refreshCookieName имя cookie с refresh токеном
const refreshCookieName = "refreshToken"

// AuthHandler обрабатывает запросы регистрации и аутентификации
type AuthHandler struct {
	logger       *slog.Logger
	flow         auth.Flow
	tokens       *jwt.Service
	secureCookie bool // Secure атрибут cookie, включается в production
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, flow auth.Flow, tokens *jwt.Service, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		flow:         flow,
		tokens:       tokens,
		secureCookie: secureCookie,
	}
}

// Register обрабатывает POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.flow.Register(ctx, auth.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		sendFlowError(h.logger, w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email))

	resp := api.RegisterResponse{
		Message: "User registered successfully",
		Data: api.UserData{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Login обрабатывает POST /login
// Access токен возвращается в теле, refresh токен — только в cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.flow.Login(ctx, auth.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		sendFlowError(h.logger, w, r, err)
		return
	}

	h.setRefreshCookie(w, result.RefreshToken)

	h.logger.InfoContext(ctx, "user logged in successfully", slog.String("user_id", result.User.ID))

	resp := api.LoginResponse{
		Message:     "User logged in successfully",
		AccessToken: result.AccessToken,
		Data: api.UserData{
			ID:       result.User.ID,
			Username: result.User.Username,
			Email:    result.User.Email,
		},
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Refresh обрабатывает POST /refresh
// Читает refresh токен из cookie, выпускает новый access токен
// и ротирует cookie
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		sendError(h.logger, w, "refresh token is required", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokens.ParseRefresh(cookie.Value)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid refresh token", slog.Any("error", err))
		sendError(h.logger, w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	accessToken, err := h.tokens.IssueAccess(claims.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue access token", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	refreshToken, err := h.tokens.IssueRefresh(claims.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue refresh token", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.setRefreshCookie(w, refreshToken)

	h.logger.InfoContext(ctx, "tokens refreshed", slog.String("user_id", claims.UserID))

	resp := api.RefreshResponse{
		Message:     "Token refreshed successfully",
		AccessToken: accessToken,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// setRefreshCookie выставляет refresh токен в HTTP-only strict cookie
func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.RefreshTokenTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
