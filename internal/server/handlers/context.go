package handlers

import "context"

// contextKey тип для ключей контекста
type contextKey string

const (
	// UserIDKey ключ для хранения user id в контексте запроса
	// Заполняется auth middleware после валидации access токена
	UserIDKey contextKey = "user_id"
)

// GetUserID извлекает user id из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
