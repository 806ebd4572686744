// Package api defines the JSON request/response types of the HTTP API.
package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username,omitempty"` // обязателен в strict-варианте
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserData — публичная проекция пользователя: id и идентифицирующие поля,
// хеш пароля сюда не попадает никогда
type UserData struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	Message string   `json:"message"`
	Data    UserData `json:"data"`
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// LoginResponse представляет ответ на успешный логин
// Refresh token в теле не передается — только в HTTP-only cookie
type LoginResponse struct {
	Message     string   `json:"message"`
	AccessToken string   `json:"accessToken"`
	Data        UserData `json:"data"`
}

// RefreshResponse представляет ответ на обновление access токена
type RefreshResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
