package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID           string    `json:"id"`         // UUID пользователя
	Username     string    `json:"username"`   // уникальный username (пустой в email-only варианте)
	Email        string    `json:"email"`      // уникальный email
	PasswordHash string    `json:"-"`          // bcrypt хеш пароля, наружу не отдается
	CreatedAt    time.Time `json:"created_at"` // время создания
}
