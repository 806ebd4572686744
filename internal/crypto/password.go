// Package crypto provides password hashing for user credentials.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost фиксированная стоимость bcrypt (10 раундов)
const PasswordCost = 10

// HashPassword хеширует пароль с использованием bcrypt
// Соль генерируется самим bcrypt и хранится внутри хеша
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword проверяет пароль против сохраненного bcrypt хеша
// Сравнение выполняет сам bcrypt, строки хешей никогда не сравниваются напрямую
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
