package validation

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidateID проверяет, что идентификатор записи синтаксически корректен (UUID)
// Проверка выполняется до любого обращения к хранилищу
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("not a valid id: %w", err)
	}

	return nil
}
