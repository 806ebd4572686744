package models

import "time"

// Product представляет товар в каталоге
// Attrs хранит произвольные дополнительные поля документа,
// которые клиент может задать при редактировании
type Product struct {
	ID          string         `json:"id"`          // UUID товара
	Title       string         `json:"title"`       // название, обязательное
	Description string         `json:"description"` // описание, обязательное
	Attrs       map[string]any `json:"attrs,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
