package api

import "github.com/iudanet/shopkeeper/internal/models"

// CreateProductRequest представляет запрос на добавление товара
type CreateProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateProductResponse возвращает созданный товар вместе с сообщением
type CreateProductResponse struct {
	Message string          `json:"message"`
	Product *models.Product `json:"product"`
}

// ProductListResponse представляет страницу товаров
type ProductListResponse struct {
	Products []*models.Product `json:"products"`
}

// DeleteProductResponse возвращает удаленный товар
type DeleteProductResponse struct {
	Message string          `json:"message"`
	Product *models.Product `json:"product"`
}
