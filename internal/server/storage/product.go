package storage

import (
	"context"

	"github.com/iudanet/shopkeeper/internal/models"
)

// ProductStorage defines interface for product data persistence
type ProductStorage interface {
	// CreateProduct creates a new product in the storage
	CreateProduct(ctx context.Context, product *models.Product) error

	// ListProducts returns a page of products in stable insertion order
	ListProducts(ctx context.Context, offset, limit int) ([]*models.Product, error)

	// GetProduct retrieves product by ID
	// Returns ErrProductNotFound if product doesn't exist
	GetProduct(ctx context.Context, productID string) (*models.Product, error)

	// ReplaceProduct replaces the whole product document by ID.
	// Returns ErrProductNotFound if no record was updated, so callers can
	// tell Updated from NotFound explicitly.
	ReplaceProduct(ctx context.Context, product *models.Product) error

	// DeleteProduct deletes product by ID
	// Returns ErrProductNotFound if product doesn't exist
	DeleteProduct(ctx context.Context, productID string) error
}
