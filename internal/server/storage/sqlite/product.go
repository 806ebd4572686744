package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/shopkeeper/internal/models"
	"github.com/iudanet/shopkeeper/internal/server/storage"
)

// CreateProduct creates a new product in the storage
func (s *Storage) CreateProduct(ctx context.Context, product *models.Product) error {
	attrs, err := marshalAttrs(product.Attrs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (id, title, description, attrs, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		attrs,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// ListProducts returns a page of products in stable insertion order
func (s *Storage) ListProducts(ctx context.Context, offset, limit int) ([]*models.Product, error) {
	query := `
		SELECT id, title, description, attrs, created_at, updated_at
		FROM products
		ORDER BY created_at, id
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves product by ID
func (s *Storage) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	query := `
		SELECT id, title, description, attrs, created_at, updated_at
		FROM products
		WHERE id = ?
	`

	product, err := scanProduct(s.db.QueryRowContext(ctx, query, productID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProductNotFound
		}
		return nil, err
	}

	return product, nil
}

// ReplaceProduct replaces the whole product document by ID
func (s *Storage) ReplaceProduct(ctx context.Context, product *models.Product) error {
	attrs, err := marshalAttrs(product.Attrs)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET title = ?, description = ?, attrs = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		product.Title,
		product.Description,
		attrs,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrProductNotFound
	}

	return nil
}

// DeleteProduct deletes product by ID
func (s *Storage) DeleteProduct(ctx context.Context, productID string) error {
	query := `DELETE FROM products WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrProductNotFound
	}

	return nil
}

func marshalAttrs(attrs map[string]any) (string, error) {
	if len(attrs) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("failed to marshal attrs: %w", err)
	}
	return string(data), nil
}

func scanProduct(scan func(dest ...any) error) (*models.Product, error) {
	product := &models.Product{}
	var attrs string

	err := scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&attrs,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	if attrs != "" && attrs != "{}" {
		if err := json.Unmarshal([]byte(attrs), &product.Attrs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attrs: %w", err)
		}
	}

	return product, nil
}
