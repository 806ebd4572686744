package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iudanet/shopkeeper/internal/models"
	"github.com/iudanet/shopkeeper/internal/server/storage"
	"github.com/iudanet/shopkeeper/internal/validation"
	"github.com/iudanet/shopkeeper/pkg/api"
)

// Пагинация по умолчанию
const (
	defaultPage  = 1
	defaultLimit = 10
)

// ProductHandler обрабатывает CRUD запросы по товарам
type ProductHandler struct {
	logger   *slog.Logger
	products storage.ProductStorage
}

// NewProductHandler создает новый handler для товаров
func NewProductHandler(logger *slog.Logger, products storage.ProductStorage) *ProductHandler {
	return &ProductHandler{
		logger:   logger,
		products: products,
	}
}

// Add обрабатывает POST /products
func (h *ProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" || req.Description == "" {
		sendError(h.logger, w, "title or description required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	product := &models.Product{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.products.CreateProduct(ctx, product); err != nil {
		h.logger.ErrorContext(ctx, "failed to create product", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "product added", slog.String("product_id", product.ID))

	resp := api.CreateProductResponse{
		Message: "Product added successfully",
		Product: product,
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// List обрабатывает GET /products?page&limit
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := queryInt(r, "page", defaultPage)
	limit := queryInt(r, "limit", defaultLimit)
	offset := (page - 1) * limit

	products, err := h.products.ListProducts(ctx, offset, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.ProductListResponse{Products: products}, http.StatusOK)
}

// Get обрабатывает GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Синтаксис id проверяется до обращения к хранилищу
	id := chi.URLParam(r, "id")
	if err := validation.ValidateID(id); err != nil {
		sendError(h.logger, w, "Not valid Id", http.StatusBadRequest)
		return
	}

	product, err := h.products.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			sendError(h.logger, w, "no product found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, product, http.StatusOK)
}

// Delete обрабатывает DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if err := validation.ValidateID(id); err != nil {
		sendError(h.logger, w, "Not valid Id", http.StatusBadRequest)
		return
	}

	// Читаем запись до удаления, чтобы вернуть ее в ответе
	product, err := h.products.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			sendError(h.logger, w, "no product found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.products.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			sendError(h.logger, w, "no product found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete product", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))

	resp := api.DeleteProductResponse{
		Message: "product deleted successfully",
		Product: product,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Edit обрабатывает PATCH /products/{id}
// Документ заменяется целиком: title и description берутся из тела
// (или остаются прежними), все остальные поля тела попадают в attrs
func (h *ProductHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "id")
	if err := validation.ValidateID(id); err != nil {
		sendError(h.logger, w, "Not valid Id", http.StatusBadRequest)
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	existing, err := h.products.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			sendError(h.logger, w, "product not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	product := replacementProduct(existing, body)

	if err := h.products.ReplaceProduct(ctx, product); err != nil {
		// Явный NotFound из хранилища: запись исчезла между чтением и заменой
		if errors.Is(err, storage.ErrProductNotFound) {
			sendError(h.logger, w, "product not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update product", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "product updated", slog.String("product_id", id))

	sendJSON(h.logger, w, product, http.StatusOK)
}

// replacementProduct собирает новый документ из старого и тела запроса
func replacementProduct(existing *models.Product, body map[string]any) *models.Product {
	product := &models.Product{
		ID:          existing.ID,
		Title:       existing.Title,
		Description: existing.Description,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now(),
	}

	attrs := make(map[string]any)
	for key, value := range body {
		switch key {
		case "title":
			if s, ok := value.(string); ok && s != "" {
				product.Title = s
			}
		case "description":
			if s, ok := value.(string); ok && s != "" {
				product.Description = s
			}
		case "id", "created_at", "updated_at":
			// служебные поля из тела игнорируются
		default:
			attrs[key] = value
		}
	}
	if len(attrs) > 0 {
		product.Attrs = attrs
	}

	return product
}

// queryInt читает положительный целый query-параметр с дефолтом
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return def
	}
	return v
}
