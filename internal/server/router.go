// Package server wires handlers and middleware into the HTTP router.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/iudanet/shopkeeper/internal/server/handlers"
	"github.com/iudanet/shopkeeper/internal/server/jwt"
	"github.com/iudanet/shopkeeper/internal/server/middleware"
)

// Handlers groups everything the router dispatches to
type Handlers struct {
	Auth    *handlers.AuthHandler
	Product *handlers.ProductHandler
	Upload  *handlers.UploadHandler
	Health  *handlers.HealthHandler
}

// NewRouter builds the route table.
// Мутации каталога и загрузка файлов закрыты auth guard'ом,
// чтение каталога и сама аутентификация — публичные.
func NewRouter(logger *slog.Logger, tokens *jwt.Service, h Handlers, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.LoggingWithSkip(logger, []string{"/health"}))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.Health)

	r.Post("/register", h.Auth.Register)
	r.Post("/login", h.Auth.Login)
	r.Post("/refresh", h.Auth.Refresh)

	r.Get("/products", h.Product.List)
	r.Get("/products/{id}", h.Product.Get)

	r.Group(func(guarded chi.Router) {
		guarded.Use(middleware.Auth(logger, tokens))

		guarded.Post("/products", h.Product.Add)
		guarded.Patch("/products/{id}", h.Product.Edit)
		guarded.Delete("/products/{id}", h.Product.Delete)
		guarded.Post("/upload", h.Upload.Upload)
	})

	return r
}
