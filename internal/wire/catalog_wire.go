package wire

import (
	"net/http"

	"yamdb-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler, auth func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/v1/categories - List categories (supports ?search=)
	r.Get("/api/v1/categories", catalogHandler.GetCategories)

	// GET /api/v1/genres - List genres (supports ?search=)
	r.Get("/api/v1/genres", catalogHandler.GetGenres)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/api/v1/categories", catalogHandler.CreateCategory)
		r.Delete("/api/v1/categories/{slug}", catalogHandler.DeleteCategory)

		r.Post("/api/v1/genres", catalogHandler.CreateGenre)
		r.Delete("/api/v1/genres/{slug}", catalogHandler.DeleteGenre)
	})
}
