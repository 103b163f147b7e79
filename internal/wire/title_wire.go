package wire

import (
	"net/http"

	"yamdb-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTitle(r chi.Router, titleHandler *adaptor.TitleHandler, auth func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/v1/titles - List titles (filters: category, genre, name, year)
	r.Get("/api/v1/titles", titleHandler.GetTitles)

	// GET /api/v1/titles/{title_id} - Title details with live rating
	r.Get("/api/v1/titles/{title_id}", titleHandler.GetTitleByID)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/api/v1/titles", titleHandler.CreateTitle)
		r.Patch("/api/v1/titles/{title_id}", titleHandler.UpdateTitle)
		r.Delete("/api/v1/titles/{title_id}", titleHandler.DeleteTitle)
	})
}
