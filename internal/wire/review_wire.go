package wire

import (
	"net/http"

	"yamdb-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, auth func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/v1/titles/{title_id}/reviews - List reviews of a title
	r.Get("/api/v1/titles/{title_id}/reviews", reviewHandler.GetReviews)

	// GET /api/v1/titles/{title_id}/reviews/{review_id} - Review details
	r.Get("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.GetReviewByID)

	// ==================== AUTHENTICATED ROUTES ====================
	// Ownership and moderator overrides are checked in the service
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/api/v1/titles/{title_id}/reviews", reviewHandler.CreateReview)
		r.Patch("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.UpdateReview)
		r.Delete("/api/v1/titles/{title_id}/reviews/{review_id}", reviewHandler.DeleteReview)
	})
}
