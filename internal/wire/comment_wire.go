package wire

import (
	"net/http"

	"yamdb-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireComment(r chi.Router, commentHandler *adaptor.CommentHandler, auth func(http.Handler) http.Handler) {
	const base = "/api/v1/titles/{title_id}/reviews/{review_id}/comments"

	// ==================== PUBLIC ROUTES ====================
	r.Get(base, commentHandler.GetComments)
	r.Get(base+"/{comment_id}", commentHandler.GetCommentByID)

	// ==================== AUTHENTICATED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post(base, commentHandler.CreateComment)
		r.Patch(base+"/{comment_id}", commentHandler.UpdateComment)
		r.Delete(base+"/{comment_id}", commentHandler.DeleteComment)
	})
}
