package adaptor

import (
	"encoding/json"
	"net/http"

	"yamdb-api/internal/dto/request"
	"yamdb-api/internal/usecase"
	"yamdb-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// GetComments handles GET /api/v1/titles/{title_id}/reviews/{review_id}/comments (public)
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}

	comments, err := h.service.List(r.Context(), titleID, reviewID, parsePagination(r))
	if err != nil {
		handleError(w, h.log, err, "list comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// GetCommentByID handles GET .../comments/{comment_id} (public)
func (h *CommentHandler) GetCommentByID(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	comment, err := h.service.GetByID(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		handleError(w, h.log, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// CreateComment handles POST .../reviews/{review_id}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.Create(r.Context(), actorFromContext(r.Context()), titleID, reviewID, &req)
	if err != nil {
		handleError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "success", comment)
}

// UpdateComment handles PATCH .../comments/{comment_id}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	var req request.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.Update(r.Context(), actorFromContext(r.Context()), titleID, reviewID, commentID, &req)
	if err != nil {
		handleError(w, h.log, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// DeleteComment handles DELETE .../comments/{comment_id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, commentID, ok := commentPath(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actorFromContext(r.Context()), titleID, reviewID, commentID); err != nil {
		handleError(w, h.log, err, "delete comment")
		return
	}

	utils.ResponseNoContent(w)
}

func commentPath(w http.ResponseWriter, r *http.Request) (titleID, reviewID, commentID uuid.UUID, ok bool) {
	titleID, reviewID, ok = reviewPath(w, r)
	if !ok {
		return
	}

	commentID, ok = parseUUIDParam(r, "comment_id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid comment ID", nil)
		return
	}

	return titleID, reviewID, commentID, true
}
