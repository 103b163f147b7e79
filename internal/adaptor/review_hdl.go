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

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// GetReviews handles GET /api/v1/titles/{title_id}/reviews (public)
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseUUIDParam(r, "title_id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid title ID", nil)
		return
	}

	reviews, err := h.service.List(r.Context(), titleID, parsePagination(r))
	if err != nil {
		handleError(w, h.log, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetReviewByID handles GET /api/v1/titles/{title_id}/reviews/{review_id} (public)
func (h *ReviewHandler) GetReviewByID(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}

	review, err := h.service.GetByID(r.Context(), titleID, reviewID)
	if err != nil {
		handleError(w, h.log, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// CreateReview handles POST /api/v1/titles/{title_id}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseUUIDParam(r, "title_id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid title ID", nil)
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.Create(r.Context(), actorFromContext(r.Context()), titleID, &req)
	if err != nil {
		handleError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// UpdateReview handles PATCH /api/v1/titles/{title_id}/reviews/{review_id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.Update(r.Context(), actorFromContext(r.Context()), titleID, reviewID, &req)
	if err != nil {
		handleError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// DeleteReview handles DELETE /api/v1/titles/{title_id}/reviews/{review_id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := reviewPath(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actorFromContext(r.Context()), titleID, reviewID); err != nil {
		handleError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}

// reviewPath parses the title and review IDs shared by the nested routes
func reviewPath(w http.ResponseWriter, r *http.Request) (titleID, reviewID uuid.UUID, ok bool) {
	tID, tOK := parseUUIDParam(r, "title_id")
	if !tOK {
		utils.ResponseBadRequest(w, "Invalid title ID", nil)
		return
	}

	rID, rOK := parseUUIDParam(r, "review_id")
	if !rOK {
		utils.ResponseBadRequest(w, "Invalid review ID", nil)
		return
	}

	return tID, rID, true
}
