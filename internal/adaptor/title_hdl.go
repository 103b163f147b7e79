package adaptor

import (
	"encoding/json"
	"net/http"

	"yamdb-api/internal/dto/request"
	"yamdb-api/internal/usecase"
	"yamdb-api/pkg/utils"

	"go.uber.org/zap"
)

type TitleHandler struct {
	service usecase.TitleService
	log     *zap.Logger
}

func NewTitleHandler(service usecase.TitleService, log *zap.Logger) *TitleHandler {
	return &TitleHandler{
		service: service,
		log:     log.With(zap.String("handler", "title")),
	}
}

// GetTitles handles GET /api/v1/titles (public)
func (h *TitleHandler) GetTitles(w http.ResponseWriter, r *http.Request) {
	req := &request.TitleListRequest{
		PaginatedRequest: *parsePagination(r),
	}

	query := r.URL.Query()
	if category := query.Get("category"); category != "" {
		req.Category = &category
	}
	if genre := query.Get("genre"); genre != "" {
		req.Genre = &genre
	}
	if name := query.Get("name"); name != "" {
		req.Name = &name
	}
	if yearStr := query.Get("year"); yearStr != "" {
		year := utils.ParseInt(yearStr, 0)
		if year == 0 {
			utils.ResponseBadRequest(w, "Invalid year filter", nil)
			return
		}
		req.Year = &year
	}

	titles, err := h.service.List(r.Context(), req)
	if err != nil {
		handleError(w, h.log, err, "list titles")
		return
	}

	utils.ResponseSuccess(w, "success", titles)
}

// GetTitleByID handles GET /api/v1/titles/{title_id} (public)
func (h *TitleHandler) GetTitleByID(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseUUIDParam(r, "title_id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid title ID", nil)
		return
	}

	title, err := h.service.GetByID(r.Context(), titleID)
	if err != nil {
		handleError(w, h.log, err, "get title")
		return
	}

	utils.ResponseSuccess(w, "success", title)
}

// CreateTitle handles POST /api/v1/titles (admin)
func (h *TitleHandler) CreateTitle(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	title, err := h.service.Create(r.Context(), actorFromContext(r.Context()), &req)
	if err != nil {
		handleError(w, h.log, err, "create title")
		return
	}

	utils.ResponseCreated(w, "success", title)
}

// UpdateTitle handles PATCH /api/v1/titles/{title_id} (admin)
func (h *TitleHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseUUIDParam(r, "title_id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid title ID", nil)
		return
	}

	var req request.UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	title, err := h.service.Update(r.Context(), actorFromContext(r.Context()), titleID, &req)
	if err != nil {
		handleError(w, h.log, err, "update title")
		return
	}

	utils.ResponseSuccess(w, "success", title)
}

// DeleteTitle handles DELETE /api/v1/titles/{title_id} (admin)
func (h *TitleHandler) DeleteTitle(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseUUIDParam(r, "title_id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid title ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), actorFromContext(r.Context()), titleID); err != nil {
		handleError(w, h.log, err, "delete title")
		return
	}

	utils.ResponseNoContent(w)
}
