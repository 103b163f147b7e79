package adaptor

import (
	"context"
	"net/http"

	"yamdb-api/internal/apperror"
	"yamdb-api/internal/data/entity"
	"yamdb-api/internal/dto/request"
	"yamdb-api/internal/policy"
	"yamdb-api/internal/usecase"
	"yamdb-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Catalog *CatalogHandler
	Title   *TitleHandler
	Review  *ReviewHandler
	Comment *CommentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Catalog: NewCatalogHandler(service.Catalog, log),
		Title:   NewTitleHandler(service.Title, log),
		Review:  NewReviewHandler(service.Review, log),
		Comment: NewCommentHandler(service.Comment, log),
	}
}

// handleError maps the shared error taxonomy onto HTTP responses. Only
// internal errors reach the error log; client mistakes stay at warn.
func handleError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), apperror.FieldsOf(err))

	case apperror.KindUnauthorized:
		log.Warn(operation+" unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case apperror.KindForbidden:
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case apperror.KindNotFound:
		log.Warn(operation+" target missing", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// actorFromContext rebuilds the principal stored by the auth
// middleware; requests that skipped it act as Anonymous
func actorFromContext(ctx context.Context) policy.Actor {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return policy.Anonymous
	}

	role, _ := utils.GetRoleFromContext(ctx)

	return policy.Actor{
		Authenticated: true,
		ID:            userID,
		Role:          entity.UserRole(role),
		Superuser:     utils.GetSuperuserFromContext(ctx),
	}
}

// parsePagination reads page/per_page query params with defaults
func parsePagination(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

// parseUUIDParam reads a chi URL param as a UUID
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// searchParam returns the optional ?search= query value
func searchParam(r *http.Request) *string {
	if search := r.URL.Query().Get("search"); search != "" {
		return &search
	}
	return nil
}
