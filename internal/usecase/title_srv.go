package usecase

import (
	"context"
	"fmt"
	"time"

	"yamdb-api/internal/apperror"
	"yamdb-api/internal/data/entity"
	"yamdb-api/internal/data/repository"
	"yamdb-api/internal/dto/request"
	"yamdb-api/internal/dto/response"
	"yamdb-api/internal/policy"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleService interface {
	List(ctx context.Context, req *request.TitleListRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error)
	Create(ctx context.Context, actor policy.Actor, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	Update(ctx context.Context, actor policy.Actor, id uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
	}
}

func (s *titleService) List(ctx context.Context, req *request.TitleListRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	filter := repository.TitleFilter{
		CategorySlug: req.Category,
		GenreSlug:    req.Genre,
		Name:         req.Name,
		Year:         req.Year,
	}

	titles, err := s.repo.Title.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	total, err := s.repo.Title.CountAll(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	titleResponses := make([]response.TitleResponse, len(titles))
	for i, title := range titles {
		resp, err := s.toResponse(ctx, title)
		if err != nil {
			return nil, err
		}
		titleResponses[i] = *resp
	}

	return response.NewPaginatedResponse(titleResponses, req.Page, req.Limit(), total), nil
}

func (s *titleService) GetByID(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error) {
	title, err := s.findTitle(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, title)
}

func (s *titleService) Create(ctx context.Context, actor policy.Actor, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	if !policy.Allows(policy.ActionWrite, policy.ResourceTitle, actor) {
		return nil, apperror.Forbidden("Admin access required")
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if err := checkYear(req.Year); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genreIDs, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := s.repo.Title.Create(ctx, title); err != nil {
		return nil, apperror.Internal(err)
	}

	if len(genreIDs) > 0 {
		if err := s.repo.TitleGenre.Set(ctx, title.ID, genreIDs); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name),
	)

	return s.toResponse(ctx, title)
}

func (s *titleService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	if !policy.Allows(policy.ActionWrite, policy.ResourceTitle, actor) {
		return nil, apperror.Forbidden("Admin access required")
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	title, err := s.findTitle(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := checkYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		categoryID, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = categoryID
	}
	title.UpdatedAt = time.Now()

	if err := s.repo.Title.Update(ctx, title); err != nil {
		return nil, apperror.Internal(err)
	}

	if req.Genres != nil {
		genreIDs, err := s.resolveGenres(ctx, req.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.repo.TitleGenre.Set(ctx, title.ID, genreIDs); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	s.log.Info("Title updated", zap.String("title_id", title.ID.String()))

	return s.toResponse(ctx, title)
}

func (s *titleService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if !policy.Allows(policy.ActionWrite, policy.ResourceTitle, actor) {
		return apperror.Forbidden("Admin access required")
	}

	if _, err := s.findTitle(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Title.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}

	return nil
}

// ==================== HELPER METHODS ====================

func checkYear(year int) error {
	if year > time.Now().Year() {
		return apperror.ValidationField("year", "Year can not be in the future")
	}
	return nil
}

func (s *titleService) findTitle(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if title == nil {
		return nil, apperror.NotFound(fmt.Sprintf("title %s not found", id.String()))
	}
	return title, nil
}

// resolveCategory maps a category slug to its ID; a missing slug is a
// client error, not an internal one
func (s *titleService) resolveCategory(ctx context.Context, slug *string) (*uuid.UUID, error) {
	if slug == nil || *slug == "" {
		return nil, nil
	}

	category, err := s.repo.Category.FindBySlug(ctx, *slug)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if category == nil {
		return nil, apperror.ValidationField("category", fmt.Sprintf("category %s does not exist", *slug))
	}

	return &category.ID, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]uuid.UUID, error) {
	genreIDs := make([]uuid.UUID, 0, len(slugs))
	for _, slug := range slugs {
		genre, err := s.repo.Genre.FindBySlug(ctx, slug)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if genre == nil {
			return nil, apperror.ValidationField("genre", fmt.Sprintf("genre %s does not exist", slug))
		}
		genreIDs = append(genreIDs, genre.ID)
	}
	return genreIDs, nil
}

func (s *titleService) toResponse(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	var category *entity.Category
	if title.CategoryID != nil {
		found, err := s.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		category = found
	}

	genres, err := s.repo.Genre.FindByTitleID(ctx, title.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	resp := response.TitleToResponse(title, category, genres)
	return &resp, nil
}
