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
	"yamdb-api/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService manages categories and genres. Both are flat
// name+slug dictionaries with identical rules, so they share one
// service.
type CatalogService interface {
	ListCategories(ctx context.Context, search *string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CatalogItemResponse], error)
	CreateCategory(ctx context.Context, actor policy.Actor, req *request.CreateCatalogItemRequest) (*response.CatalogItemResponse, error)
	DeleteCategory(ctx context.Context, actor policy.Actor, slug string) error

	ListGenres(ctx context.Context, search *string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CatalogItemResponse], error)
	CreateGenre(ctx context.Context, actor policy.Actor, req *request.CreateCatalogItemRequest) (*response.CatalogItemResponse, error)
	DeleteGenre(ctx context.Context, actor policy.Actor, slug string) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListCategories(ctx context.Context, search *string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CatalogItemResponse], error) {
	categories, err := s.repo.Category.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	total, err := s.repo.Category.CountAll(ctx, search)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	items := make([]response.CatalogItemResponse, len(categories))
	for i, category := range categories {
		items[i] = response.CategoryToResponse(category)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *catalogService) CreateCategory(ctx context.Context, actor policy.Actor, req *request.CreateCatalogItemRequest) (*response.CatalogItemResponse, error) {
	if !policy.Allows(policy.ActionWrite, policy.ResourceCatalog, actor) {
		return nil, apperror.Forbidden("Admin access required")
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.ValidationField("slug", "This slug is already in use")
		}
		return nil, apperror.Internal(err)
	}

	s.log.Info("Category created", zap.String("slug", category.Slug))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, actor policy.Actor, slug string) error {
	if !policy.Allows(policy.ActionWrite, policy.ResourceCatalog, actor) {
		return apperror.Forbidden("Admin access required")
	}

	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		return apperror.Internal(err)
	}
	if category == nil {
		return apperror.NotFound(fmt.Sprintf("category %s not found", slug))
	}

	if err := s.repo.Category.DeleteBySlug(ctx, slug); err != nil {
		return apperror.Internal(err)
	}

	return nil
}

func (s *catalogService) ListGenres(ctx context.Context, search *string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CatalogItemResponse], error) {
	genres, err := s.repo.Genre.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	total, err := s.repo.Genre.CountAll(ctx, search)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	items := make([]response.CatalogItemResponse, len(genres))
	for i, genre := range genres {
		items[i] = response.GenreToResponse(genre)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *catalogService) CreateGenre(ctx context.Context, actor policy.Actor, req *request.CreateCatalogItemRequest) (*response.CatalogItemResponse, error) {
	if !policy.Allows(policy.ActionWrite, policy.ResourceCatalog, actor) {
		return nil, apperror.Forbidden("Admin access required")
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.repo.Genre.Create(ctx, genre); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.ValidationField("slug", "This slug is already in use")
		}
		return nil, apperror.Internal(err)
	}

	s.log.Info("Genre created", zap.String("slug", genre.Slug))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *catalogService) DeleteGenre(ctx context.Context, actor policy.Actor, slug string) error {
	if !policy.Allows(policy.ActionWrite, policy.ResourceCatalog, actor) {
		return apperror.Forbidden("Admin access required")
	}

	genre, err := s.repo.Genre.FindBySlug(ctx, slug)
	if err != nil {
		return apperror.Internal(err)
	}
	if genre == nil {
		return apperror.NotFound(fmt.Sprintf("genre %s not found", slug))
	}

	if err := s.repo.Genre.DeleteBySlug(ctx, slug); err != nil {
		return apperror.Internal(err)
	}

	return nil
}
