package usecase

import (
	"context"
	"testing"

	"yamdb-api/internal/apperror"
	"yamdb-api/internal/data/entity"
	"yamdb-api/internal/dto/request"
	"yamdb-api/internal/policy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCatalogService_Categories(t *testing.T) {
	ctx := context.Background()

	t.Run("anyone can list", func(t *testing.T) {
		repo, _, _, categories, _, _, _, _, _ := testRepository()
		svc := NewCatalogService(repo, testLogger())

		stored := []*entity.Category{
			{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Movies", Slug: "movies"},
		}
		categories.On("FindAll", ctx, (*string)(nil), 10, 0).Return(stored, nil)
		categories.On("CountAll", ctx, (*string)(nil)).Return(int64(1), nil)

		resp, err := svc.ListCategories(ctx, nil, &request.PaginatedRequest{Page: 1, PerPage: 10})

		assert.NoError(t, err)
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, "movies", resp.Data[0].Slug)
	})

	t.Run("only an admin can create", func(t *testing.T) {
		repo, _, _, categories, _, _, _, _, _ := testRepository()
		svc := NewCatalogService(repo, testLogger())

		_, err := svc.CreateCategory(ctx, userActor(uuid.New()), &request.CreateCatalogItemRequest{
			Name: "Movies",
			Slug: "movies",
		})

		assert.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("a duplicate slug is rejected", func(t *testing.T) {
		repo, _, _, categories, _, _, _, _, _ := testRepository()
		svc := NewCatalogService(repo, testLogger())

		categories.On("Create", ctx, mock.AnythingOfType("*entity.Category")).
			Return(&pgconn.PgError{Code: "23505"})

		_, err := svc.CreateCategory(ctx, adminActor(), &request.CreateCatalogItemRequest{
			Name: "Movies",
			Slug: "movies",
		})

		assert.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Contains(t, apperror.FieldsOf(err), "slug")
	})

	t.Run("deleting a missing slug is not found", func(t *testing.T) {
		repo, _, _, categories, _, _, _, _, _ := testRepository()
		svc := NewCatalogService(repo, testLogger())

		categories.On("FindBySlug", ctx, "ghost").Return(nil, nil)

		err := svc.DeleteCategory(ctx, adminActor(), "ghost")

		assert.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestCatalogService_Genres(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates a genre", func(t *testing.T) {
		repo, _, _, _, genres, _, _, _, _ := testRepository()
		svc := NewCatalogService(repo, testLogger())

		genres.On("Create", ctx, mock.AnythingOfType("*entity.Genre")).Return(nil)

		resp, err := svc.CreateGenre(ctx, adminActor(), &request.CreateCatalogItemRequest{
			Name: "Science Fiction",
			Slug: "sci-fi",
		})

		assert.NoError(t, err)
		assert.Equal(t, "sci-fi", resp.Slug)
		genres.AssertExpectations(t)
	})

	t.Run("anonymous deletion is forbidden", func(t *testing.T) {
		repo, _, _, _, genres, _, _, _, _ := testRepository()
		svc := NewCatalogService(repo, testLogger())

		err := svc.DeleteGenre(ctx, policy.Anonymous, "sci-fi")

		assert.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		genres.AssertNotCalled(t, "DeleteBySlug", mock.Anything, mock.Anything)
	})
}
