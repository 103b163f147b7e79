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

func userActor(id uuid.UUID) policy.Actor {
	return policy.Actor{Authenticated: true, ID: id, Role: entity.RoleUser}
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	titleID := uuid.New()
	authorID := uuid.New()
	title := &entity.Title{Base: entity.Base{ID: titleID}, Name: "Dune", Year: 2021}
	author := &entity.User{Base: entity.Base{ID: authorID}, Username: "alice"}

	req := &request.CreateReviewRequest{Text: "Stunning", Score: 9}

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		repo, _, _, _, _, _, _, _, _ := testRepository()
		svc := NewReviewService(repo, testLogger())

		_, err := svc.Create(ctx, policy.Anonymous, titleID, req)

		assert.Error(t, err)
		assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	})

	t.Run("creates a review and echoes the author", func(t *testing.T) {
		repo, users, _, _, _, titles, _, reviews, _ := testRepository()
		svc := NewReviewService(repo, testLogger())

		titles.On("FindByID", ctx, titleID).Return(title, nil)
		reviews.On("FindByAuthorAndTitle", ctx, authorID, titleID).Return(nil, nil)
		reviews.On("Create", ctx, mock.AnythingOfType("*entity.Review")).Return(nil)
		users.On("FindByID", ctx, authorID).Return(author, nil)

		resp, err := svc.Create(ctx, userActor(authorID), titleID, req)

		assert.NoError(t, err)
		assert.Equal(t, 9, resp.Score)
		assert.Equal(t, "alice", resp.Author)
		reviews.AssertExpectations(t)
	})

	t.Run("second review of the same title is rejected", func(t *testing.T) {
		repo, _, _, _, _, titles, _, reviews, _ := testRepository()
		svc := NewReviewService(repo, testLogger())

		existing := &entity.Review{
			BaseSimple: entity.BaseSimple{ID: uuid.New()},
			TitleID:    titleID,
			AuthorID:   authorID,
		}
		titles.On("FindByID", ctx, titleID).Return(title, nil)
		reviews.On("FindByAuthorAndTitle", ctx, authorID, titleID).Return(existing, nil)

		_, err := svc.Create(ctx, userActor(authorID), titleID, req)

		assert.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("losing a concurrent race maps to the same rejection", func(t *testing.T) {
		repo, _, _, _, _, titles, _, reviews, _ := testRepository()
		svc := NewReviewService(repo, testLogger())

		titles.On("FindByID", ctx, titleID).Return(title, nil)
		reviews.On("FindByAuthorAndTitle", ctx, authorID, titleID).Return(nil, nil)
		reviews.On("Create", ctx, mock.AnythingOfType("*entity.Review")).
			Return(&pgconn.PgError{Code: "23505"})

		_, err := svc.Create(ctx, userActor(authorID), titleID, req)

		assert.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("unknown title is not found", func(t *testing.T) {
		repo, _, _, _, _, titles, _, _, _ := testRepository()
		svc := NewReviewService(repo, testLogger())

		titles.On("FindByID", ctx, titleID).Return(nil, nil)

		_, err := svc.Create(ctx, userActor(authorID), titleID, req)

		assert.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestReviewService_OwnershipRules(t *testing.T) {
	ctx := context.Background()
	titleID := uuid.New()
	authorID := uuid.New()
	reviewID := uuid.New()

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: reviewID},
		TitleID:    titleID,
		AuthorID:   authorID,
		Text:       "Great",
		Score:      8,
	}

	newText := "Even better on a rewatch"

	t.Run("a stranger can not edit it", func(t *testing.T) {
		repo, _, _, _, _, _, _, reviews, _ := testRepository()
		svc := NewReviewService(repo, testLogger())

		reviews.On("FindByID", ctx, reviewID).Return(review, nil)

		_, err := svc.Update(ctx, userActor(uuid.New()), titleID, reviewID, &request.UpdateReviewRequest{Text: &newText})

		assert.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("a moderator can delete it", func(t *testing.T) {
		repo, _, _, _, _, _, _, reviews, _ := testRepository()
		svc := NewReviewService(repo, testLogger())

		moderator := policy.Actor{Authenticated: true, ID: uuid.New(), Role: entity.RoleModerator}
		reviews.On("FindByID", ctx, reviewID).Return(review, nil)
		reviews.On("Delete", ctx, reviewID).Return(nil)

		err := svc.Delete(ctx, moderator, titleID, reviewID)

		assert.NoError(t, err)
		reviews.AssertExpectations(t)
	})

	t.Run("the author can edit their own", func(t *testing.T) {
		repo, users, _, _, _, _, _, reviews, _ := testRepository()
		svc := NewReviewService(repo, testLogger())

		reviews.On("FindByID", ctx, reviewID).Return(review, nil)
		reviews.On("Update", ctx, mock.AnythingOfType("*entity.Review")).Return(nil)
		users.On("FindByID", ctx, authorID).Return(&entity.User{Base: entity.Base{ID: authorID}, Username: "alice"}, nil)

		resp, err := svc.Update(ctx, userActor(authorID), titleID, reviewID, &request.UpdateReviewRequest{Text: &newText})

		assert.NoError(t, err)
		assert.Equal(t, newText, resp.Text)
	})

	t.Run("a review reached through a foreign title is not found", func(t *testing.T) {
		repo, _, _, _, _, _, _, reviews, _ := testRepository()
		svc := NewReviewService(repo, testLogger())

		reviews.On("FindByID", ctx, reviewID).Return(review, nil)

		_, err := svc.GetByID(ctx, uuid.New(), reviewID)

		assert.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}
