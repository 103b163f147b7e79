package usecase

import (
	"context"
	"testing"

	"yamdb-api/internal/apperror"
	"yamdb-api/internal/data/entity"
	"yamdb-api/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCommentService(t *testing.T) {
	ctx := context.Background()
	titleID := uuid.New()
	reviewID := uuid.New()
	authorID := uuid.New()

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: reviewID},
		TitleID:    titleID,
		AuthorID:   uuid.New(),
	}
	author := &entity.User{Base: entity.Base{ID: authorID}, Username: "bob"}

	t.Run("creates a comment under an existing review", func(t *testing.T) {
		repo, users, _, _, _, _, _, reviews, comments := testRepository()
		svc := NewCommentService(repo, testLogger())

		reviews.On("FindByID", ctx, reviewID).Return(review, nil)
		comments.On("Create", ctx, mock.AnythingOfType("*entity.Comment")).Return(nil)
		users.On("FindByID", ctx, authorID).Return(author, nil)

		resp, err := svc.Create(ctx, userActor(authorID), titleID, reviewID, &request.CreateCommentRequest{Text: "Agreed"})

		assert.NoError(t, err)
		assert.Equal(t, "Agreed", resp.Text)
		assert.Equal(t, "bob", resp.Author)
		comments.AssertExpectations(t)
	})

	t.Run("a review under a foreign title hides its comments", func(t *testing.T) {
		repo, _, _, _, _, _, _, reviews, _ := testRepository()
		svc := NewCommentService(repo, testLogger())

		reviews.On("FindByID", ctx, reviewID).Return(review, nil)

		_, err := svc.List(ctx, uuid.New(), reviewID, &request.PaginatedRequest{Page: 1, PerPage: 10})

		assert.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("only the author or a moderator may delete", func(t *testing.T) {
		repo, _, _, _, _, _, _, reviews, comments := testRepository()
		svc := NewCommentService(repo, testLogger())

		comment := &entity.Comment{
			BaseSimple: entity.BaseSimple{ID: uuid.New()},
			ReviewID:   reviewID,
			AuthorID:   authorID,
			Text:       "Agreed",
		}
		reviews.On("FindByID", ctx, reviewID).Return(review, nil)
		comments.On("FindByID", ctx, comment.ID).Return(comment, nil)

		err := svc.Delete(ctx, userActor(uuid.New()), titleID, reviewID, comment.ID)

		assert.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
