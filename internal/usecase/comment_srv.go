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

type CommentService interface {
	List(ctx context.Context, titleID, reviewID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	GetByID(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error)
	Create(ctx context.Context, actor policy.Actor, titleID, reviewID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	Update(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uuid.UUID, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	Delete(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uuid.UUID) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, reviewID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, reviewID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	commentResponses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		commentResponses[i] = response.CommentToResponse(comment, s.authorUsername(ctx, comment.AuthorID))
	}

	return response.NewPaginatedResponse(commentResponses, req.Page, req.Limit(), total), nil
}

func (s *commentService) GetByID(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, s.authorUsername(ctx, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) Create(ctx context.Context, actor policy.Actor, titleID, reviewID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if !policy.Allows(policy.ActionWrite, policy.ResourceComment, actor) {
		return nil, apperror.Unauthorized("Authentication required")
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", reviewID.String()),
		zap.String("author_id", actor.ID.String()),
	)

	resp := response.CommentToResponse(comment, s.authorUsername(ctx, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) Update(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uuid.UUID, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !policy.AllowsRecord(policy.ActionWrite, policy.ResourceComment, actor, comment.AuthorID) {
		return nil, apperror.Forbidden("You can only edit your own comment")
	}

	comment.Text = req.Text

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("Comment updated",
		zap.String("comment_id", comment.ID.String()),
		zap.String("actor_id", actor.ID.String()),
	)

	resp := response.CommentToResponse(comment, s.authorUsername(ctx, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) Delete(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID uuid.UUID) error {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !policy.AllowsRecord(policy.ActionWrite, policy.ResourceComment, actor, comment.AuthorID) {
		return apperror.Forbidden("You can only delete your own comment")
	}

	if err := s.repo.Comment.Delete(ctx, commentID); err != nil {
		return apperror.Internal(err)
	}

	s.log.Info("Comment deleted",
		zap.String("comment_id", commentID.String()),
		zap.String("actor_id", actor.ID.String()),
	)

	return nil
}

// ==================== HELPER METHODS ====================

// checkReview verifies the review exists and hangs off the title in
// the URL
func (s *commentService) checkReview(ctx context.Context, titleID, reviewID uuid.UUID) error {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return apperror.Internal(err)
	}
	if review == nil || review.TitleID != titleID {
		return apperror.NotFound(fmt.Sprintf("review %s not found", reviewID.String()))
	}
	return nil
}

func (s *commentService) findComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*entity.Comment, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment.FindByID(ctx, commentID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if comment == nil || comment.ReviewID != reviewID {
		return nil, apperror.NotFound(fmt.Sprintf("comment %s not found", commentID.String()))
	}
	return comment, nil
}

func (s *commentService) authorUsername(ctx context.Context, authorID uuid.UUID) string {
	author, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil || author == nil {
		return ""
	}
	return author.Username
}
