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

type ReviewService interface {
	List(ctx context.Context, titleID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetByID(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error)
	Create(ctx context.Context, actor policy.Actor, titleID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Update(ctx context.Context, actor policy.Actor, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, actor policy.Actor, titleID, reviewID uuid.UUID) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) List(ctx context.Context, titleID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, titleID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	total, err := s.repo.Review.CountByTitleID(ctx, titleID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review, s.authorUsername(ctx, review.AuthorID))
	}

	return response.NewPaginatedResponse(reviewResponses, req.Page, req.Limit(), total), nil
}

func (s *reviewService) GetByID(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, s.authorUsername(ctx, review.AuthorID))
	return &resp, nil
}

// Create adds the actor's review of a title. One review per author per
// title: a pre-check gives a friendly error and the unique index on
// (author_id, title_id) settles concurrent submissions.
func (s *reviewService) Create(ctx context.Context, actor policy.Actor, titleID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if !policy.Allows(policy.ActionWrite, policy.ResourceReview, actor) {
		return nil, apperror.Unauthorized("Authentication required")
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	existing, err := s.repo.Review.FindByAuthorAndTitle(ctx, actor.ID, titleID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Validation("You have already reviewed this title", nil)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Validation("You have already reviewed this title", nil)
		}
		return nil, apperror.Internal(err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", titleID.String()),
		zap.String("author_id", actor.ID.String()),
	)

	resp := response.ReviewToResponse(review, s.authorUsername(ctx, review.AuthorID))
	return &resp, nil
}

func (s *reviewService) Update(ctx context.Context, actor policy.Actor, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !policy.AllowsRecord(policy.ActionWrite, policy.ResourceReview, actor, review.AuthorID) {
		return nil, apperror.Forbidden("You can only edit your own review")
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("Review updated",
		zap.String("review_id", review.ID.String()),
		zap.String("actor_id", actor.ID.String()),
	)

	resp := response.ReviewToResponse(review, s.authorUsername(ctx, review.AuthorID))
	return &resp, nil
}

func (s *reviewService) Delete(ctx context.Context, actor policy.Actor, titleID, reviewID uuid.UUID) error {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !policy.AllowsRecord(policy.ActionWrite, policy.ResourceReview, actor, review.AuthorID) {
		return apperror.Forbidden("You can only delete your own review")
	}

	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		return apperror.Internal(err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID.String()),
		zap.String("actor_id", actor.ID.String()),
	)

	return nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) checkTitle(ctx context.Context, titleID uuid.UUID) error {
	title, err := s.repo.Title.FindByID(ctx, titleID)
	if err != nil {
		return apperror.Internal(err)
	}
	if title == nil {
		return apperror.NotFound(fmt.Sprintf("title %s not found", titleID.String()))
	}
	return nil
}

// findReview loads a review and verifies it belongs to the title in
// the URL, so a review can not be reached through a foreign title
func (s *reviewService) findReview(ctx context.Context, titleID, reviewID uuid.UUID) (*entity.Review, error) {
	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if review == nil || review.TitleID != titleID {
		return nil, apperror.NotFound(fmt.Sprintf("review %s not found", reviewID.String()))
	}
	return review, nil
}

func (s *reviewService) authorUsername(ctx context.Context, authorID uuid.UUID) string {
	author, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil || author == nil {
		return ""
	}
	return author.Username
}
