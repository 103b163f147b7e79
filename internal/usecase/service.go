package usecase

import (
	"yamdb-api/internal/apperror"
	"yamdb-api/internal/data/repository"
	"yamdb-api/pkg/mailer"
	"yamdb-api/pkg/token"
	"yamdb-api/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Catalog CatalogService
	Title   TitleService
	Review  ReviewService
	Comment CommentService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	tokens *token.Service,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, mail, tokens, log),
		User:    NewUserService(repo.User, log),
		Catalog: NewCatalogService(repo, log),
		Title:   NewTitleService(repo, log),
		Review:  NewReviewService(repo, log),
		Comment: NewCommentService(repo, log),
	}
}

// validateRequest runs struct validation and wraps failures in the
// shared error taxonomy
func validateRequest(data interface{}) error {
	if errs := utils.ValidateStruct(data); len(errs) > 0 {
		return apperror.Validation("Validation failed", errs)
	}
	return nil
}
