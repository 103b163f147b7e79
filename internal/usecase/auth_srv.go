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
	"yamdb-api/pkg/database"
	"yamdb-api/pkg/mailer"
	"yamdb-api/pkg/token"
	"yamdb-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reservedUsernames can never be registered; "me" is routed to the
// caller's own profile.
var reservedUsernames = map[string]bool{
	"me": true,
}

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   mailer.Mailer
	tokens *token.Service
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	tokens *token.Service,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mail:   mail,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Signup registers a user and mails a confirmation code. Re-signup with
// the exact same username+email pair is idempotent: the existing user
// gets a fresh code. A partial match is a uniqueness conflict.
func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if reservedUsernames[req.Username] {
		return nil, apperror.ValidationField("username", "This username is reserved")
	}

	byUsername, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	byEmail, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var user *entity.User

	switch {
	case byUsername == nil && byEmail == nil:
		user, err = s.createUser(ctx, req)
		if err != nil {
			return nil, err
		}

	case byUsername != nil && byEmail != nil && byUsername.ID == byEmail.ID:
		// Same person signing up again; re-issue the code
		user = byUsername

	case byUsername != nil:
		return nil, apperror.ValidationField("username", "This username is already taken")

	default:
		return nil, apperror.ValidationField("email", "This email is already registered")
	}

	if err := s.issueConfirmation(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("Signup processed",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return &response.SignupResponse{
		Email:    user.Email,
		Username: user.Username,
	}, nil
}

// Token exchanges a valid confirmation code for a signed access token
func (s *authService) Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound(fmt.Sprintf("user %s not found", req.Username))
	}

	confirmation, err := s.repo.Confirmation.FindActiveByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if confirmation == nil || !utils.CheckCodeHash(req.ConfirmationCode, confirmation.CodeHash) {
		return nil, apperror.ValidationField("confirmation_code", "Invalid or expired confirmation code")
	}

	if err := s.repo.Confirmation.MarkAsUsed(ctx, confirmation.ID); err != nil {
		s.log.Warn("Failed to mark confirmation as used",
			zap.Error(err),
			zap.String("confirmation_id", confirmation.ID.String()),
		)
		// Continue anyway
	}

	signed, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		s.log.Error("Failed to sign access token",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, apperror.Internal(err)
	}

	s.log.Info("Access token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return &response.TokenResponse{Token: signed}, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createUser(ctx context.Context, req *request.SignupRequest) (*entity.User, error) {
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: req.Username,
		Email:    req.Email,
		Role:     entity.RoleUser,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// A concurrent signup may have won the race on username or
		// email; the unique indexes catch what the pre-check missed
		if database.IsUniqueViolation(err) {
			return nil, apperror.ValidationField("username", "Username or email is already registered")
		}
		return nil, apperror.Internal(err)
	}

	return user, nil
}

func (s *authService) issueConfirmation(ctx context.Context, user *entity.User) error {
	code := utils.GenerateConfirmationCode(s.config.Confirmation.Length)

	codeHash, err := utils.HashCode(code)
	if err != nil {
		s.log.Error("Failed to hash confirmation code", zap.Error(err))
		return apperror.Internal(err)
	}

	confirmation := &entity.Confirmation{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		CodeHash:  codeHash,
		ExpiresAt: time.Now().Add(time.Duration(s.config.Confirmation.ExpiryMinutes) * time.Minute),
	}

	if err := s.repo.Confirmation.Create(ctx, confirmation); err != nil {
		return apperror.Internal(err)
	}

	// Delivery is fire-and-forget; a mail failure must not fail signup
	go s.sendConfirmationMail(user.Email, user.Username, code)

	return nil
}

func (s *authService) sendConfirmationMail(email, username, code string) {
	body := fmt.Sprintf("Hello %s,\n\nYour confirmation code: %s\n", username, code)

	if err := s.mail.Send(email, "YaMDb confirmation code", body); err != nil {
		s.log.Error("Failed to send confirmation mail",
			zap.Error(err),
			zap.String("email", email),
		)
	}
}
