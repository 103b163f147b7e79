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

type UserService interface {
	// Admin user management, keyed by username
	List(ctx context.Context, actor policy.Actor, search *string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	Create(ctx context.Context, actor policy.Actor, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetByUsername(ctx context.Context, actor policy.Actor, username string) (*response.UserResponse, error)
	UpdateByUsername(ctx context.Context, actor policy.Actor, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteByUsername(ctx context.Context, actor policy.Actor, username string) error

	// The caller's own profile
	GetProfile(ctx context.Context, actor policy.Actor) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, actor policy.Actor, req *request.UpdateProfileRequest) (*response.UserResponse, error)
}

type userService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) List(ctx context.Context, actor policy.Actor, search *string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if !policy.Allows(policy.ActionRead, policy.ResourceUsers, actor) {
		return nil, apperror.Forbidden("Admin access required")
	}

	users, err := s.users.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	total, err := s.users.CountAll(ctx, search)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.Limit(), total), nil
}

func (s *userService) Create(ctx context.Context, actor policy.Actor, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if !policy.Allows(policy.ActionWrite, policy.ResourceUsers, actor) {
		return nil, apperror.Forbidden("Admin access required")
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.Username == "me" {
		return nil, apperror.ValidationField("username", "This username is reserved")
	}

	role := entity.RoleUser
	if req.Role != nil {
		role = entity.UserRole(*req.Role)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: req.Username,
		Email:    req.Email,
		Role:     role,
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.users.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.ValidationField("username", "Username or email is already registered")
		}
		return nil, apperror.Internal(err)
	}

	s.log.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetByUsername(ctx context.Context, actor policy.Actor, username string) (*response.UserResponse, error) {
	if !policy.Allows(policy.ActionRead, policy.ResourceUsers, actor) {
		return nil, apperror.Forbidden("Admin access required")
	}

	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateByUsername(ctx context.Context, actor policy.Actor, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if !policy.Allows(policy.ActionWrite, policy.ResourceUsers, actor) {
		return nil, apperror.Forbidden("Admin access required")
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	applyProfileFields(user, req.Username, req.Email, req.FirstName, req.LastName, req.Bio)
	if req.Role != nil {
		// The elevated path is the only place a role may change
		user.Role = entity.UserRole(*req.Role)
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.ValidationField("username", "Username or email is already registered")
		}
		return nil, apperror.Internal(err)
	}

	s.log.Info("User updated by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) DeleteByUsername(ctx context.Context, actor policy.Actor, username string) error {
	if !policy.Allows(policy.ActionWrite, policy.ResourceUsers, actor) {
		return apperror.Forbidden("Admin access required")
	}

	user, err := s.findUser(ctx, username)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return apperror.Internal(err)
	}

	return nil
}

func (s *userService) GetProfile(ctx context.Context, actor policy.Actor) (*response.UserResponse, error) {
	if !policy.Allows(policy.ActionRead, policy.ResourceSelfProfile, actor) {
		return nil, apperror.Unauthorized("Authentication required")
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateProfile edits the caller's own mutable fields. The request type
// has no role field, so a role change can not travel through here.
func (s *userService) UpdateProfile(ctx context.Context, actor policy.Actor, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if !policy.Allows(policy.ActionWrite, policy.ResourceSelfProfile, actor) {
		return nil, apperror.Unauthorized("Authentication required")
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username == "me" {
		return nil, apperror.ValidationField("username", "This username is reserved")
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	applyProfileFields(user, req.Username, req.Email, req.FirstName, req.LastName, req.Bio)
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.ValidationField("username", "Username or email is already registered")
		}
		return nil, apperror.Internal(err)
	}

	s.log.Info("Profile updated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *userService) findUser(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound(fmt.Sprintf("user %s not found", username))
	}
	return user, nil
}

func applyProfileFields(user *entity.User, username, email, firstName, lastName, bio *string) {
	if username != nil {
		user.Username = *username
	}
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
}
