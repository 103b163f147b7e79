package usecase

import (
	"context"
	"testing"
	"time"

	"yamdb-api/internal/apperror"
	"yamdb-api/internal/data/entity"
	"yamdb-api/internal/data/repository"
	"yamdb-api/internal/dto/request"
	"yamdb-api/pkg/token"
	"yamdb-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testAuthService(repo *repository.Repository) AuthService {
	config := &utils.Config{
		Confirmation: utils.ConfirmationConfig{
			ExpiryMinutes: 15,
			Length:        6,
		},
	}
	tokens := token.NewService("test-secret", 24)

	mail := new(MockMailer)
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	return NewAuthService(repo, config, mail, tokens, testLogger())
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("reserved username is rejected", func(t *testing.T) {
		repo, users, _, _, _, _, _, _, _ := testRepository()
		svc := testAuthService(repo)

		_, err := svc.Signup(ctx, &request.SignupRequest{
			Email:    "me@example.com",
			Username: "me",
		})

		assert.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("new user gets created and receives a code", func(t *testing.T) {
		repo, users, confirmations, _, _, _, _, _, _ := testRepository()
		svc := testAuthService(repo)

		users.On("FindByUsername", ctx, "alice").Return(nil, nil)
		users.On("FindByEmail", ctx, "alice@example.com").Return(nil, nil)
		users.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
		confirmations.On("Create", ctx, mock.AnythingOfType("*entity.Confirmation")).Return(nil)

		resp, err := svc.Signup(ctx, &request.SignupRequest{
			Email:    "alice@example.com",
			Username: "alice",
		})

		assert.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, "alice@example.com", resp.Email)
		users.AssertExpectations(t)
		confirmations.AssertExpectations(t)
	})

	t.Run("same pair is idempotent and reissues a code", func(t *testing.T) {
		repo, users, confirmations, _, _, _, _, _, _ := testRepository()
		svc := testAuthService(repo)

		existing := &entity.User{
			Base:     entity.Base{ID: uuid.New()},
			Username: "alice",
			Email:    "alice@example.com",
			Role:     entity.RoleUser,
		}
		users.On("FindByUsername", ctx, "alice").Return(existing, nil)
		users.On("FindByEmail", ctx, "alice@example.com").Return(existing, nil)
		confirmations.On("Create", ctx, mock.AnythingOfType("*entity.Confirmation")).Return(nil)

		resp, err := svc.Signup(ctx, &request.SignupRequest{
			Email:    "alice@example.com",
			Username: "alice",
		})

		assert.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		confirmations.AssertExpectations(t)
	})

	t.Run("taken username with foreign email conflicts", func(t *testing.T) {
		repo, users, _, _, _, _, _, _, _ := testRepository()
		svc := testAuthService(repo)

		existing := &entity.User{
			Base:     entity.Base{ID: uuid.New()},
			Username: "alice",
			Email:    "other@example.com",
		}
		users.On("FindByUsername", ctx, "alice").Return(existing, nil)
		users.On("FindByEmail", ctx, "alice@example.com").Return(nil, nil)

		_, err := svc.Signup(ctx, &request.SignupRequest{
			Email:    "alice@example.com",
			Username: "alice",
		})

		assert.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Contains(t, apperror.FieldsOf(err), "username")
	})

	t.Run("taken email with foreign username conflicts", func(t *testing.T) {
		repo, users, _, _, _, _, _, _, _ := testRepository()
		svc := testAuthService(repo)

		existing := &entity.User{
			Base:     entity.Base{ID: uuid.New()},
			Username: "other",
			Email:    "alice@example.com",
		}
		users.On("FindByUsername", ctx, "alice").Return(nil, nil)
		users.On("FindByEmail", ctx, "alice@example.com").Return(existing, nil)

		_, err := svc.Signup(ctx, &request.SignupRequest{
			Email:    "alice@example.com",
			Username: "alice",
		})

		assert.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Contains(t, apperror.FieldsOf(err), "email")
	})
}

func TestAuthService_Token(t *testing.T) {
	ctx := context.Background()

	user := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "alice",
		Email:    "alice@example.com",
		Role:     entity.RoleUser,
	}

	codeHash, err := utils.HashCode("123456")
	assert.NoError(t, err)

	confirmation := &entity.Confirmation{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		UserID:     user.ID,
		CodeHash:   codeHash,
		ExpiresAt:  time.Now().Add(15 * time.Minute),
	}

	t.Run("valid code yields a token", func(t *testing.T) {
		repo, users, confirmations, _, _, _, _, _, _ := testRepository()
		svc := testAuthService(repo)

		users.On("FindByUsername", ctx, "alice").Return(user, nil)
		confirmations.On("FindActiveByUserID", ctx, user.ID).Return(confirmation, nil)
		confirmations.On("MarkAsUsed", ctx, confirmation.ID).Return(nil)

		resp, err := svc.Token(ctx, &request.TokenRequest{
			Username:         "alice",
			ConfirmationCode: "123456",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		confirmations.AssertExpectations(t)
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		repo, users, confirmations, _, _, _, _, _, _ := testRepository()
		svc := testAuthService(repo)

		users.On("FindByUsername", ctx, "alice").Return(user, nil)
		confirmations.On("FindActiveByUserID", ctx, user.ID).Return(confirmation, nil)

		_, err := svc.Token(ctx, &request.TokenRequest{
			Username:         "alice",
			ConfirmationCode: "654321",
		})

		assert.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		repo, users, _, _, _, _, _, _, _ := testRepository()
		svc := testAuthService(repo)

		users.On("FindByUsername", ctx, "ghost").Return(nil, nil)

		_, err := svc.Token(ctx, &request.TokenRequest{
			Username:         "ghost",
			ConfirmationCode: "123456",
		})

		assert.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}
