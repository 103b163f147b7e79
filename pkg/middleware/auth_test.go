package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"yamdb-api/internal/data/entity"
	"yamdb-api/pkg/token"
	"yamdb-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubUserRepo serves a single user by ID
type stubUserRepo struct {
	user *entity.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }
func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}
func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) FindAll(ctx context.Context, search *string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (s *stubUserRepo) CountAll(ctx context.Context, search *string) (int64, error) { return 0, nil }
func (s *stubUserRepo) Update(ctx context.Context, user *entity.User) error         { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }

func TestAuth(t *testing.T) {
	tokens := token.NewService("test-secret", 1)
	logger := zap.NewNop()

	user := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "alice",
		Role:     entity.RoleModerator,
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, user.ID, userID)

		role, _ := utils.GetRoleFromContext(r.Context())
		assert.Equal(t, "moderator", role)

		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token loads the user into context", func(t *testing.T) {
		signed, err := tokens.Generate(user.ID, user.Username)
		assert.NoError(t, err)

		handler := Auth(tokens, &stubUserRepo{user: user}, logger)(next)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		handler := Auth(tokens, &stubUserRepo{user: user}, logger)(next)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed scheme is unauthorized", func(t *testing.T) {
		handler := Auth(tokens, &stubUserRepo{user: user}, logger)(next)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is unauthorized", func(t *testing.T) {
		foreign := token.NewService("other-secret", 1)
		signed, err := foreign.Generate(user.ID, user.Username)
		assert.NoError(t, err)

		handler := Auth(tokens, &stubUserRepo{user: user}, logger)(next)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for a deleted account is unauthorized", func(t *testing.T) {
		signed, err := tokens.Generate(uuid.New(), "ghost")
		assert.NoError(t, err)

		handler := Auth(tokens, &stubUserRepo{user: user}, logger)(next)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
