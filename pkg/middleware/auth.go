package middleware

import (
	"net/http"
	"strings"

	"yamdb-api/internal/data/repository"
	"yamdb-api/pkg/token"
	"yamdb-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Auth validates the bearer token and loads the caller into the
// request context. The role comes from storage, not from the token, so
// a promotion or demotion applies on the very next request.
func Auth(tokens *token.Service, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := parseBearer(w, r, tokens)
			if !ok {
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Auth: failed to load user",
					zap.Error(err),
					zap.String("user_id", claims.UserID),
				)
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil {
				// Token outlived the account
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role), user.IsSuperuser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseBearer(w http.ResponseWriter, r *http.Request, tokens *token.Service) (*token.Claims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		utils.ResponseUnauthorized(w, "Missing authorization token")
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
		return nil, false
	}

	claims, err := tokens.Parse(parts[1])
	if err != nil {
		utils.ResponseUnauthorized(w, "Invalid or expired token")
		return nil, false
	}

	return claims, true
}
