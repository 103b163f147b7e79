package wire

import (
	"net/http"

	"yamdb-api/internal/adaptor"
	"yamdb-api/internal/data/repository"
	"yamdb-api/internal/usecase"
	"yamdb-api/pkg/mailer"
	"yamdb-api/pkg/middleware"
	"yamdb-api/pkg/token"
	"yamdb-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled application
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	tokens := token.NewService(config.JWT.Secret, config.JWT.ExpiryHours)
	mail := mailer.New(config.Email, logger)

	service := usecase.NewService(repo, config, mail, tokens, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, tokens, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens *token.Service,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS)

	// All protected routes share one auth chain
	auth := middleware.Auth(tokens, repo.User, logger)

	// Apply routes
	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, auth)
	wireCatalog(r, handler.Catalog, auth)
	wireTitle(r, handler.Title, auth)
	wireReview(r, handler.Review, auth)
	wireComment(r, handler.Comment, auth)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
