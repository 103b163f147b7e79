package wire

import (
	"yamdb-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/v1/auth/signup - Register and receive a confirmation code
	r.Post("/api/v1/auth/signup", authHandler.Signup)

	// POST /api/v1/auth/token - Exchange a confirmation code for a JWT
	r.Post("/api/v1/auth/token", authHandler.Token)
}
