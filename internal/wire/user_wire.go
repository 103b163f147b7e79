package wire

import (
	"net/http"

	"yamdb-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth func(http.Handler) http.Handler) {
	// Everything under /api/v1/users requires a signed-in caller; the
	// service layer decides who gets past /users/me
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(auth)

		// Own profile; registered before {username} so "me" never
		// resolves as someone's name
		r.Get("/me", userHandler.GetProfile)
		r.Patch("/me", userHandler.UpdateProfile)

		// Admin user management
		r.Get("/", userHandler.GetUsers)
		r.Post("/", userHandler.CreateUser)
		r.Get("/{username}", userHandler.GetUser)
		r.Patch("/{username}", userHandler.UpdateUser)
		r.Delete("/{username}", userHandler.DeleteUser)
	})
}
