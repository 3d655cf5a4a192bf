package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/lusotown/lusotown-backend/internal/auth"
)

// RegisterRoutes registers all profile routes
func RegisterRoutes(r chi.Router, handler *Handler, authMiddleware *auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/api/v1/profile/setup", handler.SetupProfile)
		r.Get("/api/v1/profile", handler.GetMyProfile)
		r.Put("/api/v1/profile", handler.UpdateProfile)
		r.Post("/api/v1/profile/picture", handler.UploadProfilePicture)

		r.Get("/api/v1/members/{memberId}/profile", handler.GetMember)
	})
}
