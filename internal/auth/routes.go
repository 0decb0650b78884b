package auth

import (
	"github.com/go-chi/chi/v5"
)

// MountPublicRoutes attaches routes that do not require authentication.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
	r.Post("/verify-otp", h.VerifyOTP)
	r.Get("/token", h.Token)
}

// MountProtectedRoutes attaches routes that require a verified actor.
func (h *Handler) MountProtectedRoutes(r chi.Router) {
	r.Get("/me", h.Me)
}
