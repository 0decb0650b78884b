package submissions

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Submit)
	r.Get("/{id}", h.Show)
}
