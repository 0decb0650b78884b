package calendar

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/form-data", h.FormData)
	r.Get("/events", h.List)
	r.Post("/events", h.Create)
	r.Post("/events/update", h.Update)
	r.Post("/events/delete", h.Delete)
}
