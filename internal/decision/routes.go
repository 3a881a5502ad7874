package decision

import "github.com/go-chi/chi/v5"

// MountRoutes attaches the decision endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/check", h.Check)
	r.Get("/decisions", h.Decisions)
	r.Get("/decisions/{id}", h.DecisionByID)
}
