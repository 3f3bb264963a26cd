package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusbook/appointments/internal/domain"
	mw "github.com/campusbook/appointments/internal/http/middleware"
)

// Routes mounts the API on a router. The auth gate and rate limiter come in
// as plain middleware so tests can swap them.
func (h *Handlers) Routes(requireAuth func(http.Handler) http.Handler, rateLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(r chi.Router) {
		if rateLimit != nil {
			r.Use(rateLimit)
		}
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Route("/booking", func(r chi.Router) {
		r.Use(requireAuth)

		r.With(mw.RequireRole(domain.RoleProfessor)).Post("/slots", h.CreateSlot)
		r.Get("/slots", h.ListSlots)
		r.With(mw.RequireRole(domain.RoleStudent)).Post("/book", h.Book)
		r.With(mw.RequireRole(domain.RoleProfessor)).Delete("/cancel/{slotID}", h.Cancel)
		r.With(mw.RequireRole(domain.RoleStudent)).Get("/appointments", h.ListAppointments)
	})

	return r
}
