package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/quiz-proctor/internal/auth"
)

// Routes mounts the student-facing quiz API. state serves the caller's
// saved progress and lives with the group package.
func Routes(h *Handler, state http.HandlerFunc) http.Handler {
	r := chi.NewRouter()

	r.Get("/active", h.GetActive)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.With(auth.RequireRole(auth.RoleGroup)).Post("/submit", h.Submit)
		r.With(auth.RequireRole(auth.RoleGroup)).Get("/state", state)
		r.With(auth.RequireRole(auth.RoleAdmin)).Get("/results", h.Results)
	})

	return r
}
