package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router wires the job-submission endpoints onto a chi router.
func Router(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Post("/jobs", h.Submit)
	r.Post("/jobs/save", h.Save)
	r.Get("/jobs/{cluster}/poll", h.Poll)
	r.Get("/jobs/{cluster}/status", h.Status)
	r.Get("/health", h.Health)

	return r
}
