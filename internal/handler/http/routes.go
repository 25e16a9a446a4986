package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes requiring a bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/events", func(r chi.Router) {
			r.Get("/", h.listEvents)
			r.Post("/", h.createEvent)
			r.Patch("/{id}", h.updateEvent)
			r.Delete("/{id}", h.deleteEvent)
		})

		r.Route("/api/journal", func(r chi.Router) {
			r.Get("/", h.listJournalEntries)
			r.Post("/", h.createJournalEntry)
			r.Patch("/{id}", h.updateJournalEntry)
			r.Delete("/{id}", h.deleteJournalEntry)
		})

		r.Route("/api/sessions", func(r chi.Router) {
			r.Get("/", h.listSessions)
			r.Post("/", h.createSession)
			r.Patch("/{id}", h.updateSession)
			r.Delete("/{id}", h.deleteSession)
		})

		r.Route("/api/goals", func(r chi.Router) {
			r.Get("/", h.listGoals)
			r.Post("/", h.createGoal)
			r.Patch("/{id}", h.updateGoal)
			r.Delete("/{id}", h.deleteGoal)
		})
	})

	return router
}
