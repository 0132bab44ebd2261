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
	router.Use(h.validateJSONRequest)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/logout", h.logout)
		r.Post("/api/seed", h.seed)
	})

	// routes serving both anonymous and authenticated callers
	router.Group(func(r chi.Router) {
		r.Use(h.authOptional)
		r.Get("/api/auth/me", h.me)
		r.Get("/api/notes", h.listNotes)
	})

	// routes with required authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/notes", h.createNote)
		r.Put("/api/notes", h.updateNote)
		r.Delete("/api/notes", h.deleteNote)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
