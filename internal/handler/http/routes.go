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

	// both endpoints require a valid pairing token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/handshake", h.handshake)
		r.Post("/sync", h.sync)
	})

	return router
}
