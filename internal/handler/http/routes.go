package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, h.withMetrics, middleware.Recoverer)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/status", h.getStatus)
		r.Get("/stats", h.getStats)
		r.Get("/version", h.getServerVersion)
		r.Post("/users", h.createUser)
		r.Get("/connect", h.connect)
		r.Handle("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))
	})

	// public entries are readable without a session
	router.Group(func(r chi.Router) {
		r.Use(h.optionalAuth)
		r.Get("/files/{id}/data", h.getFileData)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/disconnect", h.disconnect)
		r.Get("/users/me", h.getMe)

		r.Post("/files", h.createFile)
		r.Get("/files", h.listFiles)
		r.Get("/files/{id}", h.getFile)
		r.Put("/files/{id}/publish", h.publishFile)
		r.Put("/files/{id}/unpublish", h.unpublishFile)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	return router
}
