package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers bundles the resource handlers mounted by the router.
type Handlers struct {
	Users      *UserHandler
	Products   *ProductHandler
	Categories *CategoryHandler
	Orders     *OrderHandler
	Reviews    *ReviewHandler
}

func NewRouter(h Handlers, logger *zap.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.Users.Create)
			r.Get("/", h.Users.List)
			r.Get("/{id}", h.Users.GetByID)
			r.Put("/{id}", h.Users.Update)
			r.Delete("/{id}", h.Users.Delete)
			r.Get("/{id}/orders", h.Orders.ListByUser)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", h.Products.Create)
			r.Get("/", h.Products.List)
			r.Get("/{id}", h.Products.GetByID)
			r.Put("/{id}", h.Products.Update)
			r.Delete("/{id}", h.Products.Delete)
			r.Get("/{id}/reviews", h.Reviews.ListByProduct)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", h.Categories.Create)
			r.Get("/", h.Categories.List)
			r.Get("/{id}", h.Categories.GetByID)
			r.Put("/{id}", h.Categories.Update)
			r.Delete("/{id}", h.Categories.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Orders.Create)
			r.Get("/", h.Orders.List)
			r.Get("/{id}", h.Orders.GetByID)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", h.Reviews.Create)
			r.Delete("/{id}", h.Reviews.Delete)
		})
	})

	return r
}
