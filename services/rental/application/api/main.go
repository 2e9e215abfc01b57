package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentrobe/rentrobe/pkg/app"
	"github.com/rentrobe/rentrobe/pkg/auth"
	"github.com/rentrobe/rentrobe/services/rental/application/handlers"
	appsvcs "github.com/rentrobe/rentrobe/services/rental/application/services"
)

// RentalRoutes registers rental and review endpoints on the provided chi router.
func RentalRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), auth.RequireAuth(a.SessionStore, a.Logger))
}

// Mount registers the routes over svcs. Reading an item's reviews is public;
// everything else runs behind requireAuth.
func Mount(r chi.Router, svcs *appsvcs.Services, requireAuth func(http.Handler) http.Handler) {
	reviews := handlers.NewReviewsHandler(svcs)
	rentals := handlers.NewGetRentalsHandler(svcs)

	r.Get("/items/{id}/reviews", reviews.ListForItem)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Route("/rentals", func(r chi.Router) {
			r.Post("/", handlers.NewPostRentalHandler(svcs).Execute)
			r.Get("/", rentals.List)
			r.Get("/{id}", rentals.Get)
			r.Put("/{id}/status", handlers.NewPutRentalStatusHandler(svcs).Execute)
		})
		r.Post("/reviews", reviews.Create)
	})
}
