package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentrobe/rentrobe/pkg/app"
	"github.com/rentrobe/rentrobe/pkg/auth"
	"github.com/rentrobe/rentrobe/services/catalog/application/handlers"
	appsvcs "github.com/rentrobe/rentrobe/services/catalog/application/services"
)

// CatalogRoutes registers item, category and search endpoints on the provided chi router.
func CatalogRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), auth.RequireAuth(a.SessionStore, a.Logger))
}

// Mount registers the routes over svcs. Browsing is public; listing,
// removing and retiring run behind requireAuth. Routes are registered flat
// so other contexts can add /items/{id}/... endpoints on the same router.
func Mount(r chi.Router, svcs *appsvcs.Services, requireAuth func(http.Handler) http.Handler) {
	items := handlers.NewItemsHandler(svcs)
	categories := handlers.NewCategoriesHandler(svcs)

	r.Get("/categories", categories.List)
	r.Get("/items", items.List)
	r.Get("/items/{id}", items.Get)
	r.Get("/search", items.Search)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/items", handlers.NewPostItemHandler(svcs).Execute)
		r.Delete("/items/{id}", items.Delete)
		r.Get("/user/items", items.ListMine)
		r.Put("/categories/{slug}/deactivate", categories.Deactivate)
	})
}
