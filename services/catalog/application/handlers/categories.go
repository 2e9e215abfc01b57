package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentrobe/rentrobe/pkg/auth"
	"github.com/rentrobe/rentrobe/pkg/errhttp"
	"github.com/rentrobe/rentrobe/pkg/httpx"
	appsvcs "github.com/rentrobe/rentrobe/services/catalog/application/services"
)

// CategoriesHandler handles /categories.
type CategoriesHandler struct {
	svc *appsvcs.Services
}

func NewCategoriesHandler(svc *appsvcs.Services) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

// List returns active categories with item counts.
//
//	@Summary		List categories
//	@Tags			categories
//	@Produce		json
//	@Success		200	{object}	CategoryListResponse
//	@Router			/categories [get]
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories.ListCategories(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	resp := CategoryListResponse{Categories: make([]CategoryResponse, len(categories))}
	for i, c := range categories {
		resp.Categories[i] = CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			ItemCount:   c.ItemCount,
		}
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Deactivate retires a category.
//
//	@Summary		Deactivate category
//	@Tags			categories
//	@Param			slug	path	string	true	"Category slug"
//	@Success		204
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Router			/categories/{slug}/deactivate [put]
func (h *CategoriesHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CallerID(w, r); !ok {
		return
	}
	if err := h.svc.Categories.DeactivateCategory(r.Context(), chi.URLParam(r, "slug")); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
