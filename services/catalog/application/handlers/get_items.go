package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rentrobe/rentrobe/pkg/auth"
	"github.com/rentrobe/rentrobe/pkg/errhttp"
	"github.com/rentrobe/rentrobe/pkg/httpx"
	"github.com/rentrobe/rentrobe/pkg/money"
	pkgvalidator "github.com/rentrobe/rentrobe/pkg/validator"
	appsvcs "github.com/rentrobe/rentrobe/services/catalog/application/services"
	catalogdomain "github.com/rentrobe/rentrobe/services/catalog/domain"
	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
)

type listItemsQuery struct {
	Size     string `json:"size"      validate:"omitempty,garment_size"`
	MinPrice int    `json:"min_price" validate:"gte=0,lte=10000000"`
	MaxPrice int    `json:"max_price" validate:"gte=0,lte=10000000"`
}

// ItemsHandler serves browsing, detail, owner listings and removal.
type ItemsHandler struct {
	svc *appsvcs.Services
}

func NewItemsHandler(svc *appsvcs.Services) *ItemsHandler {
	return &ItemsHandler{svc: svc}
}

// List returns one page of active items.
//
//	@Summary		List items
//	@Description	Active items, newest first. Prices are whole rupees; 0 means no bound.
//	@Tags			items
//	@Produce		json
//	@Param			category	query		string	false	"Category slug"
//	@Param			size		query		string	false	"Garment size"	Enums(XS, S, M, L, XL, XXL)
//	@Param			min_price	query		int		false	"Minimum price per day"
//	@Param			max_price	query		int		false	"Maximum price per day"
//	@Param			city		query		string	false	"City substring"
//	@Param			search		query		string	false	"Title or description substring"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			per_page	query		int		false	"Page size"
//	@Success		200			{object}	ItemListResponse
//	@Failure		422			{object}	httpx.ErrorBody
//	@Router			/items [get]
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := listItemsQuery{
		Size:     query.Get("size"),
		MinPrice: httpx.QueryInt(r, "min_price", 0),
		MaxPrice: httpx.QueryInt(r, "max_price", 0),
	}
	if !pkgvalidator.Check(w, &q) {
		return
	}
	minPrice, err := money.FromMajor(int64(q.MinPrice))
	if err != nil {
		errhttp.WriteError(w, fmt.Errorf("%w: min_price: %w", catalogdomain.ErrInvalidPrice, err))
		return
	}
	maxPrice, err := money.FromMajor(int64(q.MaxPrice))
	if err != nil {
		errhttp.WriteError(w, fmt.Errorf("%w: max_price: %w", catalogdomain.ErrInvalidPrice, err))
		return
	}

	filter := models.ItemFilter{
		CategorySlug: strings.ToLower(strings.TrimSpace(query.Get("category"))),
		Size:         models.Size(q.Size),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		City:         strings.TrimSpace(query.Get("city")),
		Search:       strings.TrimSpace(query.Get("search")),
	}
	page, err := h.svc.Items.ListItems(r.Context(), filter,
		httpx.QueryInt(r, "page", 1), httpx.QueryInt(r, "per_page", 0))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ItemListResponse{
		Items:      toItemResponses(page.Items),
		Pagination: httpx.NewPageMeta(page.Page, page.PerPage, page.Total),
	})
}

// Get returns an active item and counts the view.
//
//	@Summary		Get item
//	@Tags			items
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	ItemResponse
//	@Failure		400	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Router			/items/{id} [get]
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	item, err := h.svc.Items.GetItem(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

// ListMine returns the caller's active items.
//
//	@Summary		List my items
//	@Tags			items
//	@Produce		json
//	@Success		200	{object}	OwnerItemsResponse
//	@Failure		401	{object}	httpx.ErrorBody
//	@Router			/user/items [get]
func (h *ItemsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.CallerID(w, r)
	if !ok {
		return
	}
	items, err := h.svc.Items.ListOwnerItems(r.Context(), ownerID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, OwnerItemsResponse{Items: toItemResponses(items), Count: len(items)})
}

// Delete withdraws one of the caller's items from the catalog.
//
//	@Summary		Remove item
//	@Tags			items
//	@Param			id	path	string	true	"Item ID"
//	@Success		204
//	@Failure		400	{object}	httpx.ErrorBody
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		403	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Router			/items/{id} [delete]
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.CallerID(w, r)
	if !ok {
		return
	}
	id, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Items.DeactivateItem(r.Context(), id, ownerID); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search runs a quick search over titles and descriptions.
//
//	@Summary		Search items
//	@Description	Up to 20 matching items plus suggestions. Queries shorter than 2 characters return nothing.
//	@Tags			items
//	@Produce		json
//	@Param			q	query		string	true	"Search text"
//	@Success		200	{object}	SearchResponse
//	@Router			/search [get]
func (h *ItemsHandler) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Items.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, SearchResponse{Items: toItemResponses(res.Items), Suggestions: res.Suggestions})
}
