package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rentrobe/rentrobe/pkg/auth"
	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/pkg/money"
	appsvcs "github.com/rentrobe/rentrobe/services/catalog/application/services"
	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
	"github.com/rentrobe/rentrobe/services/catalog/infrastructure/persistence/memory"
)

const userHeader = "X-Test-User"

func headerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(userHeader))
		if err != nil {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), id)))
	})
}

type harness struct {
	t      *testing.T
	router chi.Router
	formal models.Category
	owner  uuid.UUID
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewStore()
	h := &harness{t: t, router: chi.NewRouter(), owner: uuid.New()}
	h.formal = models.Category{ID: uuid.New(), Name: "Formal Wear", Slug: "formal", Active: true}
	store.PutCategory(h.formal)
	store.PutCategory(models.Category{ID: uuid.New(), Name: "Party Wear", Slug: "party", Active: true})

	log := logger.NewWithWriter(io.Discard, "error")
	pageSize := func(requested int) int {
		if requested <= 0 || requested > 50 {
			return 12
		}
		return requested
	}
	svcs := &appsvcs.Services{
		Items:      appsvcs.NewItemService(store, store.Categories(), nil, log, nil, pageSize),
		Categories: appsvcs.NewCategoryService(store.Categories(), log),
	}
	Mount(h.router, svcs, headerAuth)
	return h
}

func (h *harness) do(method, path string, user uuid.UUID, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if user != uuid.Nil {
		req.Header.Set(userHeader, user.String())
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) createItem(title string, price int) map[string]any {
	h.t.Helper()
	w := h.do(http.MethodPost, "/items", h.owner, map[string]any{
		"category_id":      h.formal.ID.String(),
		"title":            title,
		"size":             "M",
		"price_per_day":    price,
		"security_deposit": 2000,
		"city":             "Mumbai",
	})
	require.Equal(h.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](h.t, w)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestItemFlow(t *testing.T) {
	h := newHarness(t)

	created := h.createItem("Velvet tuxedo", 800)
	require.Equal(t, float64(800), created["price_per_day"])
	require.Equal(t, "available", created["status"])
	require.Equal(t, "formal", created["category"].(map[string]any)["slug"])
	h.createItem("Linen blazer", 400)

	w := h.do(http.MethodGet, "/items?category=formal&max_price=500", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[itemListPage](t, w)
	require.Len(t, list.Items, 1)
	require.Equal(t, "Linen blazer", list.Items[0].Title)
	require.Equal(t, 1, list.Pagination.Total)
	require.Equal(t, 12, list.Pagination.PerPage)

	id := created["id"].(string)
	w = h.do(http.MethodGet, "/items/"+id, uuid.Nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(1), decode[map[string]any](t, w)["views"])

	w = h.do(http.MethodGet, "/categories", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cats := decode[map[string][]map[string]any](t, w)["categories"]
	require.Len(t, cats, 2)
	require.Equal(t, float64(2), cats[0]["item_count"])

	w = h.do(http.MethodGet, "/search?q=tux", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[map[string]any](t, w)["items"], 1)

	w = h.do(http.MethodDelete, "/items/"+id, uuid.New(), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = h.do(http.MethodDelete, "/items/"+id, h.owner, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = h.do(http.MethodGet, "/items/"+id, uuid.Nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "item_not_found", decode[map[string]any](t, w)["code"])

	w = h.do(http.MethodGet, "/user/items", h.owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(1), decode[map[string]any](t, w)["count"])
}

// itemListPage mirrors ItemListResponse for decoding.
type itemListPage struct {
	Items []struct {
		Title string `json:"title"`
	} `json:"items"`
	Pagination struct {
		Total   int `json:"total"`
		PerPage int `json:"per_page"`
	} `json:"pagination"`
}

func TestCreateItem_Rejected(t *testing.T) {
	h := newHarness(t)
	valid := func() map[string]any {
		return map[string]any{
			"category_id":   h.formal.ID.String(),
			"title":         "Velvet tuxedo",
			"size":          "M",
			"price_per_day": 800,
		}
	}

	tests := []struct {
		name       string
		mutate     func(body map[string]any)
		wantStatus int
		wantCode   string
	}{
		{"bad size", func(b map[string]any) { b["size"] = "XXXL" }, http.StatusUnprocessableEntity, "validation_error"},
		{"zero price", func(b map[string]any) { b["price_per_day"] = 0 }, http.StatusUnprocessableEntity, "validation_error"},
		{"price that wraps in paise", func(b map[string]any) { b["price_per_day"] = int64(184467440737095517) }, http.StatusUnprocessableEntity, "validation_error"},
		{"price above ceiling", func(b map[string]any) { b["price_per_day"] = money.MaxMajor + 1 }, http.StatusUnprocessableEntity, "validation_error"},
		{"deposit above ceiling", func(b map[string]any) { b["security_deposit"] = money.MaxMajor + 1 }, http.StatusUnprocessableEntity, "validation_error"},
		{"title spacing", func(b map[string]any) { b["title"] = "Velvet  tuxedo" }, http.StatusUnprocessableEntity, "invalid_title"},
		{"unknown category", func(b map[string]any) { b["category_id"] = uuid.NewString() }, http.StatusNotFound, "category_not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := valid()
			tt.mutate(body)
			w := h.do(http.MethodPost, "/items", h.owner, body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			require.Equal(t, tt.wantCode, decode[map[string]any](t, w)["code"])
		})
	}

	w := h.do(http.MethodPost, "/items", uuid.Nil, valid())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListItems_BadQuery(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/items?size=HUGE", uuid.Nil, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = h.do(http.MethodGet, "/items?max_price=184467440737095517", uuid.Nil, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	w = h.do(http.MethodGet, "/items/nope", uuid.Nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeactivateCategory(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPut, "/categories/party/deactivate", uuid.Nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(http.MethodPut, "/categories/party/deactivate", h.owner, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = h.do(http.MethodPut, "/categories/menswear/deactivate", h.owner, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(http.MethodGet, "/categories", uuid.Nil, nil)
	require.Len(t, decode[map[string][]map[string]any](t, w)["categories"], 1)
}
