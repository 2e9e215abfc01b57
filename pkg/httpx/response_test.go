package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rentrobe/rentrobe/pkg/httpx"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": "itm-1", "daily_rate": 45000})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	require.JSONEq(t, `{"id":"itm-1","daily_rate":45000}`, w.Body.String())
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter)
		status int
		want   string
	}{
		{
			name:   "message only",
			write:  func(w http.ResponseWriter) { httpx.JSONError(w, http.StatusNotFound, "rental not found") },
			status: http.StatusNotFound,
			want:   `{"error":"rental not found"}`,
		},
		{
			name: "message and code",
			write: func(w http.ResponseWriter) {
				httpx.JSONErrorCode(w, http.StatusConflict, "item is already booked for those dates", "date_overlap")
			},
			status: http.StatusConflict,
			want:   `{"error":"item is already booked for those dates","code":"date_overlap"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)
			require.Equal(t, tt.status, w.Code)
			require.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name                 string
		page, perPage, total int
		want                 httpx.PageMeta
	}{
		{"no results", 1, 12, 0, httpx.PageMeta{Page: 1, PerPage: 12}},
		{"single page", 1, 12, 5, httpx.PageMeta{Page: 1, Pages: 1, PerPage: 12, Total: 5}},
		{"first of three", 1, 12, 30, httpx.PageMeta{Page: 1, Pages: 3, PerPage: 12, Total: 30, HasNext: true}},
		{"middle", 2, 12, 30, httpx.PageMeta{Page: 2, Pages: 3, PerPage: 12, Total: 30, HasNext: true, HasPrev: true}},
		{"last page exact fit", 2, 10, 20, httpx.PageMeta{Page: 2, Pages: 2, PerPage: 10, Total: 20, HasPrev: true}},
		{"past the end", 5, 10, 20, httpx.PageMeta{Page: 5, Pages: 2, PerPage: 10, Total: 20, HasPrev: true}},
		{"zero page size", 1, 0, 7, httpx.PageMeta{Page: 1, Total: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, httpx.NewPageMeta(tt.page, tt.perPage, tt.total))
		})
	}
}

func TestPageMeta_JSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(httpx.NewPageMeta(2, 12, 30))
	require.NoError(t, err)
	require.JSONEq(t,
		`{"page":2,"pages":3,"per_page":12,"total":30,"has_next":true,"has_prev":true}`,
		string(raw))
}
