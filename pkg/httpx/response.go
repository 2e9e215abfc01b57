package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error" example:"item not found"`
	Code  string `json:"code,omitempty" example:"item_not_found"`
} // @name ErrorBody

// JSON writes v as JSON with the given status code. Content-Type and
// X-Content-Type-Options headers are set automatically. Encoding errors are
// silently discarded. Use this for handler responses, not for streaming.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}

// JSONErrorCode writes {"error": message, "code": code}.
func JSONErrorCode(w http.ResponseWriter, status int, message, code string) {
	JSON(w, status, ErrorBody{Error: message, Code: code})
}

// PageMeta describes one page of a paginated listing.
type PageMeta struct {
	Page    int  `json:"page"     example:"1"`
	Pages   int  `json:"pages"    example:"4"`
	PerPage int  `json:"per_page" example:"12"`
	Total   int  `json:"total"    example:"42"`
	HasNext bool `json:"has_next" example:"true"`
	HasPrev bool `json:"has_prev" example:"false"`
} // @name PageMeta

// NewPageMeta computes page counts for total rows split into pages of perPage.
// An empty result still reports zero pages.
func NewPageMeta(page, perPage, total int) PageMeta {
	pages := 0
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return PageMeta{
		Page:    page,
		Pages:   pages,
		PerPage: perPage,
		Total:   total,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}
