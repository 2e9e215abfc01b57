package httpx

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PathUUID parses the named chi URL parameter as a UUID, writing 400 with
// code invalid_id when it is malformed.
func PathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		JSONErrorCode(w, http.StatusBadRequest, "invalid "+name, "invalid_id")
		return uuid.Nil, false
	}
	return id, true
}

// QueryInt returns the integer query parameter name, or def when it is
// absent or not a number.
func QueryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}
