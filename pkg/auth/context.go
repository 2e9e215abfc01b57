package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/httpx"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const userIDKey contextKey = "user_id"

// ErrUserIDNotFound is returned when no authenticated user exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrUserIDNotFound = errors.New("user_id not found in context")

// UserIDFromCtx extracts the authenticated caller's user ID from the request context.
// Returns uuid.Nil and ErrUserIDNotFound if no user is set (unauthenticated request).
func UserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, ErrUserIDNotFound
	}
	return userID, nil
}

// WithUserID returns a new context with the given user ID attached.
// Used by authentication middleware after validating the session.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// CallerID returns the authenticated user for handlers mounted behind
// RequireAuth, writing 401 and returning false when there is none.
func CallerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := UserIDFromCtx(r.Context())
	if err != nil {
		httpx.JSONErrorCode(w, http.StatusUnauthorized, "authentication required", "unauthenticated")
		return uuid.Nil, false
	}
	return userID, true
}
