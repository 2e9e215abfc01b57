package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/rentrobe/rentrobe/pkg/httpx"
	"github.com/rentrobe/rentrobe/pkg/logger"
)

const (
	sessionName      = "rentrobe_session"
	sessionUserIDKey = "user_id"
)

var (
	errNoUser      = errors.New("session has no user_id")
	errInvalidUser = errors.New("session user_id is not a uuid")
)

// RequireAuth rejects requests without a session naming a user with 401
// "unauthenticated". Past it, UserIDFromCtx and CallerID succeed and every
// *Context log line carries user_id.
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessionUser(store, r)
			if err != nil {
				log.WarnContext(r.Context(), "request rejected", "reason", err.Error(), "path", r.URL.Path)
				httpx.JSONErrorCode(w, http.StatusUnauthorized, "authentication required", "unauthenticated")
				return
			}
			ctx := logger.ContextWith(WithUserID(r.Context(), userID), "user_id", userID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionUser(store sessions.Store, r *http.Request) (uuid.UUID, error) {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return uuid.Nil, fmt.Errorf("load session: %w", err)
	}
	raw, _ := session.Values[sessionUserIDKey].(string)
	if raw == "" {
		return uuid.Nil, errNoUser
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errInvalidUser
	}
	return userID, nil
}

// StartSession binds userID to the caller's session and writes the cookie.
// Identity lives in an external service, which (or the development login
// endpoint) hands an authenticated user to this API through here.
func StartSession(store sessions.Store, w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	session, err := store.Get(r, sessionName)
	if err != nil && session == nil {
		return fmt.Errorf("load session: %w", err)
	}
	session.Values[sessionUserIDKey] = userID.String()
	return session.Save(r, w)
}

// EndSession deletes the caller's session and expires the cookie.
func EndSession(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, sessionName)
	if err != nil && session == nil {
		return fmt.Errorf("load session: %w", err)
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
