package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/rentrobe/rentrobe/pkg/auth"
	"github.com/rentrobe/rentrobe/pkg/httpx"
	"github.com/rentrobe/rentrobe/pkg/logger"
	pkgvalidator "github.com/rentrobe/rentrobe/pkg/validator"
)

type devSessionRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

type devSessionResponse struct {
	UserID uuid.UUID `json:"user_id"`
}

// devSessionHandler logs the caller in as any user. Identity belongs to an
// external service; this endpoint exists only in development.
func devSessionHandler(store sessions.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := pkgvalidator.ValidateRequest[devSessionRequest](w, r)
		if !ok {
			return
		}
		userID := uuid.MustParse(req.UserID)
		if err := auth.StartSession(store, w, r, userID); err != nil {
			log.ErrorContext(r.Context(), "start dev session failed", "error", err)
			httpx.JSONErrorCode(w, http.StatusInternalServerError, "internal server error", "internal")
			return
		}
		log.InfoContext(r.Context(), "dev session started", "user_id", userID)
		httpx.JSON(w, http.StatusOK, devSessionResponse{UserID: userID})
	}
}

// devLogoutHandler ends the caller's session.
func devLogoutHandler(store sessions.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.EndSession(store, w, r); err != nil {
			log.ErrorContext(r.Context(), "end dev session failed", "error", err)
			httpx.JSONErrorCode(w, http.StatusInternalServerError, "internal server error", "internal")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
