package handlers

import (
	"net/http"

	"github.com/rentrobe/rentrobe/pkg/auth"
	"github.com/rentrobe/rentrobe/pkg/errhttp"
	"github.com/rentrobe/rentrobe/pkg/httpx"
	pkgvalidator "github.com/rentrobe/rentrobe/pkg/validator"
	appsvcs "github.com/rentrobe/rentrobe/services/rental/application/services"
	"github.com/rentrobe/rentrobe/services/rental/domain/models"
)

// UpdateRentalStatusRequest is the request body for PUT /rentals/{id}/status.
type UpdateRentalStatusRequest struct {
	Status string `json:"status" validate:"required,rental_status" example:"approved"`
} // @name UpdateRentalStatusRequest

// PutRentalStatusHandler handles PUT /rentals/{id}/status.
type PutRentalStatusHandler struct {
	svc *appsvcs.Services
}

func NewPutRentalStatusHandler(svc *appsvcs.Services) *PutRentalStatusHandler {
	return &PutRentalStatusHandler{svc: svc}
}

// Execute moves a rental through its lifecycle on behalf of the item owner.
//
//	@Summary		Update rental status
//	@Description	pending→approved|cancelled, approved→active|cancelled, active→completed. Owner only.
//	@Tags			rentals
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Rental ID"
//	@Param			request	body		UpdateRentalStatusRequest	true	"Target status"
//	@Success		200		{object}	RentalResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		403		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Failure		409		{object}	httpx.ErrorBody
//	@Failure		422		{object}	httpx.ErrorBody
//	@Router			/rentals/{id}/status [put]
func (h *PutRentalStatusHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actorID, ok := auth.CallerID(w, r)
	if !ok {
		return
	}
	rentalID, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[UpdateRentalStatusRequest](w, r)
	if !ok {
		return
	}
	to, err := models.ParseStatus(req.Status)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	rental, err := h.svc.Rentals.TransitionRentalStatus(r.Context(), rentalID, actorID, to)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toRentalResponse(rental))
}
