package handlers

import (
	"net/http"

	"github.com/rentrobe/rentrobe/pkg/auth"
	"github.com/rentrobe/rentrobe/pkg/errhttp"
	"github.com/rentrobe/rentrobe/pkg/httpx"
	pkgvalidator "github.com/rentrobe/rentrobe/pkg/validator"
	appsvcs "github.com/rentrobe/rentrobe/services/rental/application/services"
)

type listRentalsQuery struct {
	As string `json:"as" validate:"oneof=renter owner"`
}

// GetRentalsHandler handles GET /rentals and GET /rentals/{id}.
type GetRentalsHandler struct {
	svc *appsvcs.Services
}

func NewGetRentalsHandler(svc *appsvcs.Services) *GetRentalsHandler {
	return &GetRentalsHandler{svc: svc}
}

// List returns the caller's rentals.
//
//	@Summary		List rentals
//	@Description	Rentals of items the caller rented (as=renter, default) or rented out (as=owner), newest first
//	@Tags			rentals
//	@Produce		json
//	@Param			as	query		string	false	"renter or owner"	Enums(renter, owner)
//	@Success		200	{object}	RentalListResponse
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		422	{object}	httpx.ErrorBody
//	@Router			/rentals [get]
func (h *GetRentalsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CallerID(w, r)
	if !ok {
		return
	}

	q := listRentalsQuery{As: r.URL.Query().Get("as")}
	if q.As == "" {
		q.As = string(appsvcs.RoleRenter)
	}
	if !pkgvalidator.Check(w, &q) {
		return
	}

	rentals, err := h.svc.Rentals.ListRentals(r.Context(), userID, appsvcs.Role(q.As))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := RentalListResponse{Rentals: make([]RentalResponse, len(rentals)), Count: len(rentals)}
	for i, rental := range rentals {
		resp.Rentals[i] = toRentalResponse(rental)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Get returns one rental visible to the caller.
//
//	@Summary		Get rental
//	@Tags			rentals
//	@Produce		json
//	@Param			id	path		string	true	"Rental ID"
//	@Success		200	{object}	RentalResponse
//	@Failure		400	{object}	httpx.ErrorBody
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		403	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Router			/rentals/{id} [get]
func (h *GetRentalsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CallerID(w, r)
	if !ok {
		return
	}
	rentalID, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}

	rental, err := h.svc.Rentals.GetRental(r.Context(), rentalID, userID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toRentalResponse(rental))
}
