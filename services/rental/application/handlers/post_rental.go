package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/auth"
	"github.com/rentrobe/rentrobe/pkg/errhttp"
	"github.com/rentrobe/rentrobe/pkg/httpx"
	pkgvalidator "github.com/rentrobe/rentrobe/pkg/validator"
	appsvcs "github.com/rentrobe/rentrobe/services/rental/application/services"
	"github.com/rentrobe/rentrobe/services/rental/domain/models"
)

// CreateRentalRequest is the request body for POST /rentals.
type CreateRentalRequest struct {
	ItemID    string `json:"item_id"    validate:"required,uuid"          example:"550e8400-e29b-41d4-a716-446655440000"`
	StartDate string `json:"start_date" validate:"required,calendar_date" example:"2024-06-01"`
	EndDate   string `json:"end_date"   validate:"required,calendar_date" example:"2024-06-03"`
	Message   string `json:"message"    validate:"max=1000"               example:"For my sister's wedding"`
} // @name CreateRentalRequest

// PostRentalHandler handles POST /rentals.
type PostRentalHandler struct {
	svc *appsvcs.Services
}

func NewPostRentalHandler(svc *appsvcs.Services) *PostRentalHandler {
	return &PostRentalHandler{svc: svc}
}

// Execute requests a rental of an item for a date range.
//
//	@Summary		Request rental
//	@Description	Creates a pending rental after checking availability and date conflicts
//	@Tags			rentals
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateRentalRequest	true	"Rental request"
//	@Success		201		{object}	RentalResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Failure		409		{object}	httpx.ErrorBody
//	@Failure		422		{object}	httpx.ErrorBody
//	@Router			/rentals [post]
func (h *PostRentalHandler) Execute(w http.ResponseWriter, r *http.Request) {
	renterID, ok := auth.CallerID(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateRentalRequest](w, r)
	if !ok {
		return
	}

	// Formats were checked by the validator.
	itemID := uuid.MustParse(req.ItemID)
	start, _ := models.ParseDate(req.StartDate)
	end, _ := models.ParseDate(req.EndDate)

	rental, err := h.svc.Rentals.CreateRentalRequest(r.Context(), appsvcs.CreateRentalInput{
		ItemID:    itemID,
		RenterID:  renterID,
		StartDate: start,
		EndDate:   end,
		Message:   req.Message,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toRentalResponse(rental))
}
