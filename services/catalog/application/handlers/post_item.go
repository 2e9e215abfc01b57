package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/auth"
	"github.com/rentrobe/rentrobe/pkg/errhttp"
	"github.com/rentrobe/rentrobe/pkg/httpx"
	pkgvalidator "github.com/rentrobe/rentrobe/pkg/validator"
	appsvcs "github.com/rentrobe/rentrobe/services/catalog/application/services"
)

// CreateItemRequest is the request body for POST /items. Amounts are whole rupees.
type CreateItemRequest struct {
	CategoryID      string `json:"category_id"      validate:"required,uuid"              example:"6c1f0f8e-3b1a-4c55-9a57-0d3f1b2a0001"`
	Title           string `json:"title"            validate:"required,max=200"           example:"Velvet tuxedo"`
	Description     string `json:"description"      validate:"max=5000"                   example:"Dry cleaned after every rental"`
	Size            string `json:"size"             validate:"required,garment_size"      example:"M"`
	PricePerDay     int64  `json:"price_per_day"    validate:"required,gt=0,lte=10000000" example:"800"`
	SecurityDeposit int64  `json:"security_deposit" validate:"gte=0,lte=10000000"         example:"2000"`
	Condition       string `json:"condition"        validate:"max=50"                     example:"excellent"`
	City            string `json:"city"             validate:"max=100"                    example:"Mumbai"`
} // @name CreateItemRequest

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute lists a new item owned by the caller.
//
//	@Summary		Create item
//	@Description	Lists a garment for rent in an active category
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item listing"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Failure		422		{object}	httpx.ErrorBody
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.CallerID(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Items.CreateItem(r.Context(), appsvcs.CreateItemInput{
		OwnerID:         ownerID,
		CategoryID:      uuid.MustParse(req.CategoryID),
		Title:           req.Title,
		Description:     req.Description,
		Size:            req.Size,
		PricePerDay:     req.PricePerDay,
		SecurityDeposit: req.SecurityDeposit,
		Condition:       req.Condition,
		City:            req.City,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
