package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/auth"
	"github.com/rentrobe/rentrobe/pkg/errhttp"
	"github.com/rentrobe/rentrobe/pkg/httpx"
	pkgvalidator "github.com/rentrobe/rentrobe/pkg/validator"
	appsvcs "github.com/rentrobe/rentrobe/services/rental/application/services"
	rentaldomain "github.com/rentrobe/rentrobe/services/rental/domain"
)

// CreateReviewRequest is the request body for POST /reviews. A rating that is
// not a whole number is refused here; the 1..5 range is checked by the review
// rules, after eligibility.
type CreateReviewRequest struct {
	RentalID string      `json:"rental_id" validate:"required,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
	Rating   json.Number `json:"rating"    validate:"required"      example:"5" swaggertype:"integer"`
	Comment  string      `json:"comment"   validate:"max=2000"      example:"Fit perfectly"`
} // @name CreateReviewRequest

// wholeRating converts a decoded rating to an int, refusing fractions such as
// 4.5 with ErrInvalidRating.
func wholeRating(n json.Number) (int, error) {
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: got %s", rentaldomain.ErrInvalidRating, n)
	}
	return int(f), nil
}

// CreateReviewResponse carries the review and the item's updated rating.
type CreateReviewResponse struct {
	Review       ReviewResponse `json:"review"`
	ItemRating   float64        `json:"item_rating"   example:"4.5"`
	ReviewsCount int            `json:"reviews_count" example:"2"`
} // @name CreateReviewResponse

// ReviewListResponse wraps an item's reviews.
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Count   int              `json:"count" example:"2"`
} // @name ReviewListResponse

// ReviewsHandler handles POST /reviews and GET /items/{id}/reviews.
type ReviewsHandler struct {
	svc *appsvcs.Services
}

func NewReviewsHandler(svc *appsvcs.Services) *ReviewsHandler {
	return &ReviewsHandler{svc: svc}
}

// Create reviews a completed rental.
//
//	@Summary		Review rental
//	@Description	The renter of a completed rental rates the item once
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateReviewRequest	true	"Review"
//	@Success		201		{object}	CreateReviewResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		403		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Failure		409		{object}	httpx.ErrorBody
//	@Failure		422		{object}	httpx.ErrorBody
//	@Router			/reviews [post]
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := auth.CallerID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[CreateReviewRequest](w, r)
	if !ok {
		return
	}
	rating, err := wholeRating(req.Rating)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	review, listing, err := h.svc.Reviews.SubmitReview(r.Context(),
		uuid.MustParse(req.RentalID), reviewerID, rating, req.Comment)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, CreateReviewResponse{
		Review:       toReviewResponse(review),
		ItemRating:   listing.Rating,
		ReviewsCount: listing.ReviewsCount,
	})
}

// ListForItem returns an item's reviews, newest first.
//
//	@Summary		List item reviews
//	@Tags			reviews
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	ReviewListResponse
//	@Failure		400	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Router			/items/{id}/reviews [get]
func (h *ReviewsHandler) ListForItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := httpx.PathUUID(w, r, "id")
	if !ok {
		return
	}

	reviews, err := h.svc.Reviews.ListItemReviews(r.Context(), itemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ReviewListResponse{Reviews: make([]ReviewResponse, len(reviews)), Count: len(reviews)}
	for i, review := range reviews {
		resp.Reviews[i] = toReviewResponse(review)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
