package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/services/rental/domain/models"
)

// RentalResponse is the wire shape of a rental. Amounts are whole rupees.
type RentalResponse struct {
	ID              uuid.UUID  `json:"id"               example:"123e4567-e89b-12d3-a456-426614174000"`
	ItemID          uuid.UUID  `json:"item_id"          example:"550e8400-e29b-41d4-a716-446655440000"`
	ItemTitle       string     `json:"item_title"       example:"Banarasi silk saree"`
	RenterID        uuid.UUID  `json:"renter_id"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	StartDate       string     `json:"start_date"       example:"2024-06-01"`
	EndDate         string     `json:"end_date"         example:"2024-06-03"`
	Days            int        `json:"days"             example:"2"`
	TotalAmount     int64      `json:"total_amount"     example:"1600"`
	SecurityDeposit int64      `json:"security_deposit" example:"2000"`
	Status          string     `json:"status"           example:"pending"`
	Message         string     `json:"message"          example:"For my sister's wedding"`
	PaymentStatus   string     `json:"payment_status"   example:"pending"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
} // @name RentalResponse

// RentalListResponse wraps a list of rentals.
type RentalListResponse struct {
	Rentals []RentalResponse `json:"rentals"`
	Count   int              `json:"count" example:"1"`
} // @name RentalListResponse

// ReviewResponse is the wire shape of a review.
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"item_id"`
	RentalID   uuid.UUID `json:"rental_id"`
	ReviewerID uuid.UUID `json:"reviewer_id"`
	Rating     int       `json:"rating"  example:"5"`
	Comment    string    `json:"comment" example:"Fit perfectly"`
	CreatedAt  time.Time `json:"created_at"`
} // @name ReviewResponse

func toRentalResponse(r *models.Rental) RentalResponse {
	return RentalResponse{
		ID:              r.ID,
		ItemID:          r.ItemID,
		ItemTitle:       r.ItemTitle,
		RenterID:        r.RenterID,
		OwnerID:         r.OwnerID,
		StartDate:       r.Period.Start.Format(models.DateLayout),
		EndDate:         r.Period.End.Format(models.DateLayout),
		Days:            r.Period.Days(),
		TotalAmount:     r.TotalAmount.Major(),
		SecurityDeposit: r.SecurityDeposit.Major(),
		Status:          r.Status.String(),
		Message:         r.Message,
		PaymentStatus:   string(r.PaymentStatus),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		ApprovedAt:      r.ApprovedAt,
		StartedAt:       r.StartedAt,
		CompletedAt:     r.CompletedAt,
		CancelledAt:     r.CancelledAt,
	}
}

func toReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		ItemID:     r.ItemID,
		RentalID:   r.RentalID,
		ReviewerID: r.ReviewerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}
