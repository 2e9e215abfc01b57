package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/database"
	"github.com/rentrobe/rentrobe/pkg/money"
	rentaldomain "github.com/rentrobe/rentrobe/services/rental/domain"
	"github.com/rentrobe/rentrobe/services/rental/domain/models"
	"github.com/rentrobe/rentrobe/services/rental/infrastructure/persistence/postgres/db"
)

type listingRepo struct {
	q *db.Queries
}

func (r *listingRepo) Get(ctx context.Context, itemID uuid.UUID) (*models.Listing, error) {
	row, err := r.q.GetListing(ctx, itemID)
	return listingResult(row, err)
}

func (r *listingRepo) GetForUpdate(ctx context.Context, itemID uuid.UUID) (*models.Listing, error) {
	row, err := r.q.GetListingForUpdate(ctx, itemID)
	return listingResult(row, err)
}

func (r *listingRepo) UpdateStatus(ctx context.Context, itemID uuid.UUID, status models.ListingStatus) error {
	return r.q.UpdateListingStatus(ctx, db.UpdateListingStatusParams{ID: itemID, Status: string(status)})
}

func (r *listingRepo) UpdateRating(ctx context.Context, itemID uuid.UUID, rating float64, count int) error {
	return r.q.UpdateListingRating(ctx, db.UpdateListingRatingParams{
		ID:           itemID,
		Rating:       rating,
		ReviewsCount: int32(count),
	})
}

func listingResult(row db.CatalogItem, err error) (*models.Listing, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, rentaldomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return &models.Listing{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		Title:           row.Title,
		PricePerDay:     money.Amount(row.PricePerDay),
		SecurityDeposit: money.Amount(row.SecurityDeposit),
		Status:          models.ListingStatus(row.Status),
		Active:          row.Active,
		Rating:          row.Rating,
		ReviewsCount:    int(row.ReviewsCount),
	}, nil
}

type rentalRepo struct {
	q *db.Queries
}

// Insert maps a missing item reference to ErrItemNotFound.
func (r *rentalRepo) Insert(ctx context.Context, rental *models.Rental) error {
	err := r.q.InsertRental(ctx, db.InsertRentalParams{
		ID:              rental.ID,
		ItemID:          rental.ItemID,
		RenterID:        rental.RenterID,
		OwnerID:         rental.OwnerID,
		StartDate:       rental.Period.Start,
		EndDate:         rental.Period.End,
		TotalAmount:     rental.TotalAmount.Minor(),
		SecurityDeposit: rental.SecurityDeposit.Minor(),
		Status:          rental.Status.String(),
		Message:         rental.Message,
		PaymentStatus:   string(rental.PaymentStatus),
		CreatedAt:       rental.CreatedAt,
		UpdatedAt:       rental.UpdatedAt,
	})
	if database.IsForeignKeyViolation(err) {
		return rentaldomain.ErrItemNotFound
	}
	return err
}

func (r *rentalRepo) Get(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	row, err := r.q.GetRental(ctx, id)
	return rentalResult(row, err)
}

func (r *rentalRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	row, err := r.q.GetRentalForUpdate(ctx, id)
	return rentalResult(row, err)
}

func (r *rentalRepo) UpdateStatus(ctx context.Context, rental *models.Rental) error {
	return r.q.UpdateRentalStatus(ctx, db.UpdateRentalStatusParams{
		ID:          rental.ID,
		Status:      rental.Status.String(),
		UpdatedAt:   rental.UpdatedAt,
		ApprovedAt:  nullTime(rental.ApprovedAt),
		StartedAt:   nullTime(rental.StartedAt),
		CompletedAt: nullTime(rental.CompletedAt),
		CancelledAt: nullTime(rental.CancelledAt),
	})
}

func (r *rentalRepo) ListBlocking(ctx context.Context, itemID uuid.UUID) ([]*models.Rental, error) {
	return rentalsResult(r.q.ListBlockingRentals(ctx, itemID))
}

func (r *rentalRepo) ListByRenter(ctx context.Context, renterID uuid.UUID) ([]*models.Rental, error) {
	return rentalsResult(r.q.ListRentalsByRenter(ctx, renterID))
}

func (r *rentalRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Rental, error) {
	return rentalsResult(r.q.ListRentalsByOwner(ctx, ownerID))
}

func (r *rentalRepo) ListPendingStartingBefore(ctx context.Context, day time.Time) ([]*models.Rental, error) {
	return rentalsResult(r.q.ListPendingStartingBefore(ctx, day))
}

func rentalResult(row db.RentalRow, err error) (*models.Rental, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, rentaldomain.ErrRentalNotFound
		}
		return nil, fmt.Errorf("query rental: %w", err)
	}
	return rowToRental(row), nil
}

func rentalsResult(rows []db.RentalRow, err error) ([]*models.Rental, error) {
	if err != nil {
		return nil, fmt.Errorf("query rentals: %w", err)
	}
	out := make([]*models.Rental, len(rows))
	for i, row := range rows {
		out[i] = rowToRental(row)
	}
	return out, nil
}

// rowToRental maps a db.RentalRow to a domain models.Rental.
func rowToRental(row db.RentalRow) *models.Rental {
	return &models.Rental{
		ID:              row.ID,
		ItemID:          row.ItemID,
		RenterID:        row.RenterID,
		OwnerID:         row.OwnerID,
		Period:          models.NewDateRange(row.StartDate, row.EndDate),
		TotalAmount:     money.Amount(row.TotalAmount),
		SecurityDeposit: money.Amount(row.SecurityDeposit),
		Status:          models.Status(row.Status),
		Message:         row.Message,
		PaymentStatus:   models.PaymentStatus(row.PaymentStatus),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		ApprovedAt:      timePtr(row.ApprovedAt),
		StartedAt:       timePtr(row.StartedAt),
		CompletedAt:     timePtr(row.CompletedAt),
		CancelledAt:     timePtr(row.CancelledAt),
		ItemTitle:       row.ItemTitle,
	}
}

type reviewRepo struct {
	q *db.Queries
}

// Insert relies on the (rental_id, reviewer_id) unique constraint as the
// last line against duplicate reviews.
func (r *reviewRepo) Insert(ctx context.Context, review *models.Review) error {
	err := r.q.InsertReview(ctx, db.InsertReviewParams{
		ID:         review.ID,
		ItemID:     review.ItemID,
		RentalID:   review.RentalID,
		ReviewerID: review.ReviewerID,
		Rating:     int16(review.Rating),
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	})
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return rentaldomain.ErrAlreadyReviewed
	default:
		return fmt.Errorf("insert review: %w", err)
	}
}

func (r *reviewRepo) Exists(ctx context.Context, rentalID, reviewerID uuid.UUID) (bool, error) {
	return r.q.ReviewExists(ctx, db.ReviewExistsParams{RentalID: rentalID, ReviewerID: reviewerID})
}

func (r *reviewRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*models.Review, error) {
	rows, err := r.q.ListReviewsByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	out := make([]*models.Review, len(rows))
	for i, row := range rows {
		out[i] = &models.Review{
			ID:         row.ID,
			ItemID:     row.ItemID,
			RentalID:   row.RentalID,
			ReviewerID: row.ReviewerID,
			Rating:     int(row.Rating),
			Comment:    row.Comment,
			CreatedAt:  row.CreatedAt,
		}
	}
	return out, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
