package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	rentaldomain "github.com/rentrobe/rentrobe/services/rental/domain"
	"github.com/rentrobe/rentrobe/services/rental/domain/models"
)

type listingRepo struct{ st *state }

func (r listingRepo) Get(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	l, ok := r.st.listings[id]
	if !ok {
		return nil, rentaldomain.ErrItemNotFound
	}
	return &l, nil
}

func (r listingRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	return r.Get(ctx, id)
}

func (r listingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.ListingStatus) error {
	l, ok := r.st.listings[id]
	if !ok {
		return rentaldomain.ErrItemNotFound
	}
	l.Status = status
	r.st.listings[id] = l
	return nil
}

func (r listingRepo) UpdateRating(_ context.Context, id uuid.UUID, rating float64, count int) error {
	l, ok := r.st.listings[id]
	if !ok {
		return rentaldomain.ErrItemNotFound
	}
	l.Rating = rating
	l.ReviewsCount = count
	r.st.listings[id] = l
	return nil
}

type rentalRepo struct{ st *state }

func (r rentalRepo) Insert(_ context.Context, rental *models.Rental) error {
	r.st.rentals[rental.ID] = *rental
	return nil
}

func (r rentalRepo) Get(_ context.Context, id uuid.UUID) (*models.Rental, error) {
	rental, ok := r.st.rentals[id]
	if !ok {
		return nil, rentaldomain.ErrRentalNotFound
	}
	return r.withTitle(rental), nil
}

func (r rentalRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	return r.Get(ctx, id)
}

func (r rentalRepo) UpdateStatus(_ context.Context, rental *models.Rental) error {
	stored, ok := r.st.rentals[rental.ID]
	if !ok {
		return rentaldomain.ErrRentalNotFound
	}
	stored.Status = rental.Status
	stored.UpdatedAt = rental.UpdatedAt
	stored.ApprovedAt = rental.ApprovedAt
	stored.StartedAt = rental.StartedAt
	stored.CompletedAt = rental.CompletedAt
	stored.CancelledAt = rental.CancelledAt
	r.st.rentals[rental.ID] = stored
	return nil
}

func (r rentalRepo) ListBlocking(_ context.Context, itemID uuid.UUID) ([]*models.Rental, error) {
	return r.filter(func(x *models.Rental) bool {
		return x.ItemID == itemID && x.Status.Blocks()
	}), nil
}

func (r rentalRepo) ListByRenter(_ context.Context, renterID uuid.UUID) ([]*models.Rental, error) {
	return r.filter(func(x *models.Rental) bool { return x.RenterID == renterID }), nil
}

func (r rentalRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*models.Rental, error) {
	return r.filter(func(x *models.Rental) bool { return x.OwnerID == ownerID }), nil
}

func (r rentalRepo) ListPendingStartingBefore(_ context.Context, day time.Time) ([]*models.Rental, error) {
	return r.filter(func(x *models.Rental) bool {
		return x.Status == models.StatusPending && x.Period.Start.Before(day)
	}), nil
}

// filter returns matching rentals, newest request first.
func (r rentalRepo) filter(keep func(*models.Rental) bool) []*models.Rental {
	var out []*models.Rental
	for _, rental := range r.st.rentals {
		if x := r.withTitle(rental); keep(x) {
			out = append(out, x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r rentalRepo) withTitle(rental models.Rental) *models.Rental {
	if l, ok := r.st.listings[rental.ItemID]; ok {
		rental.ItemTitle = l.Title
	}
	return &rental
}

type reviewRepo struct{ st *state }

func (r reviewRepo) Insert(_ context.Context, review *models.Review) error {
	for _, existing := range r.st.reviews {
		if existing.RentalID == review.RentalID && existing.ReviewerID == review.ReviewerID {
			return rentaldomain.ErrAlreadyReviewed
		}
	}
	r.st.reviews[review.ID] = *review
	return nil
}

func (r reviewRepo) Exists(_ context.Context, rentalID, reviewerID uuid.UUID) (bool, error) {
	for _, existing := range r.st.reviews {
		if existing.RentalID == rentalID && existing.ReviewerID == reviewerID {
			return true, nil
		}
	}
	return false, nil
}

func (r reviewRepo) ListByItem(_ context.Context, itemID uuid.UUID) ([]*models.Review, error) {
	var out []*models.Review
	for _, review := range r.st.reviews {
		if review.ItemID == itemID {
			review := review
			out = append(out, &review)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
