package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/pkg/telemetry"
	rentaldomain "github.com/rentrobe/rentrobe/services/rental/domain"
	"github.com/rentrobe/rentrobe/services/rental/domain/events"
	"github.com/rentrobe/rentrobe/services/rental/domain/models"
	"github.com/rentrobe/rentrobe/services/rental/domain/repositories"
	domainsvcs "github.com/rentrobe/rentrobe/services/rental/domain/services"
)

// ReviewService stores reviews of completed rentals and folds each rating
// into the item's running mean in the same unit of work.
type ReviewService struct {
	store   repositories.Store
	log     logger.Logger
	metrics *telemetry.BookingMetrics
	now     func() time.Time
}

// NewReviewService returns a ReviewService. metrics may be nil.
func NewReviewService(store repositories.Store, log logger.Logger, metrics *telemetry.BookingMetrics) *ReviewService {
	return &ReviewService{store: store, log: log, metrics: metrics, now: time.Now}
}

// SubmitReview records reviewerID's rating of a completed rental.
// Checks run in order: reviewer is the renter, rental completed, no prior
// review, rating in range.
func (s *ReviewService) SubmitReview(ctx context.Context, rentalID, reviewerID uuid.UUID, rating int, comment string) (*models.Review, *models.Listing, error) {
	ctx, span := tracer.Start(ctx, "rental.SubmitReview", trace.WithAttributes(
		attribute.String("rental_id", rentalID.String()),
	))
	defer span.End()

	var (
		review  *models.Review
		listing *models.Listing
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		rental, err := uow.Rentals().GetForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if err := domainsvcs.CheckReviewer(rental, reviewerID); err != nil {
			return err
		}
		exists, err := uow.Reviews().Exists(ctx, rental.ID, reviewerID)
		if err != nil {
			return fmt.Errorf("check existing review: %w", err)
		}
		if exists {
			return rentaldomain.ErrAlreadyReviewed
		}
		if err := domainsvcs.CheckRating(rating); err != nil {
			return err
		}

		listing, err = uow.Listings().GetForUpdate(ctx, rental.ItemID)
		if err != nil {
			return err
		}

		review = models.NewReview(rental, rating, strings.TrimSpace(comment), s.now())
		if err := uow.Reviews().Insert(ctx, review); err != nil {
			return err
		}

		listing.ApplyRating(rating)
		if err := uow.Listings().UpdateRating(ctx, listing.ID, listing.Rating, listing.ReviewsCount); err != nil {
			return fmt.Errorf("update item rating: %w", err)
		}

		evt := events.ReviewSubmittedEvent{
			EventID:      uuid.New(),
			Version:      eventVersion,
			ReviewID:     review.ID,
			RentalID:     rental.ID,
			ItemID:       rental.ItemID,
			Rating:       rating,
			ItemRating:   listing.Rating,
			ReviewsCount: listing.ReviewsCount,
			OccurredAt:   review.CreatedAt,
		}
		return uow.Events().Publish(ctx, events.TopicReviewSubmitted, evt.EventID, evt)
	})
	if err != nil {
		span.RecordError(err)
		if isDomainError(err) {
			s.log.InfoContext(ctx, "review refused", "rental_id", rentalID, "error", err)
		} else {
			s.log.ErrorContext(ctx, "review failed", "rental_id", rentalID, "error", err)
			telemetry.CaptureError(ctx, err, map[string]string{"rental_id": rentalID.String()})
		}
		return nil, nil, err
	}

	s.metrics.ReviewSubmitted(ctx)
	s.log.InfoContext(ctx, "review submitted",
		"review_id", review.ID,
		"item_id", review.ItemID,
		"rating", rating,
		"item_rating", listing.Rating,
	)
	return review, listing, nil
}

// ListItemReviews returns the item's reviews, newest first.
func (s *ReviewService) ListItemReviews(ctx context.Context, itemID uuid.UUID) ([]*models.Review, error) {
	if _, err := s.store.Listings().Get(ctx, itemID); err != nil {
		return nil, err
	}
	reviews, err := s.store.Reviews().ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
