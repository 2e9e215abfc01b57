package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/pkg/telemetry"
	rentaldomain "github.com/rentrobe/rentrobe/services/rental/domain"
	"github.com/rentrobe/rentrobe/services/rental/domain/events"
	"github.com/rentrobe/rentrobe/services/rental/domain/models"
	"github.com/rentrobe/rentrobe/services/rental/domain/repositories"
	domainsvcs "github.com/rentrobe/rentrobe/services/rental/domain/services"
)

const eventVersion = 1

var tracer = otel.Tracer("github.com/rentrobe/rentrobe/services/rental")

// Role selects which side of a user's rentals to list.
type Role string

const (
	// RoleRenter lists items the user rented from others.
	RoleRenter Role = "renter"
	// RoleOwner lists the user's items rented out to others.
	RoleOwner Role = "owner"
)

// CreateRentalInput carries a renter's request. Dates are calendar days.
type CreateRentalInput struct {
	ItemID    uuid.UUID
	RenterID  uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Message   string
}

// RentalService is the booking engine: it accepts rental requests, checks
// them against the item calendar and drives the rental state machine.
// Every mutation runs in one unit of work so the conflict check, the rental
// write, the item status change and the outbox event commit together.
type RentalService struct {
	store   repositories.Store
	log     logger.Logger
	metrics *telemetry.BookingMetrics
	now     func() time.Time
}

// NewRentalService returns a RentalService. metrics may be nil.
func NewRentalService(store repositories.Store, log logger.Logger, metrics *telemetry.BookingMetrics) *RentalService {
	return &RentalService{store: store, log: log, metrics: metrics, now: time.Now}
}

// CreateRentalRequest validates and stores a pending rental.
func (s *RentalService) CreateRentalRequest(ctx context.Context, in CreateRentalInput) (*models.Rental, error) {
	ctx, span := tracer.Start(ctx, "rental.CreateRentalRequest", trace.WithAttributes(
		attribute.String("item_id", in.ItemID.String()),
	))
	defer span.End()

	now := s.now()
	period := models.NewDateRange(in.StartDate, in.EndDate)
	today := models.Today(now)

	var rental *models.Rental
	err := s.store.WithinTx(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		listing, err := uow.Listings().GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if err := domainsvcs.CheckRequest(listing, in.RenterID, period, today); err != nil {
			return err
		}

		blocking, err := uow.Rentals().ListBlocking(ctx, listing.ID)
		if err != nil {
			return fmt.Errorf("list blocking rentals: %w", err)
		}
		if err := domainsvcs.CheckConflicts(blocking, period, uuid.Nil); err != nil {
			return err
		}

		rental, err = models.NewRental(listing, in.RenterID, period, strings.TrimSpace(in.Message), now)
		if err != nil {
			return err
		}
		rental.ItemTitle = listing.Title
		if err := uow.Rentals().Insert(ctx, rental); err != nil {
			return fmt.Errorf("insert rental: %w", err)
		}

		evt := events.RentalRequestedEvent{
			EventID:     uuid.New(),
			Version:     eventVersion,
			RentalID:    rental.ID,
			ItemID:      rental.ItemID,
			RenterID:    rental.RenterID,
			OwnerID:     rental.OwnerID,
			StartDate:   period.Start.Format(models.DateLayout),
			EndDate:     period.End.Format(models.DateLayout),
			TotalAmount: rental.TotalAmount.Minor(),
			OccurredAt:  rental.CreatedAt,
		}
		return uow.Events().Publish(ctx, events.TopicRentalRequested, evt.EventID, evt)
	})
	if err != nil {
		s.fail(ctx, span, "rental request refused", err, "item_id", in.ItemID)
		return nil, err
	}

	s.metrics.RentalRequested(ctx)
	s.log.InfoContext(ctx, "rental requested",
		"rental_id", rental.ID,
		"item_id", rental.ItemID,
		"period", period.String(),
		"total_amount", rental.TotalAmount.Minor(),
	)
	return rental, nil
}

// TransitionRentalStatus moves a rental to status to on behalf of actorID,
// who must own the item. Approval re-checks the calendar and starting a
// rental requires that no other rental of the item is active.
func (s *RentalService) TransitionRentalStatus(ctx context.Context, rentalID, actorID uuid.UUID, to models.Status) (*models.Rental, error) {
	ctx, span := tracer.Start(ctx, "rental.TransitionRentalStatus", trace.WithAttributes(
		attribute.String("rental_id", rentalID.String()),
		attribute.String("to", to.String()),
	))
	defer span.End()

	var (
		rental *models.Rental
		from   models.Status
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		var err error
		rental, err = uow.Rentals().GetForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if err := domainsvcs.CheckTransition(rental, actorID, to); err != nil {
			return err
		}
		from = rental.Status
		return s.applyTransition(ctx, uow, rental, actorID, to)
	})
	if err != nil {
		s.fail(ctx, span, "rental transition refused", err, "rental_id", rentalID, "to", to)
		return nil, err
	}

	s.metrics.Transition(ctx, from.String(), to.String())
	s.log.InfoContext(ctx, "rental status changed",
		"rental_id", rental.ID,
		"from", from,
		"to", to,
	)
	return rental, nil
}

// applyTransition performs an authorised transition inside uow: calendar
// checks, the status write, the item side effect and the outbox event.
func (s *RentalService) applyTransition(ctx context.Context, uow repositories.UnitOfWork, rental *models.Rental, actorID uuid.UUID, to models.Status) error {
	listing, err := uow.Listings().GetForUpdate(ctx, rental.ItemID)
	if err != nil {
		return err
	}
	blocking, err := uow.Rentals().ListBlocking(ctx, rental.ItemID)
	if err != nil {
		return fmt.Errorf("list blocking rentals: %w", err)
	}

	switch to {
	case models.StatusApproved:
		if err := domainsvcs.CheckConflicts(blocking, rental.Period, rental.ID); err != nil {
			return err
		}
	case models.StatusActive:
		if domainsvcs.HasOtherActive(blocking, rental.ID) {
			return rentaldomain.ErrItemInUse
		}
	}

	from := rental.Status
	effect := from.Effect(to)
	rental.Apply(to, s.now())
	rental.ItemTitle = listing.Title
	if err := uow.Rentals().UpdateStatus(ctx, rental); err != nil {
		return fmt.Errorf("update rental status: %w", err)
	}

	var itemStatus models.ListingStatus
	switch effect {
	case models.EffectOccupy:
		itemStatus = models.ListingRented
	case models.EffectRelease:
		if !domainsvcs.HasOtherActive(blocking, rental.ID) {
			itemStatus = models.ListingAvailable
		}
	}
	if itemStatus != "" && itemStatus != listing.Status {
		if err := uow.Listings().UpdateStatus(ctx, listing.ID, itemStatus); err != nil {
			return fmt.Errorf("update item status: %w", err)
		}
	} else {
		itemStatus = ""
	}

	evt := events.RentalStatusChangedEvent{
		EventID:    uuid.New(),
		Version:    eventVersion,
		RentalID:   rental.ID,
		ItemID:     rental.ItemID,
		ActorID:    actorID,
		From:       from.String(),
		To:         to.String(),
		ItemStatus: string(itemStatus),
		OccurredAt: rental.UpdatedAt,
	}
	return uow.Events().Publish(ctx, events.TopicRentalStatusChanged, evt.EventID, evt)
}

// GetRental returns a rental visible to actorID (its renter or owner).
func (s *RentalService) GetRental(ctx context.Context, rentalID, actorID uuid.UUID) (*models.Rental, error) {
	rental, err := s.store.Rentals().Get(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.Involves(actorID) {
		return nil, fmt.Errorf("%w: not a party to this rental", rentaldomain.ErrPermission)
	}
	return rental, nil
}

// ListRentals returns userID's rentals from the given side, newest first.
func (s *RentalService) ListRentals(ctx context.Context, userID uuid.UUID, role Role) ([]*models.Rental, error) {
	var (
		rentals []*models.Rental
		err     error
	)
	switch role {
	case RoleRenter:
		rentals, err = s.store.Rentals().ListByRenter(ctx, userID)
	case RoleOwner:
		rentals, err = s.store.Rentals().ListByOwner(ctx, userID)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", rentaldomain.ErrValidation, role)
	}
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	return rentals, nil
}

// ExpireStalePending cancels every pending rental whose start date is
// before today. Each rental is cancelled in its own unit of work so one
// failure does not roll back the rest. Returns the number cancelled.
func (s *RentalService) ExpireStalePending(ctx context.Context, today time.Time) (int, error) {
	ctx, span := tracer.Start(ctx, "rental.ExpireStalePending")
	defer span.End()

	today = models.Today(today)
	stale, err := s.store.Rentals().ListPendingStartingBefore(ctx, today)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("list stale rentals: %w", err)
	}

	var (
		expired int
		errs    []error
	)
	for _, candidate := range stale {
		err := s.store.WithinTx(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
			rental, err := uow.Rentals().GetForUpdate(ctx, candidate.ID)
			if err != nil {
				return err
			}
			if rental.Status != models.StatusPending {
				return errSkip
			}
			return s.applyTransition(ctx, uow, rental, uuid.Nil, models.StatusCancelled)
		})
		switch {
		case err == nil:
			expired++
			s.metrics.Transition(ctx, models.StatusPending.String(), models.StatusCancelled.String())
		case errors.Is(err, errSkip):
		default:
			errs = append(errs, fmt.Errorf("expire rental %s: %w", candidate.ID, err))
		}
	}

	span.SetAttributes(attribute.Int("expired", expired))
	s.log.InfoContext(ctx, "stale pending rentals expired",
		"today", today.Format(models.DateLayout),
		"candidates", len(stale),
		"expired", expired,
	)
	if len(errs) > 0 {
		err := errors.Join(errs...)
		span.SetStatus(codes.Error, err.Error())
		return expired, err
	}
	return expired, nil
}

// errSkip rolls back a unit of work whose rental changed since it was listed.
var errSkip = errors.New("rental no longer pending")

// fail records err on the span, counts conflicts and logs at a level that
// matches the error kind.
func (s *RentalService) fail(ctx context.Context, span trace.Span, msg string, err error, args ...any) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if reason := rentaldomain.ConflictReason(err); reason != "" {
		s.metrics.Conflict(ctx, reason)
	}
	args = append(args, "error", err)
	if isDomainError(err) {
		s.log.InfoContext(ctx, msg, args...)
		return
	}
	s.log.ErrorContext(ctx, msg, args...)
	telemetry.CaptureError(ctx, err, map[string]string{"trace_id": span.SpanContext().TraceID().String()})
}

func isDomainError(err error) bool {
	for _, target := range []error{
		rentaldomain.ErrValidation,
		rentaldomain.ErrItemNotFound,
		rentaldomain.ErrRentalNotFound,
		rentaldomain.ErrPermission,
		rentaldomain.ErrConflict,
		rentaldomain.ErrInvalidTransition,
		rentaldomain.ErrAlreadyReviewed,
		rentaldomain.ErrInvalidRating,
		rentaldomain.ErrNotCompleted,
		rentaldomain.ErrDateRange,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
