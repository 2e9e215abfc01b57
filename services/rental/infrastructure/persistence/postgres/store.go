package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/database"
	"github.com/rentrobe/rentrobe/pkg/events"
	"github.com/rentrobe/rentrobe/services/rental/domain/repositories"
	"github.com/rentrobe/rentrobe/services/rental/infrastructure/persistence/postgres/db"
)

// eventVersion is stamped on every outbox message from this context.
const eventVersion = 1

// Store implements repositories.Store on PostgreSQL. Units of work run in a
// read-committed transaction; GetForUpdate takes row locks so concurrent
// requests for one item queue behind each other.
type Store struct {
	db  *database.Database
	bus *events.EventBus
}

// NewStore returns a Store over the shared pool. Events published in a unit
// of work go to bus inside the same transaction; a nil bus drops them.
func NewStore(database *database.Database, bus *events.EventBus) *Store {
	return &Store{db: database, bus: bus}
}

// WithinTx runs fn in one transaction. Serialization failures are retried by
// the database package, so fn may run more than once.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow repositories.UnitOfWork) error) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		return fn(ctx, &unitOfWork{
			listings: &listingRepo{q: q},
			rentals:  &rentalRepo{q: q},
			reviews:  &reviewRepo{q: q},
			events:   &txPublisher{tx: tx, bus: s.bus},
		})
	})
}

func (s *Store) Listings() repositories.ListingRepository {
	return &listingRepo{q: db.New(s.db.DB())}
}

func (s *Store) Rentals() repositories.RentalRepository {
	return &rentalRepo{q: db.New(s.db.DB())}
}

func (s *Store) Reviews() repositories.ReviewRepository {
	return &reviewRepo{q: db.New(s.db.DB())}
}

type unitOfWork struct {
	listings *listingRepo
	rentals  *rentalRepo
	reviews  *reviewRepo
	events   *txPublisher
}

func (u *unitOfWork) Listings() repositories.ListingRepository { return u.listings }
func (u *unitOfWork) Rentals() repositories.RentalRepository   { return u.rentals }
func (u *unitOfWork) Reviews() repositories.ReviewRepository   { return u.reviews }
func (u *unitOfWork) Events() repositories.EventPublisher      { return u.events }

// txPublisher writes events to the Watermill outbox tables through tx.
type txPublisher struct {
	tx  *sql.Tx
	bus *events.EventBus
}

func (p *txPublisher) Publish(ctx context.Context, topic string, eventID uuid.UUID, event any) error {
	if p.bus == nil {
		return nil
	}
	msg, err := events.NewMessage(eventID, eventVersion, event)
	if err != nil {
		return err
	}
	if err := p.bus.PublishInTx(ctx, p.tx, topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}
