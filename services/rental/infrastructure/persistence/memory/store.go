// Package memory is an in-process implementation of the rental store used by
// tests and local tooling. Units of work are serialised by a mutex and run
// against a copy of the state that replaces the original only on commit, so
// a failed unit of work leaves no trace.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/services/rental/domain/models"
	"github.com/rentrobe/rentrobe/services/rental/domain/repositories"
)

// PublishedEvent is an event recorded by a committed unit of work.
type PublishedEvent struct {
	Topic   string
	EventID uuid.UUID
	Event   any
}

type state struct {
	listings map[uuid.UUID]models.Listing
	rentals  map[uuid.UUID]models.Rental
	reviews  map[uuid.UUID]models.Review
	events   []PublishedEvent
}

func newState() *state {
	return &state{
		listings: make(map[uuid.UUID]models.Listing),
		rentals:  make(map[uuid.UUID]models.Rental),
		reviews:  make(map[uuid.UUID]models.Review),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.listings {
		c.listings[k] = v
	}
	for k, v := range s.rentals {
		c.rentals[k] = v
	}
	for k, v := range s.reviews {
		c.reviews[k] = v
	}
	c.events = append(c.events, s.events...)
	return c
}

// Store implements repositories.Store in memory.
type Store struct {
	mu    sync.Mutex
	state *state
}

var _ repositories.Store = (*Store)(nil)

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{state: newState()}
}

// PutListing seeds or replaces a listing.
func (s *Store) PutListing(l models.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.listings[l.ID] = l
}

// Events returns the events published by committed units of work.
func (s *Store) Events() []PublishedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PublishedEvent(nil), s.state.events...)
}

// WithinTx runs fn against a private copy of the state and publishes the
// copy when fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow repositories.UnitOfWork) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, unit{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// snapshot copies the committed state for reads outside a unit of work.
func (s *Store) snapshot() *state {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Listings reads committed listings. Writes through it are discarded.
func (s *Store) Listings() repositories.ListingRepository {
	return listingRepo{st: s.snapshot()}
}

// Rentals reads committed rentals. Writes through it are discarded.
func (s *Store) Rentals() repositories.RentalRepository {
	return rentalRepo{st: s.snapshot()}
}

// Reviews reads committed reviews. Writes through it are discarded.
func (s *Store) Reviews() repositories.ReviewRepository {
	return reviewRepo{st: s.snapshot()}
}

type unit struct{ st *state }

func (u unit) Listings() repositories.ListingRepository { return listingRepo(u) }
func (u unit) Rentals() repositories.RentalRepository   { return rentalRepo(u) }
func (u unit) Reviews() repositories.ReviewRepository   { return reviewRepo(u) }
func (u unit) Events() repositories.EventPublisher      { return eventLog(u) }

type eventLog struct{ st *state }

func (e eventLog) Publish(_ context.Context, topic string, eventID uuid.UUID, event any) error {
	e.st.events = append(e.st.events, PublishedEvent{Topic: topic, EventID: eventID, Event: event})
	return nil
}
