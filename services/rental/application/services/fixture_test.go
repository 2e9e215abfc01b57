package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/pkg/money"
	"github.com/rentrobe/rentrobe/services/rental/domain/models"
	"github.com/rentrobe/rentrobe/services/rental/infrastructure/persistence/memory"
)

type fixture struct {
	t       *testing.T
	ctx     context.Context
	store   *memory.Store
	rentals *RentalService
	reviews *ReviewService
	clockMu sync.Mutex
	now     time.Time
	item    models.Listing
	owner   uuid.UUID
}

// newFixture seeds one available item priced 800/day with a 2000 deposit.
// The clock starts at 2024-05-20 09:00 UTC and advances a second per read.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		store: memory.NewStore(),
		now:   time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC),
		owner: uuid.New(),
	}
	log := logger.NewWithWriter(io.Discard, "error")
	f.rentals = NewRentalService(f.store, log, nil)
	f.reviews = NewReviewService(f.store, log, nil)
	f.rentals.now = f.tick
	f.reviews.now = f.tick

	f.item = models.Listing{
		ID:              uuid.New(),
		OwnerID:         f.owner,
		Title:           "Banarasi silk saree",
		PricePerDay:     money.MustFromMajor(800),
		SecurityDeposit: money.MustFromMajor(2000),
		Status:          models.ListingAvailable,
		Active:          true,
	}
	f.store.PutListing(f.item)
	return f
}

func (f *fixture) tick() time.Time {
	f.clockMu.Lock()
	defer f.clockMu.Unlock()
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fixture) date(s string) time.Time {
	f.t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(f.t, err)
	return d
}

func (f *fixture) request(renter uuid.UUID, start, end string) (*models.Rental, error) {
	return f.rentals.CreateRentalRequest(f.ctx, CreateRentalInput{
		ItemID:    f.item.ID,
		RenterID:  renter,
		StartDate: f.date(start),
		EndDate:   f.date(end),
		Message:   "  for a wedding  ",
	})
}

func (f *fixture) mustRequest(renter uuid.UUID, start, end string) *models.Rental {
	f.t.Helper()
	r, err := f.request(renter, start, end)
	require.NoError(f.t, err)
	return r
}

func (f *fixture) move(rentalID uuid.UUID, to ...models.Status) {
	f.t.Helper()
	for _, s := range to {
		_, err := f.rentals.TransitionRentalStatus(f.ctx, rentalID, f.owner, s)
		require.NoError(f.t, err, "transition to %s", s)
	}
}

func (f *fixture) itemStatus() models.ListingStatus {
	f.t.Helper()
	l, err := f.store.Listings().Get(f.ctx, f.item.ID)
	require.NoError(f.t, err)
	return l.Status
}

func (f *fixture) rentalStatus(id uuid.UUID) models.Status {
	f.t.Helper()
	r, err := f.store.Rentals().Get(f.ctx, id)
	require.NoError(f.t, err)
	return r.Status
}
