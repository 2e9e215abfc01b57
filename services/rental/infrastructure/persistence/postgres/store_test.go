package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rentrobe/rentrobe/pkg/database"
	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/pkg/migrator"
	rentaldomain "github.com/rentrobe/rentrobe/services/rental/domain"
	"github.com/rentrobe/rentrobe/services/rental/domain/models"
	"github.com/rentrobe/rentrobe/services/rental/domain/repositories"
)

// Integration tests: skipped unless DATABASE_URL is set.
func openStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}
	log := logger.NewWithWriter(io.Discard, "error")
	pool, err := database.NewPool(context.Background(), url, log)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrator.Up(context.Background(), pool.DB(), os.DirFS("../../../../../migrations/catalog"), "goose_catalog_version"))
	require.NoError(t, migrator.Up(context.Background(), pool.DB(), os.DirFS("../../../../../migrations/rental"), "goose_rental_version"))
	return NewStore(pool, nil), pool.DB()
}

func seedItem(t *testing.T, sqlDB *sql.DB) (itemID, ownerID uuid.UUID) {
	t.Helper()
	itemID, ownerID = uuid.New(), uuid.New()
	_, err := sqlDB.Exec(`
		INSERT INTO catalog.items (id, owner_id, category_id, title, size, price_per_day, security_deposit)
		SELECT $1, $2, id, 'Velvet blazer', 'M', 80000, 200000 FROM catalog.categories WHERE slug = 'formal'`,
		itemID, ownerID)
	require.NoError(t, err)
	return itemID, ownerID
}

func TestStore_RentalLifecycle(t *testing.T) {
	store, sqlDB := openStore(t)
	ctx := context.Background()
	itemID, _ := seedItem(t, sqlDB)

	listing, err := store.Listings().Get(ctx, itemID)
	require.NoError(t, err)
	require.Equal(t, int64(800), listing.PricePerDay.Major())
	require.True(t, listing.Rentable())

	start, _ := models.ParseDate("2030-06-01")
	end, _ := models.ParseDate("2030-06-03")
	rental, err := models.NewRental(listing, uuid.New(), models.NewDateRange(start, end), "", time.Now())
	require.NoError(t, err)

	err = store.WithinTx(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		return uow.Rentals().Insert(ctx, rental)
	})
	require.NoError(t, err)

	got, err := store.Rentals().Get(ctx, rental.ID)
	require.NoError(t, err)
	require.Equal(t, rental.Period, got.Period)
	require.Equal(t, int64(1600), got.TotalAmount.Major())
	require.Equal(t, "Velvet blazer", got.ItemTitle)
	require.Nil(t, got.ApprovedAt)

	err = store.WithinTx(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		r, err := uow.Rentals().GetForUpdate(ctx, rental.ID)
		if err != nil {
			return err
		}
		r.Apply(models.StatusApproved, time.Now())
		return uow.Rentals().UpdateStatus(ctx, r)
	})
	require.NoError(t, err)

	blocking, err := store.Rentals().ListBlocking(ctx, itemID)
	require.NoError(t, err)
	require.Len(t, blocking, 1)
	require.NotNil(t, blocking[0].ApprovedAt)
}

func TestStore_RollbackAndDuplicateReview(t *testing.T) {
	store, sqlDB := openStore(t)
	ctx := context.Background()
	itemID, _ := seedItem(t, sqlDB)

	abort := errors.New("abort")
	err := store.WithinTx(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		if err := uow.Listings().UpdateStatus(ctx, itemID, models.ListingRented); err != nil {
			return err
		}
		return abort
	})
	require.ErrorIs(t, err, abort)

	listing, err := store.Listings().Get(ctx, itemID)
	require.NoError(t, err)
	require.Equal(t, models.ListingAvailable, listing.Status)

	start, _ := models.ParseDate("2030-07-01")
	rental, err := models.NewRental(listing, uuid.New(), models.NewDateRange(start, start), "", time.Now())
	require.NoError(t, err)
	review := models.NewReview(rental, 5, "", time.Now())
	err = store.WithinTx(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		if err := uow.Rentals().Insert(ctx, rental); err != nil {
			return err
		}
		return uow.Reviews().Insert(ctx, review)
	})
	require.NoError(t, err)

	dup := models.NewReview(rental, 3, "", time.Now())
	err = store.WithinTx(ctx, func(ctx context.Context, uow repositories.UnitOfWork) error {
		return uow.Reviews().Insert(ctx, dup)
	})
	require.ErrorIs(t, err, rentaldomain.ErrAlreadyReviewed)

	_, err = store.Rentals().Get(ctx, uuid.New())
	require.ErrorIs(t, err, rentaldomain.ErrRentalNotFound)
	_, err = store.Listings().Get(ctx, uuid.New())
	require.ErrorIs(t, err, rentaldomain.ErrItemNotFound)
}
