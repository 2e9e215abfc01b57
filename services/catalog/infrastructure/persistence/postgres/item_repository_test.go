package postgres

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rentrobe/rentrobe/pkg/database"
	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/pkg/migrator"
	"github.com/rentrobe/rentrobe/pkg/money"
	catalogdomain "github.com/rentrobe/rentrobe/services/catalog/domain"
	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
	"github.com/rentrobe/rentrobe/services/catalog/domain/repositories"
)

// formalID is the seeded "formal" category.
var formalID = uuid.MustParse("6c1f0f8e-3b1a-4c55-9a57-0d3f1b2a0001")

// Integration tests: skipped unless DATABASE_URL is set.
func openRepos(t *testing.T) (*ItemRepository, *CategoryRepository) {
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
	return NewItemRepository(pool, nil), NewCategoryRepository(pool)
}

func TestItemRepository_Lifecycle(t *testing.T) {
	items, categories := openRepos(t)
	ctx := context.Background()

	formal, err := categories.Get(ctx, formalID)
	require.NoError(t, err)
	require.Equal(t, "formal", formal.Slug)

	// A unique title keeps reruns against the same database independent.
	marker := uuid.NewString()[:8]
	item := models.NewItem(models.NewItemParams{
		OwnerID:         uuid.New(),
		Category:        formal,
		Title:           models.ItemTitle("Velvet tuxedo " + marker),
		Size:            "M",
		PricePerDay:     money.MustFromMajor(800),
		SecurityDeposit: money.MustFromMajor(2000),
		City:            "Mumbai",
	}, time.Now())
	require.NoError(t, items.Save(ctx, item))

	got, err := items.Get(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, item.Title, got.Title)
	require.Equal(t, "Formal Wear", got.CategoryName)
	require.Equal(t, money.MustFromMajor(800), got.PricePerDay)

	found, total, err := items.List(ctx, models.ItemFilter{Search: marker, CategorySlug: "formal"}, repositories.QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, item.ID, found[0].ID)

	_, total, err = items.List(ctx, models.ItemFilter{Search: marker + "%"}, repositories.QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Zero(t, total, "wildcards in the query are literal")

	views, err := items.IncrementViews(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 1, views)

	item.UpdatedAt = time.Now()
	require.NoError(t, items.Deactivate(ctx, item))
	require.ErrorIs(t, items.Deactivate(ctx, item), catalogdomain.ErrItemNotFound)

	_, err = items.Get(ctx, item.ID)
	require.ErrorIs(t, err, catalogdomain.ErrItemNotFound)
	_, err = items.IncrementViews(ctx, item.ID)
	require.ErrorIs(t, err, catalogdomain.ErrItemNotFound)
}

func TestItemRepository_UnknownCategory(t *testing.T) {
	items, _ := openRepos(t)
	category := &models.Category{ID: uuid.New(), Slug: "ghost", Active: true}
	item := models.NewItem(models.NewItemParams{
		OwnerID:     uuid.New(),
		Category:    category,
		Title:       "Orphan",
		Size:        "S",
		PricePerDay: money.MustFromMajor(100),
	}, time.Now())

	err := items.Save(context.Background(), item)
	require.ErrorIs(t, err, catalogdomain.ErrCategoryNotFound)
}

func TestCategoryRepository_Deactivate(t *testing.T) {
	_, categories := openRepos(t)
	err := categories.Deactivate(context.Background(), "no-such-category")
	require.ErrorIs(t, err, catalogdomain.ErrCategoryNotFound)
}
