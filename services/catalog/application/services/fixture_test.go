package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	pkgcache "github.com/rentrobe/rentrobe/pkg/cache"
	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
	"github.com/rentrobe/rentrobe/services/catalog/infrastructure/persistence/memory"
)

// fakeCache records writes and signals each Set on stored.
type fakeCache struct {
	mu      sync.Mutex
	items   map[uuid.UUID]pkgcache.CachedItem
	deleted []uuid.UUID
	stored  chan uuid.UUID
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[uuid.UUID]pkgcache.CachedItem), stored: make(chan uuid.UUID, 8)}
}

func (c *fakeCache) Get(_ context.Context, id uuid.UUID) (*pkgcache.CachedItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	if !ok {
		return nil, redis.Nil
	}
	return &item, nil
}

func (c *fakeCache) Set(_ context.Context, item *pkgcache.CachedItem) error {
	c.mu.Lock()
	c.items[item.ID] = *item
	c.mu.Unlock()
	c.stored <- item.ID
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	c.deleted = append(c.deleted, id)
	return nil
}

type fixture struct {
	t          *testing.T
	ctx        context.Context
	store      *memory.Store
	cache      *fakeCache
	items      *ItemService
	categories *CategoryService
	now        time.Time
	formal     models.Category
	party      models.Category
	owner      uuid.UUID
}

// newFixture seeds two active categories, "Formal Wear" and "Party Wear",
// and a retired "Vintage" category. The clock advances a minute per read.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		store: memory.NewStore(),
		cache: newFakeCache(),
		now:   time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC),
		owner: uuid.New(),
	}
	f.formal = models.Category{ID: uuid.New(), Name: "Formal Wear", Slug: "formal", Active: true}
	f.party = models.Category{ID: uuid.New(), Name: "Party Wear", Slug: "party", Active: true}
	f.store.PutCategory(f.formal)
	f.store.PutCategory(f.party)
	f.store.PutCategory(models.Category{ID: uuid.New(), Name: "Vintage", Slug: "vintage"})

	log := logger.NewWithWriter(io.Discard, "error")
	pageSize := func(requested int) int {
		switch {
		case requested <= 0:
			return 20
		case requested > 100:
			return 100
		}
		return requested
	}
	f.items = NewItemService(f.store, f.store.Categories(), f.cache, log, nil, pageSize)
	f.items.now = f.tick
	f.categories = NewCategoryService(f.store.Categories(), log)
	return f
}

func (f *fixture) tick() time.Time {
	f.now = f.now.Add(time.Minute)
	return f.now
}

func (f *fixture) input(title string, category models.Category) CreateItemInput {
	return CreateItemInput{
		OwnerID:         f.owner,
		CategoryID:      category.ID,
		Title:           title,
		Description:     "dry cleaned after every rental",
		Size:            "M",
		PricePerDay:     800,
		SecurityDeposit: 2000,
		City:            "Mumbai",
	}
}

func (f *fixture) mustCreate(in CreateItemInput) *models.Item {
	f.t.Helper()
	item, err := f.items.CreateItem(f.ctx, in)
	require.NoError(f.t, err)
	return item
}

func (f *fixture) awaitCached(id uuid.UUID) {
	f.t.Helper()
	select {
	case got := <-f.cache.stored:
		require.Equal(f.t, id, got)
	case <-time.After(2 * time.Second):
		f.t.Fatal("item was not cached")
	}
}
