package subscribers

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	pkgcache "github.com/rentrobe/rentrobe/pkg/cache"
	"github.com/rentrobe/rentrobe/pkg/events"
	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/pkg/money"
	catalogevents "github.com/rentrobe/rentrobe/services/catalog/domain/events"
	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
	"github.com/rentrobe/rentrobe/services/catalog/infrastructure/persistence/memory"
	rentalevents "github.com/rentrobe/rentrobe/services/rental/domain/events"
)

type mapCache struct {
	items     map[uuid.UUID]pkgcache.CachedItem
	deleteErr error
}

func (c *mapCache) Get(_ context.Context, id uuid.UUID) (*pkgcache.CachedItem, error) {
	item, ok := c.items[id]
	if !ok {
		return nil, redis.Nil
	}
	return &item, nil
}

func (c *mapCache) Set(_ context.Context, item *pkgcache.CachedItem) error {
	c.items[item.ID] = *item
	return nil
}

func (c *mapCache) Delete(_ context.Context, id uuid.UUID) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	delete(c.items, id)
	return nil
}

func newSync(t *testing.T) (*CacheSync, *memory.Store, *mapCache) {
	t.Helper()
	store := memory.NewStore()
	cache := &mapCache{items: make(map[uuid.UUID]pkgcache.CachedItem)}
	return NewCacheSync(store, cache, logger.NewWithWriter(io.Discard, "error")), store, cache
}

func seedItem(store *memory.Store) models.Item {
	category := models.Category{ID: uuid.New(), Name: "Formal Wear", Slug: "formal", Active: true}
	store.PutCategory(category)
	item := models.NewItem(models.NewItemParams{
		OwnerID:     uuid.New(),
		Category:    &category,
		Title:       "Velvet tuxedo",
		Size:        "M",
		PricePerDay: money.MustFromMajor(800),
	}, time.Now())
	store.PutItem(*item)
	return *item
}

func newMsg(t *testing.T, event any) *message.Message {
	t.Helper()
	msg, err := events.NewMessage(uuid.New(), 1, event)
	require.NoError(t, err)
	return msg
}

func TestHandleItemCreated_WarmsCache(t *testing.T) {
	s, store, cache := newSync(t)
	item := seedItem(store)

	err := s.HandleItemCreated(context.Background(), newMsg(t, catalogevents.ItemCreatedEvent{ItemID: item.ID}))
	require.NoError(t, err)

	cached, ok := cache.items[item.ID]
	require.True(t, ok)
	require.Equal(t, "Velvet tuxedo", cached.Title)
	require.Equal(t, "Formal Wear", cached.CategoryName)
	require.Equal(t, int64(80000), cached.PricePerDay)
}

func TestHandleItemCreated_SkipsMissingItem(t *testing.T) {
	s, _, cache := newSync(t)
	err := s.HandleItemCreated(context.Background(), newMsg(t, catalogevents.ItemCreatedEvent{ItemID: uuid.New()}))
	require.NoError(t, err)
	require.Empty(t, cache.items)
}

func TestHandleItemCreated_BadPayload(t *testing.T) {
	s, _, _ := newSync(t)
	err := s.HandleItemCreated(context.Background(), message.NewMessage("1", []byte("{")))
	require.Error(t, err)
}

func TestInvalidation(t *testing.T) {
	itemID := uuid.New()
	tests := []struct {
		name    string
		handle  func(s *CacheSync) Handler
		event   any
		dropped bool
	}{
		{"item deactivated", func(s *CacheSync) Handler { return s.HandleItemDeactivated },
			catalogevents.ItemDeactivatedEvent{ItemID: itemID}, true},
		{"rental occupied item", func(s *CacheSync) Handler { return s.HandleRentalStatusChanged },
			rentalevents.RentalStatusChangedEvent{ItemID: itemID, From: "approved", To: "active", ItemStatus: "rented"}, true},
		{"rental left item status alone", func(s *CacheSync) Handler { return s.HandleRentalStatusChanged },
			rentalevents.RentalStatusChangedEvent{ItemID: itemID, From: "pending", To: "approved"}, false},
		{"review submitted", func(s *CacheSync) Handler { return s.HandleReviewSubmitted },
			rentalevents.ReviewSubmittedEvent{ItemID: itemID, Rating: 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, cache := newSync(t)
			cache.items[itemID] = pkgcache.CachedItem{ID: itemID}

			require.NoError(t, tt.handle(s)(context.Background(), newMsg(t, tt.event)))
			_, cached := cache.items[itemID]
			require.Equal(t, !tt.dropped, cached)
		})
	}
}

func TestInvalidation_DeleteFailureRetries(t *testing.T) {
	s, _, cache := newSync(t)
	cache.deleteErr = errors.New("redis down")
	err := s.HandleReviewSubmitted(context.Background(), newMsg(t, rentalevents.ReviewSubmittedEvent{ItemID: uuid.New()}))
	require.ErrorIs(t, err, cache.deleteErr)
}

type fakeBus struct{ topics []string }

func (b *fakeBus) Subscribe(_ context.Context, topic string, _ events.Handler) (<-chan error, error) {
	b.topics = append(b.topics, topic)
	ch := make(chan error)
	close(ch)
	return ch, nil
}

func TestRegister(t *testing.T) {
	s, _, _ := newSync(t)
	bus := &fakeBus{}

	topics, err := s.Register(context.Background(), bus)
	require.NoError(t, err)

	want := []string{
		catalogevents.TopicItemCreated,
		catalogevents.TopicItemDeactivated,
		rentalevents.TopicRentalStatusChanged,
		rentalevents.TopicReviewSubmitted,
	}
	sort.Strings(want)
	sort.Strings(topics)
	sort.Strings(bus.topics)
	require.Equal(t, want, topics)
	require.Equal(t, want, bus.topics)
}
