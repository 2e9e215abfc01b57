// Package memory is an in-process catalog store used by tests and local
// tooling. Filters are evaluated with models.ItemFilter.Matches.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	catalogdomain "github.com/rentrobe/rentrobe/services/catalog/domain"
	domainevents "github.com/rentrobe/rentrobe/services/catalog/domain/events"
	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
	"github.com/rentrobe/rentrobe/services/catalog/domain/repositories"
)

// PublishedEvent is an event recorded by a successful write.
type PublishedEvent struct {
	Topic string
	Event any
}

// Store implements the item and category repositories in memory.
type Store struct {
	mu         sync.Mutex
	items      map[uuid.UUID]models.Item
	categories map[uuid.UUID]models.Category
	events     []PublishedEvent
}

var (
	_ repositories.ItemRepository     = (*Store)(nil)
	_ repositories.CategoryRepository = (*CategoryStore)(nil)
)

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		items:      make(map[uuid.UUID]models.Item),
		categories: make(map[uuid.UUID]models.Category),
	}
}

// Categories returns the category repository view of the store.
func (s *Store) Categories() *CategoryStore {
	return &CategoryStore{s: s}
}

// PutCategory seeds or replaces a category.
func (s *Store) PutCategory(c models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

// PutItem seeds or replaces an item without publishing an event.
func (s *Store) PutItem(item models.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

// Events returns the events published so far.
func (s *Store) Events() []PublishedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PublishedEvent(nil), s.events...)
}

// Views returns the stored view counter of id.
func (s *Store) Views(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].Views
}

func (s *Store) Save(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[item.CategoryID]; !ok {
		return catalogdomain.ErrCategoryNotFound
	}
	s.items[item.ID] = *item
	s.events = append(s.events, PublishedEvent{
		Topic: domainevents.TopicItemCreated,
		Event: domainevents.ItemCreatedEvent{
			EventID:     uuid.New(),
			Version:     1,
			ItemID:      item.ID,
			OwnerID:     item.OwnerID,
			CategoryID:  item.CategoryID,
			Title:       item.Title.String(),
			PricePerDay: item.PricePerDay.Minor(),
			OccurredAt:  item.CreatedAt,
		},
	})
	return nil
}

func (s *Store) Get(_ context.Context, id uuid.UUID) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok || !item.Active {
		return nil, catalogdomain.ErrItemNotFound
	}
	return s.withCategory(item), nil
}

func (s *Store) List(_ context.Context, filter models.ItemFilter, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*models.Item
	for _, item := range s.items {
		it := s.withCategory(item)
		if filter.Matches(it) {
			matched = append(matched, it)
		}
	}
	sortNewestFirst(matched)

	total := len(matched)
	start := min(opts.Offset, total)
	end := total
	if opts.Limit > 0 {
		end = min(start+opts.Limit, total)
	}
	return matched[start:end], total, nil
}

func (s *Store) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var owned []*models.Item
	for _, item := range s.items {
		if item.OwnerID == ownerID && item.Active {
			owned = append(owned, s.withCategory(item))
		}
	}
	sortNewestFirst(owned)
	return owned, nil
}

func (s *Store) IncrementViews(_ context.Context, id uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok || !item.Active {
		return 0, catalogdomain.ErrItemNotFound
	}
	item.Views++
	s.items[id] = item
	return item.Views, nil
}

func (s *Store) Deactivate(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.items[item.ID]
	if !ok || !stored.Active {
		return catalogdomain.ErrItemNotFound
	}
	stored.Active = false
	stored.UpdatedAt = item.UpdatedAt
	s.items[item.ID] = stored
	s.events = append(s.events, PublishedEvent{
		Topic: domainevents.TopicItemDeactivated,
		Event: domainevents.ItemDeactivatedEvent{
			EventID:    uuid.New(),
			Version:    1,
			ItemID:     item.ID,
			OwnerID:    stored.OwnerID,
			OccurredAt: item.UpdatedAt,
		},
	})
	return nil
}

// withCategory copies item and fills the joined category fields.
func (s *Store) withCategory(item models.Item) *models.Item {
	if c, ok := s.categories[item.CategoryID]; ok {
		item.CategorySlug = c.Slug
		item.CategoryName = c.Name
	}
	return &item
}

func sortNewestFirst(items []*models.Item) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID.String() < items[j].ID.String()
	})
}

// CategoryStore is the category repository view of a Store.
type CategoryStore struct{ s *Store }

func (c *CategoryStore) Get(_ context.Context, id uuid.UUID) (*models.Category, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	category, ok := c.s.categories[id]
	if !ok {
		return nil, catalogdomain.ErrCategoryNotFound
	}
	return &category, nil
}

func (c *CategoryStore) ListActive(_ context.Context) ([]*models.Category, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	counts := make(map[uuid.UUID]int)
	for _, item := range c.s.items {
		if item.Active {
			counts[item.CategoryID]++
		}
	}
	var active []*models.Category
	for _, category := range c.s.categories {
		if category.Active {
			category.ItemCount = counts[category.ID]
			active = append(active, &category)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })
	return active, nil
}

func (c *CategoryStore) Deactivate(_ context.Context, slug string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for id, category := range c.s.categories {
		if strings.EqualFold(category.Slug, slug) {
			category.Active = false
			c.s.categories[id] = category
			return nil
		}
	}
	return catalogdomain.ErrCategoryNotFound
}
