package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	pkgcache "github.com/rentrobe/rentrobe/pkg/cache"
	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/pkg/money"
	"github.com/rentrobe/rentrobe/pkg/telemetry"
	catalogdomain "github.com/rentrobe/rentrobe/services/catalog/domain"
	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
	"github.com/rentrobe/rentrobe/services/catalog/domain/repositories"
	domainsvcs "github.com/rentrobe/rentrobe/services/catalog/domain/services"
)

var tracer = otel.Tracer("github.com/rentrobe/rentrobe/services/catalog")

// ItemCache is the read-through cache for item detail.
type ItemCache interface {
	Get(ctx context.Context, itemID uuid.UUID) (*pkgcache.CachedItem, error)
	Set(ctx context.Context, item *pkgcache.CachedItem) error
	Delete(ctx context.Context, itemID uuid.UUID) error
}

// CreateItemInput carries an owner's new listing. Amounts are whole rupees.
type CreateItemInput struct {
	OwnerID         uuid.UUID
	CategoryID      uuid.UUID
	Title           string
	Description     string
	Size            string
	PricePerDay     int64
	SecurityDeposit int64
	Condition       string
	City            string
}

// ItemPage is one page of a filtered listing.
type ItemPage struct {
	Items   []*models.Item
	Page    int
	PerPage int
	Total   int
}

// SearchResult holds quick-search matches and query suggestions.
type SearchResult struct {
	Items       []*models.Item
	Suggestions []string
}

// ItemService orchestrates listing, browsing and withdrawing items.
// Event publishing is handled by the repository layer (outbox pattern).
// Detail reads are served from Redis when available.
type ItemService struct {
	items      repositories.ItemRepository
	categories repositories.CategoryRepository
	cache      ItemCache
	log        logger.Logger
	metrics    *telemetry.BookingMetrics
	pageSize   func(requested int) int
	now        func() time.Time
}

// NewItemService returns an ItemService. cache may be nil; pageSize clamps
// requested page sizes.
func NewItemService(
	items repositories.ItemRepository,
	categories repositories.CategoryRepository,
	cache ItemCache,
	log logger.Logger,
	metrics *telemetry.BookingMetrics,
	pageSize func(requested int) int,
) *ItemService {
	return &ItemService{
		items:      items,
		categories: categories,
		cache:      cache,
		log:        log,
		metrics:    metrics,
		pageSize:   pageSize,
		now:        time.Now,
	}
}

// CreateItem validates and persists a new listing. The repository publishes
// ItemCreatedEvent.
func (s *ItemService) CreateItem(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	title, err := models.NewItemTitle(strings.TrimSpace(in.Title))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalogdomain.ErrInvalidItemTitle, err)
	}

	price, err := money.FromMajor(in.PricePerDay)
	if err != nil {
		return nil, fmt.Errorf("%w: price per day: %w", catalogdomain.ErrInvalidPrice, err)
	}
	deposit, err := money.FromMajor(in.SecurityDeposit)
	if err != nil {
		return nil, fmt.Errorf("%w: security deposit: %w", catalogdomain.ErrInvalidPrice, err)
	}

	category, err := s.categories.Get(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	item := models.NewItem(models.NewItemParams{
		OwnerID:         in.OwnerID,
		Category:        category,
		Title:           title,
		Description:     strings.TrimSpace(in.Description),
		Size:            models.Size(in.Size),
		PricePerDay:     price,
		SecurityDeposit: deposit,
		Condition:       strings.TrimSpace(in.Condition),
		City:            strings.TrimSpace(in.City),
	}, s.now())

	if err := domainsvcs.ValidateItemForCreation(item, category); err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	s.log.InfoContext(ctx, "item listed",
		"item_id", item.ID,
		"category", category.Slug,
		"price_per_day", item.PricePerDay.Minor(),
	)
	return item, nil
}

// ListItems returns one page of active items matching filter, newest first.
// page is at least 1; perPage is clamped by the configured limits.
func (s *ItemService) ListItems(ctx context.Context, filter models.ItemFilter, page, perPage int) (*ItemPage, error) {
	if page < 1 {
		page = 1
	}
	perPage = s.pageSize(perPage)

	items, total, err := s.items.List(ctx, filter, repositories.QueryOpts{
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return &ItemPage{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

// GetItem returns an active item and counts the view. Item detail is read
// through the Redis cache; the view counter always comes from Postgres.
// A failed counter update does not fail the read.
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	ctx, span := tracer.Start(ctx, "catalog.GetItem", trace.WithAttributes(
		attribute.String("item_id", id.String()),
	))
	defer span.End()

	views, err := s.items.IncrementViews(ctx, id)
	switch {
	case errors.Is(err, catalogdomain.ErrItemNotFound):
		return nil, err
	case err != nil:
		s.log.WarnContext(ctx, "view counter update failed", "item_id", id, "error", err)
		return s.load(ctx, id)
	}
	s.metrics.ItemViewed(ctx)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			item := fromCached(cached)
			item.Views = views
			return item, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
	}

	item, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		go func(ctx context.Context) {
			if err := s.cache.Set(ctx, ToCached(item)); err != nil {
				s.log.WarnContext(ctx, "item cache write failed", "item_id", item.ID, "error", err)
			}
		}(context.WithoutCancel(ctx))
	}
	return item, nil
}

func (s *ItemService) load(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListOwnerItems returns ownerID's active items, newest first.
func (s *ItemService) ListOwnerItems(ctx context.Context, ownerID uuid.UUID) ([]*models.Item, error) {
	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owner items: %w", err)
	}
	return items, nil
}

// DeactivateItem withdraws an item from the catalog on behalf of its owner.
// Existing rentals are untouched; new requests are refused.
func (s *ItemService) DeactivateItem(ctx context.Context, id, actorID uuid.UUID) error {
	item, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if item.OwnerID != actorID {
		return fmt.Errorf("%w: only the owner can remove an item", catalogdomain.ErrPermission)
	}
	item.Active = false
	item.UpdatedAt = s.now().UTC()
	if err := s.items.Deactivate(ctx, item); err != nil {
		return fmt.Errorf("deactivate item: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, id); err != nil {
			s.log.WarnContext(ctx, "item cache delete failed", "item_id", id, "error", err)
		}
	}
	s.log.InfoContext(ctx, "item deactivated", "item_id", id)
	return nil
}

// Search returns up to SearchItemLimit items whose title or description
// contains q, plus suggestions. Queries shorter than MinSearchLength return
// an empty result.
func (s *ItemService) Search(ctx context.Context, q string) (*SearchResult, error) {
	q, ok := domainsvcs.NormalizeQuery(q)
	if !ok {
		return &SearchResult{Items: []*models.Item{}, Suggestions: []string{}}, nil
	}

	items, _, err := s.items.List(ctx, models.ItemFilter{Search: q}, repositories.QueryOpts{
		Limit: domainsvcs.SearchItemLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &SearchResult{Items: items, Suggestions: domainsvcs.Suggest(q, categories)}, nil
}

// ToCached converts an item into its cache entry.
func ToCached(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:              item.ID,
		OwnerID:         item.OwnerID,
		CategoryID:      item.CategoryID,
		CategorySlug:    item.CategorySlug,
		CategoryName:    item.CategoryName,
		Title:           item.Title.String(),
		Description:     item.Description,
		Size:            string(item.Size),
		PricePerDay:     item.PricePerDay.Minor(),
		SecurityDeposit: item.SecurityDeposit.Minor(),
		Condition:       item.Condition,
		City:            item.City,
		Status:          string(item.Status),
		Rating:          item.Rating,
		ReviewsCount:    item.ReviewsCount,
		CreatedAt:       item.CreatedAt,
	}
}

func fromCached(c *pkgcache.CachedItem) *models.Item {
	return &models.Item{
		ID:              c.ID,
		OwnerID:         c.OwnerID,
		CategoryID:      c.CategoryID,
		CategorySlug:    c.CategorySlug,
		CategoryName:    c.CategoryName,
		Title:           models.ItemTitle(c.Title),
		Description:     c.Description,
		Size:            models.Size(c.Size),
		PricePerDay:     money.Amount(c.PricePerDay),
		SecurityDeposit: money.Amount(c.SecurityDeposit),
		Condition:       c.Condition,
		City:            c.City,
		Status:          models.ItemStatus(c.Status),
		Rating:          c.Rating,
		ReviewsCount:    c.ReviewsCount,
		Active:          true,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.CreatedAt,
	}
}
