package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items.
	ItemCacheTTL = 24 * time.Hour

	itemCacheKeyPrefix = "item"
)

// CachedItem is the denormalized item detail stored in Redis.
// Money fields are minor units. The view counter is not cached; it changes on
// every read and is served from Postgres.
type CachedItem struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	CategoryID      uuid.UUID
	CategorySlug    string
	CategoryName    string
	Title           string
	Description     string
	Size            string
	PricePerDay     int64
	SecurityDeposit int64
	Condition       string
	City            string
	Status          string
	Rating          float64
	ReviewsCount    int
	CreatedAt       time.Time
}

// ItemCache provides structured read/write operations for item detail entries.
// Key format: "<namespace>:item:{itemID}"
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID uuid.UUID) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}
	return decodeItem(vals)
}

// Set writes a cached item as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	key := c.key(item.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, encodeItem(item)...)
	pipe.Expire(ctx, key, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item. Deleting a missing key is not an error.
func (c *ItemCache) Delete(ctx context.Context, itemID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *ItemCache) key(itemID uuid.UUID) string {
	return c.client.Key(itemCacheKeyPrefix, itemID.String())
}

func encodeItem(item *CachedItem) []any {
	return []any{
		"id", item.ID.String(),
		"owner_id", item.OwnerID.String(),
		"category_id", item.CategoryID.String(),
		"category_slug", item.CategorySlug,
		"category_name", item.CategoryName,
		"title", item.Title,
		"description", item.Description,
		"size", item.Size,
		"price_per_day", strconv.FormatInt(item.PricePerDay, 10),
		"security_deposit", strconv.FormatInt(item.SecurityDeposit, 10),
		"condition", item.Condition,
		"city", item.City,
		"status", item.Status,
		"rating", strconv.FormatFloat(item.Rating, 'f', -1, 64),
		"reviews_count", strconv.Itoa(item.ReviewsCount),
		"created_at", item.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeItem(vals map[string]string) (*CachedItem, error) {
	var (
		item CachedItem
		err  error
	)
	if item.ID, err = uuid.Parse(vals["id"]); err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	if item.OwnerID, err = uuid.Parse(vals["owner_id"]); err != nil {
		return nil, fmt.Errorf("cache parse owner_id: %w", err)
	}
	if item.CategoryID, err = uuid.Parse(vals["category_id"]); err != nil {
		return nil, fmt.Errorf("cache parse category_id: %w", err)
	}
	if item.PricePerDay, err = strconv.ParseInt(vals["price_per_day"], 10, 64); err != nil {
		return nil, fmt.Errorf("cache parse price_per_day: %w", err)
	}
	if item.SecurityDeposit, err = strconv.ParseInt(vals["security_deposit"], 10, 64); err != nil {
		return nil, fmt.Errorf("cache parse security_deposit: %w", err)
	}
	if item.Rating, err = strconv.ParseFloat(vals["rating"], 64); err != nil {
		return nil, fmt.Errorf("cache parse rating: %w", err)
	}
	if item.ReviewsCount, err = strconv.Atoi(vals["reviews_count"]); err != nil {
		return nil, fmt.Errorf("cache parse reviews_count: %w", err)
	}
	if item.CreatedAt, err = time.Parse(time.RFC3339Nano, vals["created_at"]); err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	item.CategorySlug = vals["category_slug"]
	item.CategoryName = vals["category_name"]
	item.Title = vals["title"]
	item.Description = vals["description"]
	item.Size = vals["size"]
	item.Condition = vals["condition"]
	item.City = vals["city"]
	item.Status = vals["status"]
	return &item, nil
}
