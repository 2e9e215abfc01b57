package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/database"
	"github.com/rentrobe/rentrobe/pkg/events"
	"github.com/rentrobe/rentrobe/pkg/money"
	catalogdomain "github.com/rentrobe/rentrobe/services/catalog/domain"
	domainevents "github.com/rentrobe/rentrobe/services/catalog/domain/events"
	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
	"github.com/rentrobe/rentrobe/services/catalog/domain/repositories"
	"github.com/rentrobe/rentrobe/services/catalog/infrastructure/persistence/postgres/db"
)

const eventVersion = 1

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. Item events are written to the outbox in the same transaction
// as the row change; a nil bus drops them.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

// Save persists a new Item and publishes an ItemCreatedEvent within the same transaction.
// An unknown category maps to ErrCategoryNotFound.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.InsertItem(ctx, db.InsertItemParams{
			ID:              item.ID,
			OwnerID:         item.OwnerID,
			CategoryID:      item.CategoryID,
			Title:           item.Title.String(),
			Description:     item.Description,
			Size:            string(item.Size),
			PricePerDay:     item.PricePerDay.Minor(),
			SecurityDeposit: item.SecurityDeposit.Minor(),
			Condition:       item.Condition,
			City:            item.City,
			Status:          string(item.Status),
			CreatedAt:       item.CreatedAt,
			UpdatedAt:       item.UpdatedAt,
		}); err != nil {
			if database.IsForeignKeyViolation(err) {
				return catalogdomain.ErrCategoryNotFound
			}
			return fmt.Errorf("insert item: %w", err)
		}

		event := domainevents.ItemCreatedEvent{
			EventID:     uuid.New(),
			Version:     eventVersion,
			ItemID:      item.ID,
			OwnerID:     item.OwnerID,
			CategoryID:  item.CategoryID,
			Title:       item.Title.String(),
			PricePerDay: item.PricePerDay.Minor(),
			OccurredAt:  item.CreatedAt,
		}
		return r.publish(ctx, tx, domainevents.TopicItemCreated, event.EventID, event)
	})
}

// Get returns an active item with its category. Returns ErrItemNotFound otherwise.
func (r *ItemRepository) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

// List returns one page of active items matching filter and the total match count.
func (r *ItemRepository) List(ctx context.Context, filter models.ItemFilter, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	q := db.New(r.db.DB())
	params := filterParams(filter)

	rows, err := q.ListItems(ctx, db.ListItemsParams{
		ItemFilterParams: params,
		Limit:            int32(opts.Limit),
		Offset:           int32(opts.Offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("query items: %w", err)
	}

	total, err := q.CountItems(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}
	return rowsToItems(rows), int(total), nil
}

// ListByOwner returns the owner's active items, newest first.
func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).ListItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query owner items: %w", err)
	}
	return rowsToItems(rows), nil
}

// IncrementViews bumps the view counter of an active item.
func (r *ItemRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	views, err := db.New(r.db.DB()).IncrementItemViews(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, catalogdomain.ErrItemNotFound
		}
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return int(views), nil
}

// Deactivate soft-deletes the item and publishes ItemDeactivatedEvent in one transaction.
func (r *ItemRepository) Deactivate(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		now := item.UpdatedAt
		n, err := db.New(tx).DeactivateItem(ctx, db.DeactivateItemParams{ID: item.ID, UpdatedAt: now})
		if err != nil {
			return fmt.Errorf("deactivate item: %w", err)
		}
		if n == 0 {
			return catalogdomain.ErrItemNotFound
		}

		event := domainevents.ItemDeactivatedEvent{
			EventID:    uuid.New(),
			Version:    eventVersion,
			ItemID:     item.ID,
			OwnerID:    item.OwnerID,
			OccurredAt: now,
		}
		return r.publish(ctx, tx, domainevents.TopicItemDeactivated, event.EventID, event)
	})
}

func (r *ItemRepository) publish(ctx context.Context, tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	if r.bus == nil {
		return nil
	}
	msg, err := events.NewMessage(eventID, eventVersion, event)
	if err != nil {
		return err
	}
	if err := r.bus.PublishInTx(ctx, tx, topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func filterParams(f models.ItemFilter) db.ItemFilterParams {
	return db.ItemFilterParams{
		CategorySlug: f.CategorySlug,
		Size:         string(f.Size),
		MinPrice:     f.MinPrice.Minor(),
		MaxPrice:     f.MaxPrice.Minor(),
		CityPattern:  containsPattern(f.City),
		TextPattern:  containsPattern(f.Search),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into an ILIKE substring pattern, or "" for no filter.
func containsPattern(s string) string {
	if s == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(s) + "%"
}

func rowsToItems(rows []db.ItemRow) []*models.Item {
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items
}

// rowToItem maps a db.ItemRow to a domain models.Item.
func rowToItem(row db.ItemRow) *models.Item {
	return &models.Item{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		CategoryID:      row.CategoryID,
		CategorySlug:    row.CategorySlug,
		CategoryName:    row.CategoryName,
		Title:           models.ItemTitle(row.Title),
		Description:     row.Description,
		Size:            models.Size(row.Size),
		PricePerDay:     money.Amount(row.PricePerDay),
		SecurityDeposit: money.Amount(row.SecurityDeposit),
		Condition:       row.Condition,
		City:            row.City,
		Status:          models.ItemStatus(row.Status),
		Rating:          row.Rating,
		ReviewsCount:    int(row.ReviewsCount),
		Views:           int(row.Views),
		Active:          row.Active,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
