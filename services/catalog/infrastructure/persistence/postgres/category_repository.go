package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rentrobe/rentrobe/pkg/database"
	catalogdomain "github.com/rentrobe/rentrobe/services/catalog/domain"
	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
	"github.com/rentrobe/rentrobe/services/catalog/domain/repositories"
	"github.com/rentrobe/rentrobe/services/catalog/infrastructure/persistence/postgres/db"
)

// CategoryRepository implements repositories.CategoryRepository against PostgreSQL.
type CategoryRepository struct {
	db *database.Database
}

var _ repositories.CategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepository(database *database.Database) *CategoryRepository {
	return &CategoryRepository{db: database}
}

func (r *CategoryRepository) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row, err := db.New(r.db.DB()).GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdomain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("query category: %w", err)
	}
	return rowToCategory(row, 0), nil
}

func (r *CategoryRepository) ListActive(ctx context.Context) ([]*models.Category, error) {
	rows, err := db.New(r.db.DB()).ListActiveCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	categories := make([]*models.Category, len(rows))
	for i, row := range rows {
		categories[i] = rowToCategory(row.CatalogCategory, int(row.ItemCount))
	}
	return categories, nil
}

func (r *CategoryRepository) Deactivate(ctx context.Context, slug string) error {
	n, err := db.New(r.db.DB()).DeactivateCategory(ctx, slug)
	if err != nil {
		return fmt.Errorf("deactivate category: %w", err)
	}
	if n == 0 {
		return catalogdomain.ErrCategoryNotFound
	}
	return nil
}

func rowToCategory(row db.CatalogCategory, itemCount int) *models.Category {
	return &models.Category{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		Active:      row.Active,
		ItemCount:   itemCount,
		CreatedAt:   row.CreatedAt,
	}
}
