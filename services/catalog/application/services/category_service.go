package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rentrobe/rentrobe/pkg/logger"
	"github.com/rentrobe/rentrobe/services/catalog/domain/models"
	"github.com/rentrobe/rentrobe/services/catalog/domain/repositories"
)

// CategoryService lists and retires categories.
type CategoryService struct {
	categories repositories.CategoryRepository
	log        logger.Logger
}

func NewCategoryService(categories repositories.CategoryRepository, log logger.Logger) *CategoryService {
	return &CategoryService{categories: categories, log: log}
}

// ListCategories returns active categories with their active item counts.
func (s *CategoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// DeactivateCategory hides a category from browsing and from new listings.
// Items already in it stay listed.
func (s *CategoryService) DeactivateCategory(ctx context.Context, slug string) error {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if err := s.categories.Deactivate(ctx, slug); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "category deactivated", "slug", slug)
	return nil
}
