package services

import (
	"github.com/rentrobe/rentrobe/pkg/app"
	"github.com/rentrobe/rentrobe/pkg/cache"
	"github.com/rentrobe/rentrobe/services/catalog/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Items      *ItemService
	Categories *CategoryService
}

// New wires all catalog application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	items := postgres.NewItemRepository(a.Db, a.EventBus)
	categories := postgres.NewCategoryRepository(a.Db)
	var itemCache ItemCache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis)
	}
	return &Services{
		Items:      NewItemService(items, categories, itemCache, a.Logger, a.Metrics, a.Config.PageSize),
		Categories: NewCategoryService(categories, a.Logger),
	}
}
