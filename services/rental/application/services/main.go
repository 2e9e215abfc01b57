package services

import (
	"github.com/rentrobe/rentrobe/pkg/app"
	"github.com/rentrobe/rentrobe/services/rental/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Rentals *RentalService
	Reviews *ReviewService
}

// New wires the rental application services over the Postgres store. Events
// go through the shared bus's transactional outbox.
func New(a *app.Application) *Services {
	store := postgres.NewStore(a.Db, a.EventBus)
	return &Services{
		Rentals: NewRentalService(store, a.Logger, a.Metrics),
		Reviews: NewReviewService(store, a.Logger, a.Metrics),
	}
}
