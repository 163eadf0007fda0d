package services

import (
	"context"

	"github.com/ghuser/grocerylists/pkg/app"
	"github.com/ghuser/grocerylists/services/grocery/infrastructure/persistence/jsonfile"
	"github.com/ghuser/grocerylists/services/grocery/infrastructure/persistence/memory"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Grocery *GroceryService
	// Store is exposed for the health endpoint.
	Store *jsonfile.Store
}

// New loads the collection from the configured data file and wires the
// grocery services around it.
func New(ctx context.Context, a *app.Application) *Services {
	store := jsonfile.NewStore(a.Config.DataFile, a.Logger)
	lists := memory.NewListRepository(store.Load(ctx))
	items := memory.NewItemRepository(lists)

	var publisher EventPublisher
	if a.EventBus != nil {
		publisher = a.EventBus
	}

	return &Services{
		Grocery: NewGroceryService(lists, items, store, publisher, a.Logger, a.Metrics),
		Store:   store,
	}
}
