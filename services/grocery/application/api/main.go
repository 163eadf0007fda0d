package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/grocerylists/pkg/app"
	"github.com/ghuser/grocerylists/pkg/errhttp"
	"github.com/ghuser/grocerylists/services/grocery/application/handlers"
	appsvcs "github.com/ghuser/grocerylists/services/grocery/application/services"
)

// GroceryRoutes registers grocery list endpoints on the provided chi router.
func GroceryRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	errs := errhttp.NewWriter(a.Config.IsProduction())
	r.Group(func(r chi.Router) {
		r.Route("/grocery-lists", func(r chi.Router) {
			r.Get("/", handlers.NewGetListsHandler(svcs, errs).Execute)
			r.Post("/", handlers.NewPostListHandler(svcs, errs).Execute)
			r.Route("/{list_id}", func(r chi.Router) {
				r.Get("/", handlers.NewGetListHandler(svcs, errs).Execute)
				r.Delete("/", handlers.NewDeleteListHandler(svcs, errs).Execute)
				r.Post("/items", handlers.NewPostItemHandler(svcs, errs).Execute)
				r.Put("/items/{item_id}", handlers.NewPutItemHandler(svcs, errs).Execute)
				r.Delete("/items/{item_id}", handlers.NewDeleteItemHandler(svcs, errs).Execute)
			})
		})
	})
}
