package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rogerio-castellano/order-insights/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(RateLimitMiddleware)

	r.Post("/register", handlers.RegisterHandler)
	r.Post("/login", handlers.LoginHandler)

	r.Get("/insights/top-cities", handlers.TopCitiesHandler)
	r.Get("/insights/top-categories", handlers.TopCategoriesHandler)
	r.Get("/insights/summary", handlers.SummaryHandler)

	r.Get("/datasets", handlers.DatasetCountsHandler)

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware)
		pr.Post("/datasets/{name}/import", handlers.ImportDatasetHandler)
		pr.Get("/datasets/imports", handlers.ImportLogHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	return r
}
