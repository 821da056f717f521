package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDeps are the handlers mounted by NewRouter
type RouterDeps struct {
	Health    *HealthHandler
	Inventory *InventoryHandler
	Recipes   *RecipeHandler
	Logger    *slog.Logger
}

// NewRouter wires middleware and routes
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", deps.Health.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", deps.Inventory.ListInventory)
			r.Get("/{name}", deps.Inventory.GetItem)
			r.Post("/{name}/add", deps.Inventory.AddItem)
			r.Post("/{name}/remove", deps.Inventory.RemoveItem)
		})

		r.Get("/recipes", deps.Recipes.FindRecipes)
	})

	return r
}
