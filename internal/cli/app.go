// Package cli implements the pantry command line: the HTTP server and
// one-shot inventory and recipe commands sharing the same services.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/config"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/repository"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/service"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/spoonacular"
	"github.com/Lixing-Zhang/pantry-tracker/backend/pkg/logger"
)

// App holds the wired services used by every command
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Inventory *service.InventoryService
	Recipes   *service.RecipeService
	close     func() error
}

// Close releases the store connection
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// AppFactory builds the App for a command invocation
type AppFactory func(ctx context.Context) (*App, error)

// DefaultApp loads configuration from the environment and opens the configured store
func DefaultApp(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	repo, closeFn, err := repository.Open(ctx, cfg.Store, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory store: %w", err)
	}

	if cfg.Recipes.APIKey == "" {
		log.Warn("SPOONACULAR_API_KEY is not set; recipe searches will fail")
	}
	client := spoonacular.NewClient(cfg.Recipes.BaseURL, cfg.Recipes.APIKey, time.Duration(cfg.Recipes.Timeout)*time.Second)

	return NewApp(cfg, log, repo, client, closeFn), nil
}

// NewApp wires services around an already opened repository and recipe source
func NewApp(cfg *config.Config, log *slog.Logger, repo repository.InventoryRepository, source service.RecipeSource, closeFn func() error) *App {
	return &App{
		Config:    cfg,
		Logger:    log,
		Inventory: service.NewInventoryService(repo, cfg.View.LowStockThreshold, log),
		Recipes:   service.NewRecipeService(source, cfg.Recipes.ResultLimit, log),
		close:     closeFn,
	}
}
