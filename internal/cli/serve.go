package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/handlers"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

func newServeCommand(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := factory(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			return serve(ctx, app)
		},
	}
}

// serve runs the API until ctx is cancelled, then shuts down gracefully
func serve(ctx context.Context, app *App) error {
	cfg := app.Config
	log := app.Logger

	log.Info("starting pantry api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"store", cfg.Store.Backend,
		"log_level", cfg.LogLevel,
	)

	router := handlers.NewRouter(handlers.RouterDeps{
		Health:    handlers.NewHealthHandler(cfg.Store.Backend, log),
		Inventory: handlers.NewInventoryHandler(app.Inventory, validator.New(), log),
		Recipes:   handlers.NewRecipeHandler(app.Recipes, log),
		Logger:    log,
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed to start", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}
