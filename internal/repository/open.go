package repository

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/config"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open builds the repository selected by cfg.Backend
// The returned close function releases the backend's connections
func Open(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (InventoryRepository, func() error, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		log.Warn("using in-memory inventory store; data is lost on restart")
		return NewInMemoryInventoryRepository(), func() error { return nil }, nil

	case config.BackendFirestore:
		var opts []option.ClientOption
		if cfg.FirestoreCredentials != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.FirestoreCredentials))
		}
		client, err := firestore.NewClient(ctx, cfg.FirestoreProjectID, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		log.Info("connected to firestore",
			"project_id", cfg.FirestoreProjectID,
			"collection", cfg.Collection,
		)
		return NewFirestoreInventoryRepository(client, cfg.Collection), client.Close, nil

	case config.BackendPostgres:
		db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get postgres handle: %w", err)
		}
		repo, err := NewPostgresInventoryRepository(db)
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		log.Info("connected to postgres")
		return repo, sqlDB.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
