package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type inventoryRecord struct {
	Name     string `gorm:"primaryKey;type:text"`
	Quantity int    `gorm:"not null"`
}

func (inventoryRecord) TableName() string {
	return "inventory"
}

// PostgresInventoryRepository stores items in a single SQL table through gorm
type PostgresInventoryRepository struct {
	db *gorm.DB
}

// NewPostgresInventoryRepository creates the inventory table if it does not exist
func NewPostgresInventoryRepository(db *gorm.DB) (*PostgresInventoryRepository, error) {
	if !db.Migrator().HasTable(&inventoryRecord{}) {
		if err := db.Migrator().CreateTable(&inventoryRecord{}); err != nil {
			return nil, fmt.Errorf("failed to create inventory table: %w", err)
		}
	}
	return &PostgresInventoryRepository{db: db}, nil
}

func (r *PostgresInventoryRepository) Get(ctx context.Context, name string) (*models.InventoryItem, error) {
	var rec inventoryRecord
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get %q: %w", name, err)
	}
	return &models.InventoryItem{Name: rec.Name, Quantity: rec.Quantity}, nil
}

func (r *PostgresInventoryRepository) Save(ctx context.Context, item models.InventoryItem) error {
	rec := inventoryRecord{Name: item.Name, Quantity: item.Quantity}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save %q: %w", item.Name, err)
	}
	return nil
}

func (r *PostgresInventoryRepository) Delete(ctx context.Context, name string) error {
	if err := r.db.WithContext(ctx).Where("name = ?", name).Delete(&inventoryRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	return nil
}

func (r *PostgresInventoryRepository) List(ctx context.Context) ([]models.InventoryItem, error) {
	var recs []inventoryRecord
	if err := r.db.WithContext(ctx).Order("name").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	items := make([]models.InventoryItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, models.InventoryItem{Name: rec.Name, Quantity: rec.Quantity})
	}
	return items, nil
}
