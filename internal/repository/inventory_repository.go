package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/models"
)

var (
	ErrItemNotFound = errors.New("inventory item not found")
)

// InventoryRepository defines the interface for inventory data access
// Each call is a single round trip; callers get no transactional guarantees across calls
type InventoryRepository interface {
	Get(ctx context.Context, name string) (*models.InventoryItem, error)
	Save(ctx context.Context, item models.InventoryItem) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]models.InventoryItem, error)
}

// InMemoryInventoryRepository implements InventoryRepository with in-memory storage
type InMemoryInventoryRepository struct {
	mu    sync.RWMutex
	items map[string]int
}

// NewInMemoryInventoryRepository creates an in-memory repository seeded with the given items
func NewInMemoryInventoryRepository(seed ...models.InventoryItem) *InMemoryInventoryRepository {
	items := make(map[string]int, len(seed))
	for _, item := range seed {
		items[item.Name] = item.Quantity
	}

	return &InMemoryInventoryRepository{
		items: items,
	}
}

// Get returns an item by its name
func (r *InMemoryInventoryRepository) Get(ctx context.Context, name string) (*models.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quantity, exists := r.items[name]
	if !exists {
		return nil, ErrItemNotFound
	}
	return &models.InventoryItem{Name: name, Quantity: quantity}, nil
}

// Save creates or overwrites an item
func (r *InMemoryInventoryRepository) Save(ctx context.Context, item models.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.Name] = item.Quantity
	return nil
}

// Delete removes an item; deleting an absent item is not an error
func (r *InMemoryInventoryRepository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, name)
	return nil
}

// List returns all items in no particular order
func (r *InMemoryInventoryRepository) List(ctx context.Context) ([]models.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.InventoryItem, 0, len(r.items))
	for name, quantity := range r.items {
		items = append(items, models.InventoryItem{Name: name, Quantity: quantity})
	}
	return items, nil
}
