package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/models"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/repository"
)

// maxNameBytes is the Firestore document ID limit
const maxNameBytes = 1500

var (
	ErrInvalidName     = errors.New("invalid item name")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidDelta    = errors.New("delta must not be zero")
)

// InventoryService applies quantity changes to stored items and builds the sorted view
// Read-modify-write is not transactional: concurrent callers race and the last write wins
type InventoryService struct {
	repo         repository.InventoryRepository
	lowThreshold int
	logger       *slog.Logger
}

// NewInventoryService creates an inventory service
// Items at or below lowThreshold are shown by the low-stock filter
func NewInventoryService(repo repository.InventoryRepository, lowThreshold int, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		repo:         repo,
		lowThreshold: lowThreshold,
		logger:       logger,
	}
}

// NormalizeName trims the name and checks it can be used as a storage key
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", fmt.Errorf("%w: name is required", ErrInvalidName)
	case !utf8.ValidString(name):
		return "", fmt.Errorf("%w: name must be valid UTF-8", ErrInvalidName)
	case name == "." || name == "..":
		return "", fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	case strings.Contains(name, "/"):
		return "", fmt.Errorf("%w: name must not contain '/'", ErrInvalidName)
	case len(name) > maxNameBytes:
		return "", fmt.Errorf("%w: name exceeds %d bytes", ErrInvalidName, maxNameBytes)
	case len(name) >= 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__"):
		return "", fmt.Errorf("%w: names matching __.*__ are reserved", ErrInvalidName)
	}
	return name, nil
}

// Add increments an item by n, creating it when absent
func (s *InventoryService) Add(ctx context.Context, name string, n int) (*models.InventoryChange, error) {
	if n < 1 {
		return nil, ErrInvalidQuantity
	}
	return s.Apply(ctx, name, n)
}

// Remove decrements an item by n, deleting it when the quantity reaches zero
func (s *InventoryService) Remove(ctx context.Context, name string, n int) (*models.InventoryChange, error) {
	if n < 1 {
		return nil, ErrInvalidQuantity
	}
	return s.Apply(ctx, name, -n)
}

// Apply adds a signed delta to the stored quantity of name
// A positive delta on an absent item creates it with quantity delta.
// A result of zero or below deletes the item. A negative delta on an
// absent item returns repository.ErrItemNotFound
func (s *InventoryService) Apply(ctx context.Context, name string, delta int) (*models.InventoryChange, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	if delta == 0 {
		return nil, ErrInvalidDelta
	}

	change := &models.InventoryChange{Name: name, Delta: delta}

	current, err := s.repo.Get(ctx, name)
	switch {
	case errors.Is(err, repository.ErrItemNotFound):
		if delta < 0 {
			return nil, err
		}
		change.Created = true
	case err != nil:
		return nil, fmt.Errorf("failed to read %q: %w", name, err)
	default:
		change.Previous = current.Quantity
	}

	if delta > 0 && change.Previous > math.MaxInt-delta {
		return nil, fmt.Errorf("%w: %q would exceed the maximum quantity", ErrInvalidQuantity, name)
	}

	quantity := change.Previous + delta
	if quantity <= 0 {
		if err := s.repo.Delete(ctx, name); err != nil {
			return nil, fmt.Errorf("failed to delete %q: %w", name, err)
		}
		change.Deleted = true
		s.logger.Info("inventory item removed", "name", name, "previous", change.Previous)
		return change, nil
	}

	item := models.InventoryItem{Name: name, Quantity: quantity}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save %q: %w", name, err)
	}
	change.Item = &item

	s.logger.Info("inventory item updated",
		"name", name,
		"previous", change.Previous,
		"quantity", quantity,
		"created", change.Created,
	)
	return change, nil
}

// Get returns a single item
func (s *InventoryService) Get(ctx context.Context, name string) (*models.InventoryItem, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, name)
}

// List re-reads the whole collection and returns the filtered, sorted view
func (s *InventoryService) List(ctx context.Context, opts ViewOptions) ([]models.InventoryItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	order := opts.Sort
	if order == "" {
		order = SortAlphabetical
	}

	return SortInventory(FilterInventory(items, opts, s.lowThreshold), order), nil
}
