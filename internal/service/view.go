package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder selects how the inventory view is ordered
type SortOrder string

const (
	SortAlphabetical SortOrder = "alphabetical"
	SortQuantity     SortOrder = "quantity"
)

var ErrInvalidSort = errors.New("invalid sort order")

// ParseSortOrder parses a sort order name; an empty string means alphabetical
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortAlphabetical:
		return SortAlphabetical, nil
	case SortQuantity:
		return SortQuantity, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, s)
	}
}

// ViewOptions controls filtering and ordering of the inventory view
type ViewOptions struct {
	Sort    SortOrder
	Search  string
	LowOnly bool
}

// SortInventory sorts items in place and returns them
// Quantity order is ascending with names as the tie-break
func SortInventory(items []models.InventoryItem, order SortOrder) []models.InventoryItem {
	// Collators keep internal buffers, so each sort gets its own
	col := collate.New(language.English)

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if order == SortQuantity && a.Quantity != b.Quantity {
			return a.Quantity < b.Quantity
		}
		return col.CompareString(a.Name, b.Name) < 0
	})
	return items
}

// FilterInventory applies the low-stock and search filters
func FilterInventory(items []models.InventoryItem, opts ViewOptions, lowThreshold int) []models.InventoryItem {
	search := strings.ToLower(opts.Search)

	filtered := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if opts.LowOnly && item.Quantity > lowThreshold {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}
