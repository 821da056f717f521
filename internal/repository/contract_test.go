package repository

import (
	"context"
	"sort"
	"testing"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRepositoryContract exercises behaviour every backend must share
// repo must start empty
func runRepositoryContract(t *testing.T, repo InventoryRepository) {
	t.Helper()
	ctx := context.Background()

	t.Run("get absent item", func(t *testing.T) {
		_, err := repo.Get(ctx, "saffron")
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("save then get", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, models.InventoryItem{Name: "apple", Quantity: 5}))

		item, err := repo.Get(ctx, "apple")
		require.NoError(t, err)
		assert.Equal(t, "apple", item.Name)
		assert.Equal(t, 5, item.Quantity)
	})

	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, models.InventoryItem{Name: "apple", Quantity: 2}))

		item, err := repo.Get(ctx, "apple")
		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("keys are case sensitive", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, models.InventoryItem{Name: "Apple", Quantity: 7}))

		lower, err := repo.Get(ctx, "apple")
		require.NoError(t, err)
		assert.Equal(t, 2, lower.Quantity)

		require.NoError(t, repo.Delete(ctx, "Apple"))
	})

	t.Run("list returns every item", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, models.InventoryItem{Name: "banana", Quantity: 3}))

		items, err := repo.List(ctx)
		require.NoError(t, err)
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

		assert.Equal(t, []models.InventoryItem{
			{Name: "apple", Quantity: 2},
			{Name: "banana", Quantity: 3},
		}, items)
	})

	t.Run("delete removes item", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "apple"))

		_, err := repo.Get(ctx, "apple")
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("delete absent item is not an error", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, "apple"))
	})
}
