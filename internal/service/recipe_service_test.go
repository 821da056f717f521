package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/models"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/spoonacular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRecipeSource serves canned search hits and details
type fakeRecipeSource struct {
	hits        []spoonacular.SearchHit
	searchErr   error
	detailErrs  map[int64]error
	detailDelay map[int64]time.Duration

	mu            sync.Mutex
	searchCalls   int
	gotNumber     int
	gotIngredient []string
	detailCalls   atomic.Int32
	inFlight      atomic.Int32
	maxInFlight   atomic.Int32
}

func (f *fakeRecipeSource) FindByIngredients(ctx context.Context, ingredients []string, number int) ([]spoonacular.SearchHit, error) {
	f.mu.Lock()
	f.searchCalls++
	f.gotNumber = number
	f.gotIngredient = ingredients
	f.mu.Unlock()

	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.hits, nil
}

func (f *fakeRecipeSource) Information(ctx context.Context, id int64) (*spoonacular.Information, error) {
	f.detailCalls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.maxInFlight.Load()
		if n <= peak || f.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}

	if d := f.detailDelay[id]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.detailErrs[id]; err != nil {
		return nil, err
	}
	return &spoonacular.Information{ID: id, SourceURL: fmt.Sprintf("https://recipes.example/%d", id)}, nil
}

func makeHits(n int) []spoonacular.SearchHit {
	hits := make([]spoonacular.SearchHit, n)
	for i := range hits {
		id := int64(i + 1)
		hits[i] = spoonacular.SearchHit{
			ID:    id,
			Title: fmt.Sprintf("Recipe %d", id),
			Image: fmt.Sprintf("https://img.example/%d.jpg", id),
		}
	}
	return hits
}

func TestRecipeService_SearchRecipes_MergesInSearchOrder(t *testing.T) {
	source := &fakeRecipeSource{
		hits: makeHits(3),
		// The first hit finishes last; order must still follow the search
		detailDelay: map[int64]time.Duration{1: 30 * time.Millisecond},
	}
	svc := NewRecipeService(source, 10, discardLogger())

	recipes, err := svc.SearchRecipes(context.Background(), []string{"apple", "flour"})
	require.NoError(t, err)

	assert.Equal(t, []models.RecipeSummary{
		{ID: 1, Title: "Recipe 1", SourceURL: "https://recipes.example/1", Image: "https://img.example/1.jpg"},
		{ID: 2, Title: "Recipe 2", SourceURL: "https://recipes.example/2", Image: "https://img.example/2.jpg"},
		{ID: 3, Title: "Recipe 3", SourceURL: "https://recipes.example/3", Image: "https://img.example/3.jpg"},
	}, recipes)
	assert.Equal(t, 10, source.gotNumber)
	assert.Equal(t, []string{"apple", "flour"}, source.gotIngredient)
}

func TestRecipeService_SearchRecipes_CapsResults(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25} {
		t.Run(fmt.Sprintf("%d hits", n), func(t *testing.T) {
			source := &fakeRecipeSource{hits: makeHits(n)}
			svc := NewRecipeService(source, 10, discardLogger())

			recipes, err := svc.SearchRecipes(context.Background(), []string{"rice"})
			require.NoError(t, err)
			assert.LessOrEqual(t, len(recipes), 10)
			assert.Equal(t, min(n, 10), len(recipes))
			assert.Equal(t, int32(min(n, 10)), source.detailCalls.Load())
		})
	}
}

func TestRecipeService_SearchRecipes_FetchesDetailsConcurrently(t *testing.T) {
	delays := make(map[int64]time.Duration)
	for i := int64(1); i <= 5; i++ {
		delays[i] = 20 * time.Millisecond
	}
	source := &fakeRecipeSource{hits: makeHits(5), detailDelay: delays}
	svc := NewRecipeService(source, 10, discardLogger())

	_, err := svc.SearchRecipes(context.Background(), []string{"egg"})
	require.NoError(t, err)
	assert.Greater(t, source.maxInFlight.Load(), int32(1))
}

func TestRecipeService_SearchRecipes_EmptyInput(t *testing.T) {
	source := &fakeRecipeSource{hits: makeHits(3)}
	svc := NewRecipeService(source, 10, discardLogger())

	for _, input := range [][]string{nil, {}, {"", "  "}} {
		recipes, err := svc.SearchRecipes(context.Background(), input)
		require.NoError(t, err)
		assert.NotNil(t, recipes)
		assert.Empty(t, recipes)
	}
	assert.Equal(t, 0, source.searchCalls, "blank input must not reach the API")
}

func TestRecipeService_SearchRecipes_TrimsIngredients(t *testing.T) {
	source := &fakeRecipeSource{}
	svc := NewRecipeService(source, 10, discardLogger())

	_, err := svc.SearchRecipes(context.Background(), []string{" tomato ", "", "basil"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tomato", "basil"}, source.gotIngredient)
}

func TestRecipeService_SearchRecipes_Errors(t *testing.T) {
	searchErr := errors.New("search down")
	detailErr := errors.New("detail down")

	tests := []struct {
		name    string
		source  *fakeRecipeSource
		wantErr error
	}{
		{
			name:    "search fails",
			source:  &fakeRecipeSource{searchErr: searchErr},
			wantErr: searchErr,
		},
		{
			name: "one detail fails",
			source: &fakeRecipeSource{
				hits:        makeHits(4),
				detailErrs:  map[int64]error{3: detailErr},
				detailDelay: map[int64]time.Duration{1: time.Second, 2: time.Second, 4: time.Second},
			},
			wantErr: detailErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRecipeService(tt.source, 10, discardLogger())

			start := time.Now()
			recipes, err := svc.SearchRecipes(context.Background(), []string{"apple"})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, recipes, "no partial results")
			assert.Less(t, time.Since(start), 500*time.Millisecond, "siblings are cancelled")
		})
	}
}

func TestRecipeService_FindRecipes_FailsClosed(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	tests := []struct {
		name   string
		source *fakeRecipeSource
	}{
		{name: "search fails", source: &fakeRecipeSource{searchErr: errors.New("boom")}},
		{
			name: "detail fails",
			source: &fakeRecipeSource{
				hits:       makeHits(2),
				detailErrs: map[int64]error{2: errors.New("bad json")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			svc := NewRecipeService(tt.source, 10, log)

			recipes := svc.FindRecipes(context.Background(), []string{"apple"})
			assert.NotNil(t, recipes)
			assert.Empty(t, recipes)
			assert.Contains(t, buf.String(), "error fetching recipes")
		})
	}
}

func TestRecipeService_FindRecipes_Success(t *testing.T) {
	source := &fakeRecipeSource{hits: makeHits(2)}
	svc := NewRecipeService(source, 10, discardLogger())

	recipes := svc.FindRecipes(context.Background(), []string{"apple"})
	assert.Len(t, recipes, 2)
}

func TestNewRecipeService_ClampsLimit(t *testing.T) {
	for _, limit := range []int{-1, 0, 50} {
		source := &fakeRecipeSource{hits: makeHits(20)}
		svc := NewRecipeService(source, limit, discardLogger())

		recipes, err := svc.SearchRecipes(context.Background(), []string{"corn"})
		require.NoError(t, err)
		assert.Len(t, recipes, MaxRecipes)
		assert.Equal(t, MaxRecipes, source.gotNumber)
	}
}
