package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/models"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/spoonacular"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RecipeSource is the recipe API used by RecipeService
type RecipeSource interface {
	FindByIngredients(ctx context.Context, ingredients []string, number int) ([]spoonacular.SearchHit, error)
	Information(ctx context.Context, id int64) (*spoonacular.Information, error)
}

// RecipeService merges recipe search hits with their per-recipe details
type RecipeService struct {
	source RecipeSource
	limit  int
	logger *slog.Logger
}

// MaxRecipes caps every search regardless of configuration
const MaxRecipes = 10

// NewRecipeService creates a recipe service returning at most limit recipes per search
func NewRecipeService(source RecipeSource, limit int, logger *slog.Logger) *RecipeService {
	if limit < 1 || limit > MaxRecipes {
		limit = MaxRecipes
	}
	return &RecipeService{
		source: source,
		limit:  limit,
		logger: logger,
	}
}

// FindRecipes returns recipes for the ingredients, or an empty list if anything fails
// Failures are logged; callers cannot tell "no matches" from "request failed"
func (s *RecipeService) FindRecipes(ctx context.Context, ingredients []string) []models.RecipeSummary {
	recipes, err := s.SearchRecipes(ctx, ingredients)
	if err != nil {
		s.logger.Error("error fetching recipes", "ingredients", ingredients, "error", err)
		return []models.RecipeSummary{}
	}
	return recipes
}

// SearchRecipes runs one search, then fetches every hit's details concurrently
// Results keep the search order. Any failure aborts the whole call, including a
// non-2xx detail response: no summary is built without its source URL
func (s *RecipeService) SearchRecipes(ctx context.Context, ingredients []string) ([]models.RecipeSummary, error) {
	ingredients = cleanIngredients(ingredients)
	if len(ingredients) == 0 {
		return []models.RecipeSummary{}, nil
	}

	searchID := uuid.NewString()
	log := s.logger.With("search_id", searchID)

	hits, err := s.source.FindByIngredients(ctx, ingredients, s.limit)
	if err != nil {
		return nil, err
	}
	if len(hits) > s.limit {
		hits = hits[:s.limit]
	}
	log.Debug("recipe search returned", "ingredients", ingredients, "hits", len(hits))

	recipes := make([]models.RecipeSummary, len(hits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, hit := range hits {
		i, hit := i, hit
		g.Go(func() error {
			info, err := s.source.Information(gctx, hit.ID)
			if err != nil {
				return err
			}
			recipes[i] = models.RecipeSummary{
				ID:        hit.ID,
				Title:     hit.Title,
				SourceURL: info.SourceURL,
				Image:     hit.Image,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch recipe details: %w", err)
	}

	log.Debug("recipe details merged", "recipes", len(recipes))
	return recipes, nil
}

// cleanIngredients trims names and drops blanks, keeping the caller's order
func cleanIngredients(ingredients []string) []string {
	cleaned := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		if ingredient = strings.TrimSpace(ingredient); ingredient != "" {
			cleaned = append(cleaned, ingredient)
		}
	}
	return cleaned
}
