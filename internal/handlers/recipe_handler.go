package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/models"
)

// recipeFinder is the subset of service.RecipeService used by the handler
type recipeFinder interface {
	FindRecipes(ctx context.Context, ingredients []string) []models.RecipeSummary
	SearchRecipes(ctx context.Context, ingredients []string) ([]models.RecipeSummary, error)
}

// RecipeHandler handles recipe search requests
type RecipeHandler struct {
	recipes recipeFinder
	logger  *slog.Logger
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipes recipeFinder, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		logger:  logger,
	}
}

// FindRecipes handles GET /api/recipes?ingredients=a,b[&strict=true]
// Without strict, upstream failures produce an empty list
func (h *RecipeHandler) FindRecipes(w http.ResponseWriter, r *http.Request) {
	ingredients := parseIngredients(r)

	strict, _ := strconv.ParseBool(r.URL.Query().Get("strict"))
	if !strict {
		WriteJSON(w, http.StatusOK, h.recipes.FindRecipes(r.Context(), ingredients), h.logger)
		return
	}

	recipes, err := h.recipes.SearchRecipes(r.Context(), ingredients)
	if err != nil {
		h.logger.Error("recipe search failed", "ingredients", ingredients, "error", err)
		WriteError(w, http.StatusBadGateway, "Recipe search failed", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, recipes, h.logger)
}

// parseIngredients accepts ingredients=a,b as well as repeated ingredients params
func parseIngredients(r *http.Request) []string {
	var ingredients []string
	for _, value := range r.URL.Query()["ingredients"] {
		ingredients = append(ingredients, strings.Split(value, ",")...)
	}
	return ingredients
}
