package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/models"
	"github.com/spf13/cobra"
)

func newRecipesCommand(factory AppFactory) *cobra.Command {
	var (
		asJSON bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "recipes <ingredient>...",
		Short: "Find recipes that use the given ingredients",
		Long: `Searches Spoonacular for up to 10 recipes using the given ingredients
and looks up each recipe's source link. Arguments may also be comma separated.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			var ingredients []string
			for _, arg := range args {
				ingredients = append(ingredients, strings.Split(arg, ",")...)
			}

			var recipes []models.RecipeSummary
			if strict {
				if recipes, err = app.Recipes.SearchRecipes(cmd.Context(), ingredients); err != nil {
					return fmt.Errorf("recipe search failed: %w", err)
				}
			} else {
				recipes = app.Recipes.FindRecipes(cmd.Context(), ingredients)
			}

			if asJSON {
				data, err := json.MarshalIndent(recipes, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal recipes: %w", err)
				}
				cmd.Println(string(data))
				return nil
			}

			if len(recipes) == 0 {
				cmd.Println("No recipes found.")
				return nil
			}

			for i, recipe := range recipes {
				cmd.Printf("  [%d] %s\n", i+1, recipe.Title)
				if recipe.SourceURL != "" {
					cmd.Printf("      %s\n", recipe.SourceURL)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail instead of printing an empty list when the API errors")

	return cmd
}
