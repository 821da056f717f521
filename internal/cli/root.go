package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the pantry command tree
func NewRootCommand(factory AppFactory) *cobra.Command {
	root := &cobra.Command{
		Use:   "pantry",
		Short: "Pantry inventory tracker with recipe suggestions",
		Long: `Tracks pantry item quantities in a document store and suggests
recipes for a set of ingredients using the Spoonacular API.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCommand(factory),
		newInventoryCommand(factory),
		newRecipesCommand(factory),
	)

	return root
}
