package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/models"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/service"
	"github.com/spf13/cobra"
)

type viewFlags struct {
	sort   string
	search string
	low    bool
	json   bool
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sort, "sort", "alphabetical", "sort order: alphabetical or quantity")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "only show items whose name contains this text")
	cmd.Flags().BoolVar(&f.low, "low", false, "only show low quantity items")
	cmd.Flags().BoolVar(&f.json, "json", false, "output as JSON")
}

func (f *viewFlags) options() (service.ViewOptions, error) {
	order, err := service.ParseSortOrder(f.sort)
	if err != nil {
		return service.ViewOptions{}, err
	}
	return service.ViewOptions{Sort: order, Search: f.search, LowOnly: f.low}, nil
}

func newInventoryCommand(factory AppFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "List and update pantry items",
	}

	cmd.AddCommand(
		newInventoryListCommand(factory),
		newInventoryMutateCommand(factory, "add", "Add to an item's quantity, creating it if absent",
			func(svc *service.InventoryService) mutateFunc { return svc.Add }),
		newInventoryMutateCommand(factory, "remove", "Remove from an item's quantity, deleting it at zero",
			func(svc *service.InventoryService) mutateFunc { return svc.Remove }),
	)

	return cmd
}

func newInventoryListCommand(factory AppFactory) *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			app, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			items, err := app.Inventory.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printInventory(cmd, items, flags.json)
		},
	}
	flags.register(cmd)

	return cmd
}

type mutateFunc func(ctx context.Context, name string, n int) (*models.InventoryChange, error)

func newInventoryMutateCommand(factory AppFactory, use, short string, pick func(*service.InventoryService) mutateFunc) *cobra.Command {
	var (
		flags    viewFlags
		quantity int
	)

	cmd := &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			app, err := factory(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			change, err := pick(app.Inventory)(cmd.Context(), args[0], quantity)
			if err != nil {
				return fmt.Errorf("%s %q: %w", use, args[0], err)
			}

			switch {
			case change.Deleted:
				cmd.Printf("Removed %s\n", change.Name)
			case change.Item != nil:
				cmd.Printf("%s: %d -> %d\n", change.Item.DisplayName(), change.Previous, change.Item.Quantity)
			}

			items, err := app.Inventory.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printInventory(cmd, items, flags.json)
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "n", 1, "amount to "+use)
	flags.register(cmd)

	return cmd
}

func printInventory(cmd *cobra.Command, items []models.InventoryItem, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal inventory: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(items) == 0 {
		cmd.Println("No items.")
		return nil
	}

	for _, item := range items {
		cmd.Printf("  %-24s Quantity: %d\n", item.DisplayName(), item.Quantity)
	}
	return nil
}
