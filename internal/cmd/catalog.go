package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/swapcell/swapcell/internal/refdata"
	"github.com/swapcell/swapcell/internal/tui/styles"
	"github.com/swapcell/swapcell/internal/tui/views"
)

var (
	catalogModelBrand string
	catalogModelName  string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the brand/model/variant catalog",
	Long: `Open the interactive catalog browser: drill from brands into
models and variants.

Subcommands manage catalog models (admin):
  model add      Add a model under a brand
  model update   Rename an existing model
  model remove   Delete a model`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, _, err := buildDeps()
		if err != nil {
			return err
		}
		return views.RunCatalogBrowser(deps)
	},
}

var catalogModelCmd = &cobra.Command{
	Use:   "model",
	Short: "Manage catalog models (admin)",
}

var catalogModelAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a model under a brand",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if catalogModelBrand == "" {
			return fmt.Errorf("--brand is required")
		}
		deps, _, err := buildDeps()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		created, err := deps.Refdata.CreateModel(ctx, refdata.Model{
			BrandID: catalogModelBrand,
			Name:    args[0],
		})
		if err != nil {
			return err
		}

		fmt.Println(styles.Green("Model added") + "  " + styles.Value.Render(created.Name) + "  " + styles.Dim(created.ID))
		return nil
	},
}

var catalogModelUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename an existing model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if catalogModelName == "" {
			return fmt.Errorf("--name is required")
		}
		deps, _, err := buildDeps()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		updated, err := deps.Refdata.UpdateModel(ctx, refdata.Model{
			ID:      args[0],
			BrandID: catalogModelBrand,
			Name:    catalogModelName,
		})
		if err != nil {
			return err
		}

		fmt.Println(styles.Green("Model updated") + "  " + styles.Value.Render(updated.Name))
		return nil
	},
}

var catalogModelRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, _, err := buildDeps()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := deps.Refdata.DeleteModel(ctx, args[0]); err != nil {
			return err
		}

		fmt.Println(styles.Green("Model removed") + "  " + styles.Dim(args[0]))
		return nil
	},
}

func init() {
	catalogModelAddCmd.Flags().StringVar(&catalogModelBrand, "brand", "", "brand id the model belongs to")
	catalogModelUpdateCmd.Flags().StringVar(&catalogModelBrand, "brand", "", "brand id the model belongs to")
	catalogModelUpdateCmd.Flags().StringVar(&catalogModelName, "name", "", "new model name")

	catalogModelCmd.AddCommand(catalogModelAddCmd)
	catalogModelCmd.AddCommand(catalogModelUpdateCmd)
	catalogModelCmd.AddCommand(catalogModelRemoveCmd)
	catalogCmd.AddCommand(catalogModelCmd)
	rootCmd.AddCommand(catalogCmd)
}
