package cmd

import (
	"github.com/spf13/cobra"

	"github.com/swapcell/swapcell/internal/tui/views"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Retailer listing management",
	Long: `Create and manage marketplace listings.

Subcommands:
  new   Launch the listing wizard`,
}

var productNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a listing through the guided flow",
	Long: `Launch the interactive listing wizard.

Phone categories walk the brand, model and variant cascade so specs
arrive pre-filled; other categories collect specs and pricing by hand.
Press ctrl+s at any step to save a draft.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, _, err := buildDeps()
		if err != nil {
			return err
		}
		return views.RunProductWizard(deps)
	},
}

func init() {
	productCmd.AddCommand(productNewCmd)
	rootCmd.AddCommand(productCmd)
}
