package cmd

import (
	"github.com/spf13/cobra"

	"github.com/swapcell/swapcell/internal/tui/views"
)

var sellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Sell your phone through the guided flow",
	Long: `Launch the interactive sell flow.

Three steps: pick your phone's brand, describe its condition, and leave
your contact details. On submit the request goes to the marketplace,
which may assign a nearby retailer immediately.

Press ctrl+s at any step to save a draft; resume it later with
'swapcell drafts'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, _, err := buildDeps()
		if err != nil {
			return err
		}
		return views.RunSellWizard(deps)
	},
}

func init() {
	rootCmd.AddCommand(sellCmd)
}
