package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/swapcell/swapcell/internal/tui/styles"
	"github.com/swapcell/swapcell/internal/tui/views"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Browse and resume saved wizard drafts",
	Long: `Open the drafts browser. Select a draft to resume its wizard
exactly where you stopped; press d to delete one.

'swapcell drafts list' prints the drafts without the interactive UI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, _, err := buildDeps()
		if err != nil {
			return err
		}
		return views.RunDraftsBrowser(deps)
	},
}

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print saved drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, _, err := buildDeps()
		if err != nil {
			return err
		}

		items, err := deps.Drafts.List()
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println(styles.Dim("No drafts saved."))
			return nil
		}

		fmt.Printf("  %s  %s  %s  %s\n",
			styles.TableHeader.Width(10).Render("FLOW"),
			styles.TableHeader.Width(38).Render("SUMMARY"),
			styles.TableHeader.Width(14).Render("UPDATED"),
			styles.TableHeader.Render("ID"),
		)
		for _, d := range items {
			fmt.Printf("  %-10s  %-38s  %-14s  %s\n",
				strings.ToUpper(string(d.Flow)),
				styles.TruncateWithEllipsis(d.Summary(), 38),
				d.UpdatedAt.Local().Format("Jan 2 15:04"),
				styles.Dim(d.ID),
			)
		}
		return nil
	},
}

func init() {
	draftsCmd.AddCommand(draftsListCmd)
	rootCmd.AddCommand(draftsCmd)
}
