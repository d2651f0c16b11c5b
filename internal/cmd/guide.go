package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed guide.md
var guideMarkdown string

var guideWidth int

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Read the swapcell workflow guide",
	Long:  `Render the built-in guide covering the sell flow, listings, drafts, and environments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(guideWidth),
		)
		if err != nil {
			fmt.Print(guideMarkdown)
			return nil
		}
		out, err := r.Render(guideMarkdown)
		if err != nil {
			fmt.Print(guideMarkdown)
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	guideCmd.Flags().IntVar(&guideWidth, "width", 80, "wrap width for rendered output")
	rootCmd.AddCommand(guideCmd)
}
