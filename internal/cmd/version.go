package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/swapcell/swapcell/internal/config"
	"github.com/swapcell/swapcell/internal/tui/styles"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the build version, git commit, build date, Go runtime details, and the active API environment.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Get()
		fmt.Println(styles.Logo())
		fmt.Println()
		fmt.Println(styles.Label.Render("VERSION") + "   " + styles.Value.Render(Version))
		fmt.Println(styles.Label.Render("COMMIT") + "    " + styles.Value.Render(GitCommit))
		fmt.Println(styles.Label.Render("BUILT") + "     " + styles.Value.Render(BuildDate))
		fmt.Println(styles.Label.Render("GO") + "        " + styles.Value.Render(runtime.Version()))
		fmt.Println(styles.Label.Render("OS/ARCH") + "   " + styles.Value.Render(runtime.GOOS+"/"+runtime.GOARCH))
		fmt.Println(styles.Label.Render("ENV") + "       " + styles.Value.Render(cfg.ActiveEnv))
		fmt.Println(styles.Label.Render("API") + "       " + styles.Value.Render(cfg.APIBaseURL()))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
