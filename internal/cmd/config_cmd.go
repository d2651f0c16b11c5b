package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/swapcell/swapcell/internal/config"
	"github.com/swapcell/swapcell/internal/tui/styles"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `View and manage the swapcell configuration.

When run without subcommands, displays the current configuration.

Subcommands:
  init   Write the default config file
  use    Switch the active environment`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		fmt.Println(styles.Title.Render("Configuration"))
		fmt.Println()
		fmt.Println(styles.Label.Render("NAME   ") + "  " + styles.Value.Render(cfg.Name))
		fmt.Println(styles.Label.Render("VERSION") + "  " + styles.Value.Render(cfg.Version))
		fmt.Println(styles.Label.Render("ENV    ") + "  " + styles.Value.Render(cfg.ActiveEnv))
		fmt.Println(styles.Label.Render("AUTH   ") + "  " + styles.Value.Render(cfg.Auth.Mode))
		fmt.Println(styles.Label.Render("FILE   ") + "  " + styles.Value.Render(config.Path()))
		fmt.Println()

		if errs := config.Validate(cfg); len(errs) > 0 {
			for _, e := range errs {
				fmt.Println("  " + styles.Red("✗ ") + e.Error())
			}
			fmt.Println()
		}

		fmt.Println(styles.Subtitle.Render("Environments"))
		names := make([]string, 0, len(cfg.Envs))
		for name := range cfg.Envs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			env := cfg.Envs[name]
			active := ""
			if name == cfg.ActiveEnv {
				active = " " + styles.Mint("(active)")
			}
			fmt.Printf("  %s%s  %s  %s\n",
				styles.Bold(name), active,
				styles.Dim(env.DisplayName),
				styles.Dim(env.APIBaseURL),
			)
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(config.Default()); err != nil {
			return err
		}
		fmt.Println(styles.Green("Wrote") + " " + styles.Value.Render(config.Path()))
		return nil
	},
}

var configUseCmd = &cobra.Command{
	Use:   "use <environment>",
	Short: "Switch the active environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cfg := config.Get()

		if _, ok := cfg.Envs[name]; !ok {
			return fmt.Errorf("unknown environment %q (see 'swapcell config')", name)
		}

		cfg.ActiveEnv = name
		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Println(styles.Green("Switched active environment to") + " " + styles.Value.Render(name))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configUseCmd)
	rootCmd.AddCommand(configCmd)
}
