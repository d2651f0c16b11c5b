// Package cmd wires the swapcell CLI: flag parsing, config loading,
// logger setup, and construction of the collaborators every command
// shares.
package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swapcell/swapcell/internal/auth"
	"github.com/swapcell/swapcell/internal/config"
	"github.com/swapcell/swapcell/internal/drafts"
	"github.com/swapcell/swapcell/internal/gateway"
	"github.com/swapcell/swapcell/internal/refdata"
	"github.com/swapcell/swapcell/internal/tui/models"
	"github.com/swapcell/swapcell/internal/upload"
)

var (
	cfgFile string
	envName string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "swapcell",
	Short: "Terminal client for the swapcell phone marketplace",
	Long: `swapcell: buy-back and resale, from the terminal

Sell a used phone through a guided flow, create retailer listings,
and browse the brand/model/variant catalog.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("swapcell v" + Version)
		fmt.Println("Run 'swapcell --help' for available commands")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/swapcell/config.json)")
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "override the active environment for this invocation")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
}

func initConfig() {
	path := cfgFile
	if path == "" {
		if p, err := config.NewPaths(); err == nil {
			path = p.ConfigFile
		} else {
			path = "config.json"
		}
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("json")
	viper.SetEnvPrefix("SWAPCELL")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()

	if _, err := config.Load(path); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return
	}
	if envName != "" {
		config.Get().ActiveEnv = envName
	}
}

// newLogger builds the zerolog logger shared by every command: file
// output at the configured level, console output added with --verbose.
func newLogger(paths *config.Paths) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg := config.Get(); cfg.Log.Level != "" {
		if l, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
			level = l
		}
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	var out zerolog.LevelWriter
	f, err := os.OpenFile(paths.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err == nil {
		out = zerolog.MultiLevelWriter(f)
	} else {
		out = zerolog.MultiLevelWriter(os.Stderr)
	}
	if verbose {
		console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen, NoColor: noColor}
		out = zerolog.MultiLevelWriter(out, console)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// buildDeps constructs the collaborator set used by the interactive
// commands. Everything is wired here, once, and injected downward.
func buildDeps() (models.Deps, *config.Paths, error) {
	paths, err := config.NewPaths()
	if err != nil {
		return models.Deps{}, nil, fmt.Errorf("resolving paths: %w", err)
	}
	if err := config.EnsureDirectories(paths); err != nil {
		return models.Deps{}, nil, err
	}

	cfg := config.Get()
	log := newLogger(paths)
	base := cfg.APIBaseURL()
	httpClient := &http.Client{Timeout: 15 * time.Second}

	var authGW auth.Gateway
	if cfg.Auth.Mode == "live" {
		authGW = auth.NewClient(base, httpClient, paths.TokenFile)
	} else {
		authGW = auth.NewSignedInMock("dev@swapcell.local")
	}

	deps := models.Deps{
		Refdata: refdata.NewClient(base, httpClient, log),
		Gateway: gateway.New(base, httpClient, authGW, log),
		Auth:    authGW,
		Upload:  upload.NewClient(base, httpClient),
		Drafts:  drafts.NewStore(paths.DraftsDir),
		Log:     log,
	}
	return deps, paths, nil
}
