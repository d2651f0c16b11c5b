package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/swapcell/swapcell/internal/config"
	"github.com/swapcell/swapcell/internal/mockapi"
)

var mockAddr string

var mockapiCmd = &cobra.Command{
	Use:   "mockapi",
	Short: "Run the local mock marketplace API",
	Long: `Start an in-memory marketplace backend on localhost: the full
catalog, lead and product endpoints, uploads, and OTP auth.

The default config's "local" environment points at this server, so
'swapcell mockapi' in one terminal and 'swapcell sell' in another gives
a complete offline workflow. State resets on restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := config.NewPaths()
		if err != nil {
			return err
		}
		log := newLogger(paths)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := mockapi.New(log)
		return srv.ListenAndServe(ctx, mockAddr)
	},
}

func init() {
	mockapiCmd.Flags().StringVar(&mockAddr, "addr", ":8817", "listen address")
	rootCmd.AddCommand(mockapiCmd)
}
