package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/swapcell/swapcell/internal/config"
	"github.com/swapcell/swapcell/internal/doctor"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the local environment",
	Long: `Run the environment checks: config sanity, marketplace API
reachability, session state, and drafts storage.

Checks are grouped into categories:
  config    - config file exists, parses, names a valid environment
  network   - API health endpoint, brand catalog
  auth      - active session
  storage   - drafts directory writable, log file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, paths, err := buildDeps()
		if err != nil {
			return err
		}

		checker := doctor.NewChecker(doctor.Deps{
			Cfg:     config.Get(),
			Paths:   paths,
			Refdata: deps.Refdata,
			Auth:    deps.Auth,
			HTTP:    &http.Client{Timeout: 10 * time.Second},
			APIBase: config.Get().APIBaseURL(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		report := checker.RunAll(ctx)
		fmt.Println(doctor.FormatReport(report))

		if !report.Healthy {
			return fmt.Errorf("%d check(s) failed", report.Failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
