package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/swapcell/swapcell/internal/tui/styles"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in with an email OTP",
	Long: `Request a one-time code for the given email, then enter it at
the prompt. The session token is stored locally; in mock mode the code
is always 123456.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]
		deps, _, err := buildDeps()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := deps.Auth.SendOTP(ctx, email); err != nil {
			return fmt.Errorf("sending OTP: %w", err)
		}
		fmt.Println("A one-time code was sent to " + styles.Value.Render(email))
		fmt.Print("Code: ")

		reader := bufio.NewReader(os.Stdin)
		code, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading code: %w", err)
		}

		user, err := deps.Auth.VerifyOTP(ctx, email, strings.TrimSpace(code))
		if err != nil {
			return fmt.Errorf("verifying OTP: %w", err)
		}

		fmt.Println(styles.Green("Signed in as") + " " + styles.Value.Render(user.Name) + " " + styles.Dim("("+user.Role+")"))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, _, err := buildDeps()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := deps.Auth.Logout(ctx); err != nil {
			return err
		}
		fmt.Println(styles.Green("Signed out."))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, _, err := buildDeps()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		user, err := deps.Auth.CurrentUser(ctx)
		if err != nil {
			return fmt.Errorf("not signed in (run 'swapcell login <email>')")
		}

		fmt.Println(styles.Label.Render("NAME ") + "  " + styles.Value.Render(user.Name))
		fmt.Println(styles.Label.Render("EMAIL") + "  " + styles.Value.Render(user.Email))
		fmt.Println(styles.Label.Render("ROLE ") + "  " + styles.Value.Render(user.Role))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
