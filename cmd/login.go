package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sstent/atlog/internal/api"
	"github.com/sstent/atlog/internal/config"
	"github.com/sstent/atlog/internal/session"
)

var loginPassword string

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login NAME",
	Short: "Log in and persist the session",
	Long: `Checks the credentials by probing the activity listing. On success the
credentials are persisted so later commands run without logging in again.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := newClient()
		if err != nil {
			return err
		}

		password := loginPassword
		if password == "" {
			password, err = promptPassword()
			if err != nil {
				return err
			}
		}

		return doLogin(cmd.Context(), cfg, client, args[0], password, os.Stdout)
	},
}

// doLogin probes the credentials against the listing endpoint. A 401
// leaves the session unset and persists nothing; success persists the
// credentials and runs the initial loads, one reference data fetch and
// one listing.
func doLogin(ctx context.Context, cfg *config.Config, client *api.Client, username, password string, out io.Writer) error {
	client.SetCredentials(username, password)

	// The listing endpoint doubles as the authentication probe.
	if _, err := client.ListActivities(ctx, api.Filter{}); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			fmt.Fprintln(out, "Usuário ou senha incorretos")
			return nil
		}
		return fmt.Errorf("login failed: %w", err)
	}

	store := session.NewStore(cfg.SessionPath)
	sess := &session.Session{
		Username: username,
		Password: password,
		Country:  api.CountryPT,
	}
	if err := store.Save(sess); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	fmt.Fprintf(out, "✅ Logged in as %s\n", username)

	types, err := client.ActivityTypes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load activity types: %w", err)
	}
	fmt.Fprintf(out, "%d activity types available\n", len(types))

	activities, err := client.ListActivities(ctx, api.Filter{})
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}
	printActivities(out, client, activities)
	return nil
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted if omitted)")

	rootCmd.AddCommand(loginCmd)
}
