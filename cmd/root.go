package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sstent/atlog/internal/api"
	"github.com/sstent/atlog/internal/config"
	"github.com/sstent/atlog/internal/logger"
	"github.com/sstent/atlog/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "atlog",
	Short: "atlog records outdoor activities against the atividades service",
	Long: `atlog is a CLI client for the atividades service that:
1. Registers users and logs in with Basic authentication
2. Records activities (location, type, distance, optional photo)
3. Lists and filters the activity history
4. Mirrors the history into a local SQLite database and downloads photos
5. Exports the history as CSV`,
}

var verbose bool

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newClient loads configuration and builds an API client with
// diagnostics on stderr.
func newClient() (*config.Config, *api.Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.SetupDefault(verbose)
	return cfg, api.NewClient(cfg, log), nil
}

// restoreSession loads the persisted credentials and attaches them to
// the client. The credentials are not validated here; the first
// authenticated call is the check.
func restoreSession(cfg *config.Config, client *api.Client) (*session.Session, error) {
	store := session.NewStore(cfg.SessionPath)
	sess, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if sess == nil {
		return nil, fmt.Errorf("not logged in: run 'atlog login' first")
	}
	client.SetCredentials(sess.Username, sess.Password)
	return sess, nil
}

// promptPassword reads a password from the terminal without echoing
// it. When stdin is not a terminal the line is read as-is, so piped
// passwords keep working.
func promptPassword() (string, error) {
	fmt.Print("Password: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}
	return readLine(os.Stdin)
}

// readLine reads one line, preserving inner spaces.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
