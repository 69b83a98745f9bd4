package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sstent/atlog/internal/config"
	"github.com/sstent/atlog/internal/session"
)

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the persisted session",
	Long:  `Removes the locally stored credentials. No server call is made.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := session.NewStore(cfg.SessionPath).Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
