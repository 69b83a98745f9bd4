package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sstent/atlog/internal/db"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the activity history into the local database",
	Long: `Fetches the full history from the service and reconciles it with the
local SQLite mirror. The mirror drives 'atlog photos'; it is never an
answer source on its own.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := newClient()
		if err != nil {
			return err
		}
		if _, err := restoreSession(cfg, client); err != nil {
			return err
		}

		database, err := db.NewDatabase(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		inserted, err := db.SyncActivities(cmd.Context(), client, database)
		if err != nil {
			return fmt.Errorf("database sync failed: %w", err)
		}

		records, err := database.GetAll()
		if err != nil {
			return fmt.Errorf("failed to get activities: %w", err)
		}

		fmt.Printf("✅ Mirrored %d new activities (%d total)\n", inserted, len(records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
