package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sstent/atlog/internal/api"
	"github.com/sstent/atlog/internal/db"
)

var maxRetries int

// photosCmd represents the photos command
var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "Download missing activity photos",
	Long: `Downloads photos for mirrored activities that have one on the server
but no local copy yet. Run 'atlog sync' first to refresh the mirror.`,
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

		_, err = downloadPhotos(cmd.Context(), client, database, cfg.DownloadDir, maxRetries, os.Stdout)
		return err
	},
}

// downloadPhotos fetches every pending photo into dir with bounded
// exponential backoff retries, reporting progress to out. It returns
// the number of photos downloaded.
func downloadPhotos(ctx context.Context, client *api.Client, database *db.SQLiteDatabase, dir string, retries int, out io.Writer) (int, error) {
	if retries < 1 {
		return 0, fmt.Errorf("max retries must be at least 1, got %d", retries)
	}

	pending, err := database.GetPendingPhotos()
	if err != nil {
		return 0, fmt.Errorf("failed to get pending photos: %w", err)
	}

	total := len(pending)
	if total == 0 {
		fmt.Fprintln(out, "No photos to download")
		return 0, nil
	}

	fmt.Fprintf(out, "Found %d photos to download\n", total)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create download directory: %w", err)
	}

	successCount := 0
	for i, record := range pending {
		filename := filepath.Join(dir, path.Base(record.PhotoURL))
		fmt.Fprintf(out, "[%d/%d] Downloading photo for activity %d to %s\n", i+1, total, record.ID, filename)

		baseDelay := 2 * time.Second
		var lastErr error
		for attempt := 1; attempt <= retries; attempt++ {
			err := client.DownloadPhoto(ctx, record.PhotoURL, filename)
			if err == nil {
				if err := database.MarkPhotoDownloaded(record.ID, filename); err != nil {
					fmt.Fprintf(out, "⚠️ Failed to mark photo for activity %d as downloaded: %v\n", record.ID, err)
				} else {
					successCount++
					fmt.Fprintf(out, "✅ Successfully downloaded photo for activity %d\n", record.ID)
				}
				lastErr = nil
				break
			}

			lastErr = err
			fmt.Fprintf(out, "⚠️ Attempt %d/%d failed: %v\n", attempt, retries, err)
			if attempt < retries {
				retryDelay := time.Duration(attempt) * baseDelay
				fmt.Fprintf(out, "⏳ Retrying in %v...\n", retryDelay)
				time.Sleep(retryDelay)
			}
		}

		if lastErr != nil {
			fmt.Fprintf(out, "❌ Failed to download photo for activity %d after %d attempts: %v\n", record.ID, retries, lastErr)
		}
	}

	fmt.Fprintf(out, "\n📊 Download summary: %d/%d photos successfully downloaded\n", successCount, total)
	return successCount, nil
}

func init() {
	photosCmd.Flags().IntVar(&maxRetries, "max-retries", 3, "Maximum download retry attempts")

	rootCmd.AddCommand(photosCmd)
}
