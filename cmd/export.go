package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the activity history as CSV",
	Long:  `Downloads the server-generated CSV export as an opaque pass-through.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := newClient()
		if err != nil {
			return err
		}
		if _, err := restoreSession(cfg, client); err != nil {
			return err
		}

		file, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer file.Close()

		n, err := client.ExportCSV(cmd.Context(), file)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Printf("✅ Exported %d bytes to %s\n", n, exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "atividades.csv", "Output file")

	rootCmd.AddCommand(exportCmd)
}
