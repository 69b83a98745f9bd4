package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sstent/atlog/internal/api"
)

// List command flags
var listFrom string
var listTo string
var listTypes string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the activity history",
	Long: `Lists activities with optional filters:
- Start date (--from) and end date (--to), YYYY-MM-DD
- Activity type codes (--types 1,2)
Running without flags lists the unfiltered full history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := newClient()
		if err != nil {
			return err
		}
		if _, err := restoreSession(cfg, client); err != nil {
			return err
		}

		codes, err := parseTypeCodes(listTypes)
		if err != nil {
			return err
		}

		activities, err := client.ListActivities(cmd.Context(), api.Filter{
			StartDate: listFrom,
			EndDate:   listTo,
			TypeCodes: codes,
		})
		if err != nil {
			return fmt.Errorf("failed to list activities: %w", err)
		}

		if len(activities) == 0 {
			fmt.Println("No activities found matching the criteria")
			return nil
		}
		printActivities(os.Stdout, client, activities)
		return nil
	},
}

// parseTypeCodes parses a comma list of type codes; "" selects nothing.
func parseTypeCodes(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var codes []int
	for _, part := range strings.Split(s, ",") {
		code, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid type code %q", part)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// formatActivity renders one history line: timestamp, flag glyph,
// place, type label, distance and a photo link when the record has one.
func formatActivity(client *api.Client, a api.Activity) string {
	line := fmt.Sprintf("%s | %s %s | %s (%d km)",
		a.RecordedAt, a.Country.Flag(), a.PlaceName, a.TypeLabel, a.DistanceKm)
	if a.PhotoURL != "" {
		line += " | foto: " + client.PhotoLink(a.PhotoURL)
	}
	return line
}

func printActivities(w io.Writer, client *api.Client, activities []api.Activity) {
	for _, a := range activities {
		fmt.Fprintln(w, formatActivity(client, a))
	}
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "Only activities on or after this date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "Only activities on or before this date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTypes, "types", "", "Comma-separated activity type codes")

	rootCmd.AddCommand(listCmd)
}
