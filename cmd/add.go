package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sstent/atlog/internal/api"
)

// Add command flags
var addPlace string
var addType int
var addKm int
var addPhoto string
var addCountry string

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new activity",
	Long: `Submits a new activity to the service. The country selection defaults to
PT and always returns to PT after a submission, whatever the outcome.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := newClient()
		if err != nil {
			return err
		}
		sess, err := restoreSession(cfg, client)
		if err != nil {
			return err
		}

		country := api.Country(addCountry)
		if !country.Valid() {
			return fmt.Errorf("invalid country %q: must be PT or ES", addCountry)
		}
		sess.Country = country

		ctx := cmd.Context()
		msg, err := client.SubmitActivity(ctx, api.Submission{
			Country:    sess.Country,
			PlaceName:  addPlace,
			TypeCode:   addType,
			DistanceKm: addKm,
			PhotoPath:  addPhoto,
		})
		if err != nil {
			fmt.Printf("⚠️ Submission failed: %v\n", err)
		} else {
			fmt.Println(msg)
		}

		// The country selection is per-invocation and starts back at PT
		// on the next run. The listing refreshes regardless of how the
		// submission went.
		activities, err := client.ListActivities(ctx, api.Filter{})
		if err != nil {
			return fmt.Errorf("failed to refresh activities: %w", err)
		}
		printActivities(os.Stdout, client, activities)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addPlace, "place", "", "Name of the place")
	addCmd.Flags().IntVar(&addType, "type", 0, "Activity type code (see 'atlog types')")
	addCmd.Flags().IntVar(&addKm, "km", 0, "Distance in kilometres")
	addCmd.Flags().StringVar(&addPhoto, "photo", "", "Path of a photo to attach")
	addCmd.Flags().StringVar(&addCountry, "country", "PT", "Country code (PT or ES)")
	addCmd.MarkFlagRequired("place")
	addCmd.MarkFlagRequired("type")
	addCmd.MarkFlagRequired("km")

	rootCmd.AddCommand(addCmd)
}
