package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// typesCmd represents the types command
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the valid activity types",
	Long:  `Fetches the server-owned activity type codes used by 'add' and 'list --types'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := newClient()
		if err != nil {
			return err
		}

		types, err := client.ActivityTypes(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load activity types: %w", err)
		}

		for _, t := range types {
			fmt.Printf("%d\t%s\n", t.Code, t.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
