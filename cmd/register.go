package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerPassword string

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register NAME",
	Short: "Create a new user account",
	Long:  `Registers a new user with the service and prints the server's response.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := newClient()
		if err != nil {
			return err
		}

		password := registerPassword
		if password == "" {
			password, err = promptPassword()
			if err != nil {
				return err
			}
		}

		msg, err := client.Register(cmd.Context(), args[0], password)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		// The server's message is shown verbatim, success or failure.
		fmt.Println(msg)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password for the new account (prompted if omitted)")

	rootCmd.AddCommand(registerCmd)
}
