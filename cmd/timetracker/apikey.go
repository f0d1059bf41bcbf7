package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	apikeyUser        string
	apikeyEmail       string
	apikeyName        string
	apikeyDescription string
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage API keys",
}

var apikeyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an API key for a user",
	Long:  "Create an API key for a user, creating the user if needed. The key is printed once and only its hash is stored.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, os.Stderr)
		if err != nil {
			return err
		}
		defer a.Close()

		var name *string
		if apikeyName != "" {
			name = &apikeyName
		}
		if _, err := a.users.Ensure(ctx, apikeyUser, apikeyEmail, name); err != nil {
			return err
		}

		token, err := a.apiKeys.Create(ctx, apikeyUser, apikeyDescription)
		if err != nil {
			return err
		}

		fmt.Printf("API key for %s:\n", apikeyUser)
		color.Green("  %s\n", token)
		color.Yellow("Store it now; it cannot be shown again.\n")
		return nil
	},
}

func init() {
	apikeyCreateCmd.Flags().StringVar(&apikeyUser, "user", "", "user ID the key authenticates as")
	apikeyCreateCmd.Flags().StringVar(&apikeyEmail, "email", "", "email for a newly created user")
	apikeyCreateCmd.Flags().StringVar(&apikeyName, "name", "", "display name for a newly created user")
	apikeyCreateCmd.Flags().StringVar(&apikeyDescription, "description", "", "what the key is used for")
	_ = apikeyCreateCmd.MarkFlagRequired("user")

	apikeyCmd.AddCommand(apikeyCreateCmd)
}
