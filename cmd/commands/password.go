package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var newPassword string

var setPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Set the admin password",
	Long: `Set the admin password without knowing the current one. Use it to
bootstrap a fresh database or to recover access.

The password needs at least 8 characters with an uppercase letter, a
lowercase letter and a digit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if newPassword == "" {
			return fmt.Errorf("--password is required")
		}

		database, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDatabase()

		if err := buildServices(database).settings.SetPassword(cmd.Context(), newPassword); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "admin password updated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setPasswordCmd)

	setPasswordCmd.Flags().StringVarP(&newPassword, "password", "p", "", "New admin password")
}
