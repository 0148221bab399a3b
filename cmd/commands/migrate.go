package commands

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long: `Apply the embedded database schema. Every statement is idempotent, so
running it against an up to date database changes nothing. serve applies the
schema on startup as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := openDatabase(cmd.Context()); err != nil {
			return err
		}
		defer closeDatabase()
		logger.Info("Schema is up to date.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
