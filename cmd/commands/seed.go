package commands

import (
	"fmt"
	"os"

	"decor_admin/internal/seed"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load categories and products from a YAML file",
	Long: `Load categories and products from a YAML file. Categories are matched by
name and products by name within their category, so the same file can be
applied repeatedly.

Examples:
  decor-admin seed --file catalog.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return fmt.Errorf("failed to open seed file: %w", err)
		}
		defer f.Close()

		catalog, err := seed.Load(f)
		if err != nil {
			return err
		}

		database, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDatabase()

		svc := buildServices(database)
		summary, err := seed.NewSeeder(svc.categories, svc.products, logger).Apply(cmd.Context(), catalog)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "categories created: %d, products created: %d, products skipped: %d\n",
			summary.CategoriesCreated, summary.ProductsCreated, summary.ProductsSkipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "catalog.yaml", "Seed file to load")
}
