package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openmfg/prodplan/pkg/infrastructure/repositories/csv"
)

// LoadCmd builds the master data import command
func LoadCmd() *cobra.Command {
	var (
		recipesFile string
		stockFile   string
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Import recipe and stock master data from CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if recipesFile == "" {
				recipesFile = a.cfg.RecipesFile
			}
			if stockFile == "" {
				stockFile = a.cfg.StockFile
			}
			if recipesFile == "" && stockFile == "" {
				return fmt.Errorf("nothing to load: set --recipes and/or --stock")
			}

			loader := csv.NewLoader()

			if recipesFile != "" {
				table, err := loader.LoadRecipes(recipesFile)
				if err != nil {
					return err
				}
				if err := a.recipes.LoadRecipes(cmd.Context(), table); err != nil {
					return err
				}
				a.logger.Info("recipes loaded", "file", recipesFile, "items", len(table))
			}

			if stockFile != "" {
				materials, err := loader.LoadStock(stockFile)
				if err != nil {
					return err
				}
				if err := a.stock.LoadMaterials(cmd.Context(), materials); err != nil {
					return err
				}
				a.logger.Info("stock loaded", "file", stockFile, "materials", len(materials))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&recipesFile, "recipes", "", "recipes CSV file")
	cmd.Flags().StringVar(&stockFile, "stock", "", "stock CSV file")
	return cmd
}
