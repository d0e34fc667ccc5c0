package commands

import (
	"github.com/spf13/cobra"

	"github.com/openmfg/prodplan/pkg/application/services/requirements"
	"github.com/openmfg/prodplan/pkg/interfaces/cli/output"
)

// ShortageCmd builds the shortage report command
func ShortageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shortage PLAN_ID",
		Short: "Compute the raw material shortage report for a plan",
		Long:  "Explodes the pending (unproduced) portion of each plan item\nthrough its recipe, sums raw material demand and compares it to\ncurrent stock. The most short materials come first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			plan, err := loadPlan(cmd, a, args[0])
			if err != nil {
				return err
			}
			recipes, err := a.recipes.GetRecipeTable(cmd.Context())
			if err != nil {
				return err
			}
			stock, err := a.stock.GetStockTable(cmd.Context())
			if err != nil {
				return err
			}

			report, err := requirements.ComputeShortageReport(plan.Snapshot(), recipes, stock)
			if err != nil {
				return err
			}

			if a.cfg.Format == "json" {
				return output.WriteJSON(cmd.OutOrStdout(), report)
			}
			return output.WriteShortageText(cmd.OutOrStdout(), report)
		},
	}
}
