package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openmfg/prodplan/pkg/application/dto"
	"github.com/openmfg/prodplan/pkg/application/services/stats"
	"github.com/openmfg/prodplan/pkg/interfaces/cli/output"
)

// StatsCmd builds the plan statistics command
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats PLAN_ID",
		Short: "Show plan KPIs and per-operator production totals",
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
			records, err := a.records.ListByPlan(cmd.Context(), plan.ID)
			if err != nil {
				return err
			}

			kpis := stats.ComputeKPIs(plan.Snapshot())
			operators := stats.ComputePerOperatorTotals(records)

			if a.cfg.Format == "json" {
				return output.WriteJSON(cmd.OutOrStdout(), struct {
					KPIs      dto.KPIs            `json:"kpis"`
					Operators []dto.OperatorTotal `json:"operators"`
				}{kpis, operators})
			}

			if err := output.WriteKPIs(cmd.OutOrStdout(), kpis); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return output.WriteOperatorTotals(cmd.OutOrStdout(), operators)
		},
	}
}
