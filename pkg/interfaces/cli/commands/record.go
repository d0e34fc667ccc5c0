package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openmfg/prodplan/pkg/application/services/stats"
	"github.com/openmfg/prodplan/pkg/domain/entities"
)

// RecordCmd builds the production history command
func RecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Capture production output and roll it up into a plan",
	}

	cmd.AddCommand(recordAddCmd())
	cmd.AddCommand(recordApplyCmd())
	return cmd
}

func recordAddCmd() *cobra.Command {
	var (
		operator string
		scrap    int64
		reason   string
	)

	cmd := &cobra.Command{
		Use:   "add PLAN_ID ITEM_ID QTY",
		Short: "Append an immutable production record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			planID, err := parseID(args[0], "plan id")
			if err != nil {
				return err
			}
			qty, err := parseQty(args[2])
			if err != nil {
				return err
			}

			record, err := entities.NewProductionRecord(
				planID, operator, entities.SemiFinishedID(args[1]),
				entities.Quantity(qty), entities.Quantity(scrap), reason, time.Now(),
			)
			if err != nil {
				return err
			}

			if err := a.records.AppendRecord(cmd.Context(), record); err != nil {
				return err
			}
			a.logger.Info("production recorded",
				"plan", planID, "item", args[1], "operator", operator, "ok", qty, "scrap", scrap)
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s\n", record.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&operator, "operator", "", "operator name (required)")
	cmd.Flags().Int64Var(&scrap, "scrap", 0, "scrapped quantity")
	cmd.Flags().StringVar(&reason, "reason", "", "scrap reason")
	cmd.MarkFlagRequired("operator")
	return cmd
}

func recordApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply PLAN_ID",
		Short: "Roll production records up into the plan's produced quantities",
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

			if err := stats.ApplyProduction(plan, records); err != nil {
				return err
			}
			_, err = a.manager.Save(cmd.Context(), plan)
			return err
		},
	}
}
