package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openmfg/prodplan/pkg/domain/entities"
	"github.com/openmfg/prodplan/pkg/interfaces/cli/output"
)

// PlanCmd builds the plan management command
func PlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Create and edit production plans",
	}

	cmd.AddCommand(planCreateCmd())
	cmd.AddCommand(planListCmd())
	cmd.AddCommand(planShowCmd())
	cmd.AddCommand(planAddCmd())
	cmd.AddCommand(planRemoveCmd())
	cmd.AddCommand(planSetQtyCmd())
	cmd.AddCommand(planSaveCmd())
	cmd.AddCommand(planCloseCmd())
	cmd.AddCommand(planReopenCmd())
	cmd.AddCommand(planDeleteCmd())
	return cmd
}

func planCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new empty plan in OPEN state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			plan, err := a.manager.CreatePlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan #%d %q\n", plan.ID, plan.Name)
			return nil
		},
	}
}

func planListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			plans, err := a.plans.ListPlans(cmd.Context())
			if err != nil {
				return err
			}
			if a.cfg.Format == "json" {
				return output.WriteJSON(cmd.OutOrStdout(), plans)
			}
			for _, plan := range plans {
				fmt.Fprintf(cmd.OutOrStdout(), "#%-4d %-32s [%s]  %d items\n",
					plan.ID, plan.Name, plan.State, len(plan.Items))
			}
			return nil
		},
	}
}

func planShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show PLAN_ID",
		Short: "Show a plan with per-item progress",
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
			if a.cfg.Format == "json" {
				return output.WriteJSON(cmd.OutOrStdout(), plan)
			}
			return output.WritePlan(cmd.OutOrStdout(), plan)
		},
	}
}

func planAddCmd() *cobra.Command {
	var (
		name string
		code string
	)

	cmd := &cobra.Command{
		Use:   "add PLAN_ID ITEM_ID QTY",
		Short: "Append a target line to an OPEN plan",
		Args:  cobra.ExactArgs(3),
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
			qty, err := parseQty(args[2])
			if err != nil {
				return err
			}

			if name == "" {
				name = args[1]
			}
			item, err := entities.NewSemiFinishedItem(entities.SemiFinishedID(args[1]), name, code)
			if err != nil {
				return err
			}

			if err := a.manager.AddItem(plan, *item, entities.Quantity(qty)); err != nil {
				return err
			}
			_, err = a.manager.Save(cmd.Context(), plan)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name of the semi-finished item")
	cmd.Flags().StringVar(&code, "code", "", "code of the semi-finished item")
	return cmd
}

func planRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove PLAN_ID INDEX",
		Short: "Remove the line at INDEX from an OPEN plan",
		Args:  cobra.ExactArgs(2),
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
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[1])
			}

			if err := a.manager.RemoveItem(plan, index); err != nil {
				return err
			}
			_, err = a.manager.Save(cmd.Context(), plan)
			return err
		},
	}
}

func planSetQtyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-qty PLAN_ID INDEX QTY",
		Short: "Replace the target quantity of the line at INDEX",
		Args:  cobra.ExactArgs(3),
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
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[1])
			}
			qty, err := parseQty(args[2])
			if err != nil {
				return err
			}

			if err := a.manager.EditItemQuantity(plan, index, entities.Quantity(qty)); err != nil {
				return err
			}
			_, err = a.manager.Save(cmd.Context(), plan)
			return err
		},
	}
}

func planSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save PLAN_ID",
		Short: "Resave a plan as stored; a no-op on unmodified plans",
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
			_, err = a.manager.Save(cmd.Context(), plan)
			return err
		},
	}
}

func planCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close PLAN_ID",
		Short: "Close a plan, freezing its items",
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
			return a.manager.Close(cmd.Context(), plan)
		},
	}
}

func planReopenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen PLAN_ID",
		Short: "Reopen a closed plan, restoring item mutability",
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
			return a.manager.Reopen(cmd.Context(), plan)
		},
	}
}

func planDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete PLAN_ID",
		Short: "Delete a plan and all its items (irreversible)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprintln(os.Stderr, "refusing to delete without --yes")
				return fmt.Errorf("deletion not confirmed")
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			plan, err := loadPlan(cmd, a, args[0])
			if err != nil {
				return err
			}
			return a.manager.Delete(cmd.Context(), plan)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func loadPlan(cmd *cobra.Command, a *app, arg string) (*entities.Plan, error) {
	id, err := parseID(arg, "plan id")
	if err != nil {
		return nil, err
	}
	return a.plans.GetPlan(cmd.Context(), id)
}
