// Package output renders engine results for the terminal
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/openmfg/prodplan/pkg/application/dto"
	"github.com/openmfg/prodplan/pkg/application/services/stats"
	"github.com/openmfg/prodplan/pkg/domain/entities"
)

var (
	shortRed   = color.New(color.FgRed, color.Bold)
	okGreen    = color.New(color.FgGreen)
	headerBold = color.New(color.Bold)
)

// WriteShortageText renders the shortage report as a table, most short first
func WriteShortageText(w io.Writer, lines []dto.ShortageReportLine) error {
	if len(lines) == 0 {
		_, err := fmt.Fprintln(w, "No outstanding material demand.")
		return err
	}

	headerBold.Fprintf(w, "%-12s %-24s %-10s %12s %12s %12s\n",
		"MATERIAL", "NAME", "CODE", "REQUIRED", "STOCK", "BALANCE")
	for _, line := range lines {
		balance := line.Balance.StringFixed(2)
		if line.Balance.IsNegative() {
			balance = shortRed.Sprint(balance)
		} else {
			balance = okGreen.Sprint(balance)
		}
		_, err := fmt.Fprintf(w, "%-12s %-24s %-10s %12s %12s %12s\n",
			line.RawMaterialID, line.Name, line.Code,
			line.Required.StringFixed(2), line.Stock.StringFixed(2), balance)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON renders any result as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WritePlan renders a plan with per-item progress
func WritePlan(w io.Writer, plan *entities.Plan) error {
	headerBold.Fprintf(w, "Plan #%d  %s  [%s]  created %s\n",
		plan.ID, plan.Name, plan.State, plan.CreatedAt.Format("2006-01-02"))

	items := plan.Snapshot()
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "  (no items)")
		return err
	}

	fmt.Fprintf(w, "  %-3s %-12s %-24s %8s %9s %8s %9s\n",
		"#", "ITEM", "NAME", "TARGET", "PRODUCED", "PENDING", "PROGRESS")
	for i, item := range items {
		progress := stats.ComputePerItemProgress(item)
		marker := " "
		if progress.IsComplete {
			marker = okGreen.Sprint("*")
		}
		_, err := fmt.Fprintf(w, "%s %-3d %-12s %-24s %8d %9d %8d %8.1f%%\n",
			marker, i, item.SemiFinished.ID, item.SemiFinished.Name,
			item.Target, item.Produced, progress.PendingQty, progress.ProgressPct)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteKPIs renders the plan-level roll-up
func WriteKPIs(w io.Writer, kpis dto.KPIs) error {
	_, err := fmt.Fprintf(w, "Required: %d  Produced: %d  Pending: %d  Progress: %.1f%%\n",
		kpis.TotalRequired, kpis.TotalProduced, kpis.TotalPending, kpis.OverallProgressPct)
	return err
}

// WriteOperatorTotals renders the per-operator roll-up, most productive first
func WriteOperatorTotals(w io.Writer, totals []dto.OperatorTotal) error {
	if len(totals) == 0 {
		_, err := fmt.Fprintln(w, "No production recorded.")
		return err
	}

	headerBold.Fprintf(w, "%-24s %10s %10s\n", "OPERATOR", "PRODUCED", "SCRAPPED")
	for _, total := range totals {
		_, err := fmt.Fprintf(w, "%-24s %10d %10d\n",
			total.Operator, total.TotalProduced, total.TotalScrapped)
		if err != nil {
			return err
		}
	}
	return nil
}
