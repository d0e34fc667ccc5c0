// Package stats computes plan-level KPIs and per-operator roll-ups from plan
// items and production records.
package stats

import (
	"sort"

	"github.com/openmfg/prodplan/pkg/application/dto"
	"github.com/openmfg/prodplan/pkg/domain/entities"
)

// ComputeKPIs aggregates target and produced quantities across all plan
// items. TotalPending clamps at zero even when individual items over-produce.
func ComputeKPIs(items []entities.PlanItem) dto.KPIs {
	var kpis dto.KPIs
	for _, item := range items {
		kpis.TotalRequired += item.Target
		kpis.TotalProduced += item.Produced
	}

	if kpis.TotalProduced < kpis.TotalRequired {
		kpis.TotalPending = kpis.TotalRequired - kpis.TotalProduced
	}
	if kpis.TotalRequired > 0 {
		kpis.OverallProgressPct = float64(kpis.TotalProduced) / float64(kpis.TotalRequired) * 100
	}
	return kpis
}

// ComputePerItemProgress derives progress figures for a single plan line
func ComputePerItemProgress(item entities.PlanItem) dto.ItemProgress {
	progress := dto.ItemProgress{
		PendingQty: item.PendingQty(),
		IsComplete: item.Produced >= item.Target,
	}
	if item.Target > 0 {
		progress.ProgressPct = float64(item.Produced) / float64(item.Target) * 100
	}
	return progress
}

// ComputePerOperatorTotals groups production records by operator, summing OK
// quantities. Scrap rides along in TotalScrapped but never counts as
// production. Ordered by descending total, ties keeping first-seen operator
// order.
func ComputePerOperatorTotals(records []*entities.ProductionRecord) []dto.OperatorTotal {
	index := make(map[string]int)
	var totals []dto.OperatorTotal

	for _, record := range records {
		i, ok := index[record.Operator]
		if !ok {
			i = len(totals)
			index[record.Operator] = i
			totals = append(totals, dto.OperatorTotal{Operator: record.Operator})
		}
		totals[i].TotalProduced += record.QtyOK
		totals[i].TotalScrapped += record.QtyScrap
	}

	// Insertion order is first-seen order, so a stable sort keeps ties
	// in that order.
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalProduced > totals[j].TotalProduced
	})
	return totals
}

// ApplyProduction rolls production records up into the produced quantities of
// the plan's items. Lines sharing a semi-finished item are filled in plan
// order up to their target; any remainder lands on the last matching line.
func ApplyProduction(plan *entities.Plan, records []*entities.ProductionRecord) error {
	produced := make(map[entities.SemiFinishedID]entities.Quantity)
	for _, record := range records {
		produced[record.SemiFinishedID] += record.QtyOK
	}

	items := plan.Snapshot()
	last := make(map[entities.SemiFinishedID]int)
	for i, item := range items {
		last[item.SemiFinished.ID] = i
	}

	for i, item := range items {
		remaining, ok := produced[item.SemiFinished.ID]
		if !ok {
			continue
		}

		qty := remaining
		if i != last[item.SemiFinished.ID] && qty > item.Target {
			qty = item.Target
		}
		produced[item.SemiFinished.ID] = remaining - qty

		if err := plan.SetItemProduced(i, qty); err != nil {
			return err
		}
	}
	return nil
}
