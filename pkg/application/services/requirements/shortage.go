// Package requirements converts plan items, a recipe table and current stock
// levels into a ranked material-shortage report.
package requirements

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/openmfg/prodplan/pkg/application/dto"
	"github.com/openmfg/prodplan/pkg/domain/entities"
)

// reportScale is the fixed display precision of report line values
const reportScale = 2

// ComputeShortageReport explodes the pending portion of each plan item
// through its single-level recipe, accumulates raw material demand, and
// compares it to stock.
//
// Items with zero pending demand and items without a recipe contribute
// nothing; raw materials absent from the stock table are dropped from the
// report. Neither case is an error. The result is sorted ascending by
// balance (most short first), ties keeping input order.
func ComputeShortageReport(
	items []entities.PlanItem,
	recipes entities.RecipeTable,
	stock entities.StockTable,
) ([]dto.ShortageReportLine, error) {
	required := make(map[entities.RawMaterialID]decimal.Decimal)
	var order []entities.RawMaterialID

	for i, item := range items {
		if item.Target < 0 {
			return nil, fmt.Errorf("%w: item %d (%s): target %d is negative",
				entities.ErrInvalidInput, i, item.SemiFinished.ID, item.Target)
		}
		if item.Produced < 0 {
			return nil, fmt.Errorf("%w: item %d (%s): produced %d is negative",
				entities.ErrInvalidInput, i, item.SemiFinished.ID, item.Produced)
		}

		pending := item.PendingQty()
		if pending == 0 {
			continue
		}

		// Absent recipe means the item consumes no material here,
		// e.g. a purchased component.
		lines, ok := recipes[item.SemiFinished.ID]
		if !ok {
			continue
		}

		pendingDec := decimal.NewFromInt(int64(pending))
		for _, line := range lines {
			if line.QtyPerUnit.Sign() <= 0 {
				return nil, fmt.Errorf("%w: item %d (%s): recipe line %s has non-positive qty per unit %s",
					entities.ErrInvalidInput, i, item.SemiFinished.ID, line.RawMaterialID, line.QtyPerUnit)
			}

			if _, seen := required[line.RawMaterialID]; !seen {
				order = append(order, line.RawMaterialID)
			}
			required[line.RawMaterialID] = required[line.RawMaterialID].Add(line.QtyPerUnit.Mul(pendingDec))
		}
	}

	report := make([]dto.ShortageReportLine, 0, len(order))
	for _, id := range order {
		need := required[id]
		if need.Sign() <= 0 {
			continue
		}

		// Unknown material: without a stock entry the line cannot be
		// reconciled, so it is dropped rather than reported as zero stock.
		material, ok := stock[id]
		if !ok {
			continue
		}
		if material.Stock.IsNegative() {
			return nil, fmt.Errorf("%w: material %s: stock %s is negative",
				entities.ErrInvalidInput, id, material.Stock)
		}

		balance := material.Stock.Sub(need)
		report = append(report, dto.ShortageReportLine{
			RawMaterialID: id,
			Name:          material.Name,
			Code:          material.Code,
			Required:      need.Round(reportScale),
			Stock:         material.Stock.Round(reportScale),
			Balance:       balance.Round(reportScale),
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Balance.LessThan(report[j].Balance)
	})

	return report, nil
}
