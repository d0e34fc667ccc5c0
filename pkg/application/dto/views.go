package dto

import (
	"github.com/shopspring/decimal"

	"github.com/openmfg/prodplan/pkg/domain/entities"
)

// ShortageReportLine is one row of the ranked material balance. Values are
// rounded to two decimals for display; the engine accumulates at full
// precision. Recomputed on every query, never persisted.
type ShortageReportLine struct {
	RawMaterialID entities.RawMaterialID `json:"raw_material_id"`
	Name          string                 `json:"name"`
	Code          string                 `json:"code"`
	Required      decimal.Decimal        `json:"required"`
	Stock         decimal.Decimal        `json:"stock"`
	Balance       decimal.Decimal        `json:"balance"`
}

// KPIs contains the plan-level roll-up
type KPIs struct {
	TotalRequired      entities.Quantity `json:"total_required"`
	TotalProduced      entities.Quantity `json:"total_produced"`
	TotalPending       entities.Quantity `json:"total_pending"`
	OverallProgressPct float64           `json:"overall_progress_pct"`
}

// ItemProgress contains per-line progress figures
type ItemProgress struct {
	PendingQty  entities.Quantity `json:"pending_qty"`
	ProgressPct float64           `json:"progress_pct"`
	IsComplete  bool              `json:"is_complete"`
}

// OperatorTotal is the per-operator production roll-up. Scrap is tracked
// alongside but excluded from TotalProduced.
type OperatorTotal struct {
	Operator      string            `json:"operator"`
	TotalProduced entities.Quantity `json:"total_produced"`
	TotalScrapped entities.Quantity `json:"total_scrapped"`
}
