package entities

import (
	"fmt"
	"time"
)

// ProductionRecord is an immutable historical fact: who produced how much of
// what, when, with how much scrap and why. Records reference their plan by
// identifier; they are append-only and never edited.
type ProductionRecord struct {
	ID             string
	PlanID         int64
	Operator       string
	SemiFinishedID SemiFinishedID
	QtyOK          Quantity
	QtyScrap       Quantity
	ScrapReason    string
	RecordedAt     time.Time
}

// NewProductionRecord creates a validated ProductionRecord
func NewProductionRecord(
	planID int64,
	operator string,
	semiFinishedID SemiFinishedID,
	qtyOK, qtyScrap Quantity,
	scrapReason string,
	recordedAt time.Time,
) (*ProductionRecord, error) {
	if operator == "" {
		return nil, fmt.Errorf("operator cannot be empty")
	}
	if string(semiFinishedID) == "" {
		return nil, fmt.Errorf("semi-finished item id cannot be empty")
	}
	if qtyOK < 0 {
		return nil, fmt.Errorf("ok quantity cannot be negative, got %d", qtyOK)
	}
	if qtyScrap < 0 {
		return nil, fmt.Errorf("scrap quantity cannot be negative, got %d", qtyScrap)
	}
	if qtyOK == 0 && qtyScrap == 0 {
		return nil, fmt.Errorf("record must carry ok or scrap quantity")
	}

	return &ProductionRecord{
		PlanID:         planID,
		Operator:       operator,
		SemiFinishedID: semiFinishedID,
		QtyOK:          qtyOK,
		QtyScrap:       qtyScrap,
		ScrapReason:    scrapReason,
		RecordedAt:     recordedAt,
	}, nil
}
