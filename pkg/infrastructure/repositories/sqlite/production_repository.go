package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/openmfg/prodplan/pkg/domain/entities"
	"github.com/openmfg/prodplan/pkg/domain/repositories"
)

// ProductionRecordRepository implements the append-only production history
// with SQLite. Records are never updated or deleted.
type ProductionRecordRepository struct {
	db *sql.DB
}

// NewProductionRecordRepository creates a new SQLite record repository
func NewProductionRecordRepository(db *sql.DB) *ProductionRecordRepository {
	return &ProductionRecordRepository{db: db}
}

// Verify interface compliance
var _ repositories.ProductionRecordRepository = (*ProductionRecordRepository)(nil)

// AppendRecord stores a record, assigning its identifier if absent
func (r *ProductionRecordRepository) AppendRecord(ctx context.Context, record *entities.ProductionRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	var reason sql.NullString
	if record.ScrapReason != "" {
		reason = sql.NullString{String: record.ScrapReason, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO production_records (id, plan_id, operator, semi_finished_id, qty_ok, qty_scrap, scrap_reason, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.PlanID, record.Operator, string(record.SemiFinishedID),
		int64(record.QtyOK), int64(record.QtyScrap), reason, record.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append production record: %w", err)
	}
	return nil
}

// ListByPlan returns the records for a plan in append order
func (r *ProductionRecordRepository) ListByPlan(ctx context.Context, planID int64) ([]*entities.ProductionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, operator, semi_finished_id, qty_ok, qty_scrap, scrap_reason, recorded_at
		 FROM production_records WHERE plan_id = ? ORDER BY rowid`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list production records: %w", err)
	}
	defer rows.Close()

	var records []*entities.ProductionRecord
	for rows.Next() {
		record := &entities.ProductionRecord{PlanID: planID}
		var (
			semiID          string
			qtyOK, qtyScrap int64
			reason          sql.NullString
		)
		if err := rows.Scan(&record.ID, &record.Operator, &semiID, &qtyOK, &qtyScrap, &reason, &record.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan production record: %w", err)
		}
		record.SemiFinishedID = entities.SemiFinishedID(semiID)
		record.QtyOK = entities.Quantity(qtyOK)
		record.QtyScrap = entities.Quantity(qtyScrap)
		record.ScrapReason = reason.String
		records = append(records, record)
	}
	return records, rows.Err()
}
