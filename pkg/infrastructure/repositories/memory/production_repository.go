package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/openmfg/prodplan/pkg/domain/entities"
	"github.com/openmfg/prodplan/pkg/domain/repositories"
)

// ProductionRecordRepository provides in-memory append-only history storage
type ProductionRecordRepository struct {
	mu      sync.Mutex
	records []entities.ProductionRecord
}

// NewProductionRecordRepository creates a new in-memory record repository
func NewProductionRecordRepository() *ProductionRecordRepository {
	return &ProductionRecordRepository{}
}

// Verify interface compliance
var _ repositories.ProductionRecordRepository = (*ProductionRecordRepository)(nil)

// AppendRecord stores a record, assigning its identifier
func (r *ProductionRecordRepository) AppendRecord(ctx context.Context, record *entities.ProductionRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	r.records = append(r.records, *record)
	return nil
}

// ListByPlan returns the records for a plan in append order
func (r *ProductionRecordRepository) ListByPlan(ctx context.Context, planID int64) ([]*entities.ProductionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var records []*entities.ProductionRecord
	for i := range r.records {
		if r.records[i].PlanID == planID {
			record := r.records[i]
			records = append(records, &record)
		}
	}
	return records, nil
}
