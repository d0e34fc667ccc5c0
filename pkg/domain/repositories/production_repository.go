package repositories

import (
	"context"

	"github.com/openmfg/prodplan/pkg/domain/entities"
)

// ProductionRecordRepository stores the append-only production history.
// Records are never updated or deleted individually.
type ProductionRecordRepository interface {
	AppendRecord(ctx context.Context, record *entities.ProductionRecord) error
	ListByPlan(ctx context.Context, planID int64) ([]*entities.ProductionRecord, error)
}
