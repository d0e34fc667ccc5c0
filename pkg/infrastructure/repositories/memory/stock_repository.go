package memory

import (
	"context"
	"sync"

	"github.com/openmfg/prodplan/pkg/domain/entities"
	"github.com/openmfg/prodplan/pkg/domain/repositories"
)

// StockRepository provides in-memory raw material storage
type StockRepository struct {
	mu        sync.RWMutex
	materials entities.StockTable
}

// NewStockRepository creates a new in-memory stock repository
func NewStockRepository() *StockRepository {
	return &StockRepository{
		materials: make(entities.StockTable),
	}
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// LoadMaterials upserts raw material master data and stock levels
func (r *StockRepository) LoadMaterials(ctx context.Context, materials []entities.RawMaterial) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, material := range materials {
		r.materials[material.ID] = material
	}
	return nil
}

// GetStockTable returns a snapshot of the stock table
func (r *StockRepository) GetStockTable(ctx context.Context) (entities.StockTable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table := make(entities.StockTable, len(r.materials))
	for id, material := range r.materials {
		table[id] = material
	}
	return table, nil
}
