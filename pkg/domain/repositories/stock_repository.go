package repositories

import (
	"context"

	"github.com/openmfg/prodplan/pkg/domain/entities"
)

// StockRepository provides access to raw material master data and current
// stock levels
type StockRepository interface {
	GetStockTable(ctx context.Context) (entities.StockTable, error)
	LoadMaterials(ctx context.Context, materials []entities.RawMaterial) error
}
