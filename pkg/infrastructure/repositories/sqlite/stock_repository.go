package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openmfg/prodplan/pkg/domain/entities"
	"github.com/openmfg/prodplan/pkg/domain/repositories"
)

// StockRepository implements repositories.StockRepository with SQLite
type StockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new SQLite stock repository
func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// LoadMaterials upserts raw material master data and stock levels
func (r *StockRepository) LoadMaterials(ctx context.Context, materials []entities.RawMaterial) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin material load: %w", err)
	}
	defer tx.Rollback()

	for _, material := range materials {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO materials (id, name, code, stock) VALUES (?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET name = excluded.name, code = excluded.code, stock = excluded.stock`,
			string(material.ID), material.Name, material.Code, material.Stock.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert material %s: %w", material.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit material load: %w", err)
	}
	return nil
}

// GetStockTable returns all raw materials keyed by identifier
func (r *StockRepository) GetStockTable(ctx context.Context) (entities.StockTable, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, code, stock FROM materials")
	if err != nil {
		return nil, fmt.Errorf("failed to load stock table: %w", err)
	}
	defer rows.Close()

	table := make(entities.StockTable)
	for rows.Next() {
		var id, name, code, stockStr string
		if err := rows.Scan(&id, &name, &code, &stockStr); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		stock, err := decimal.NewFromString(stockStr)
		if err != nil {
			return nil, fmt.Errorf("invalid stock %q for material %s: %w", stockStr, id, err)
		}
		table[entities.RawMaterialID(id)] = entities.RawMaterial{
			ID:    entities.RawMaterialID(id),
			Name:  name,
			Code:  code,
			Stock: stock,
		}
	}
	return table, rows.Err()
}
