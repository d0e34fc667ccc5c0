package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openmfg/prodplan/pkg/domain/entities"
	"github.com/openmfg/prodplan/pkg/domain/repositories"
)

// RecipeRepository implements repositories.RecipeRepository with SQLite.
// Per-unit quantities are stored as decimal strings to avoid float drift.
type RecipeRepository struct {
	db *sql.DB
}

// NewRecipeRepository creates a new SQLite recipe repository
func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Verify interface compliance
var _ repositories.RecipeRepository = (*RecipeRepository)(nil)

// LoadRecipes replaces the stored recipe table
func (r *RecipeRepository) LoadRecipes(ctx context.Context, table entities.RecipeTable) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin recipe load: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM recipes"); err != nil {
		return fmt.Errorf("failed to clear recipes: %w", err)
	}

	for semiID, lines := range table {
		for position, line := range lines {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO recipes (semi_finished_id, raw_material_id, qty_per_unit, position) VALUES (?, ?, ?, ?)",
				string(semiID), string(line.RawMaterialID), line.QtyPerUnit.String(), position,
			)
			if err != nil {
				return fmt.Errorf("failed to insert recipe line for %s: %w", semiID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe load: %w", err)
	}
	return nil
}

// GetRecipe returns the recipe lines for a semi-finished item in stored order
func (r *RecipeRepository) GetRecipe(ctx context.Context, id entities.SemiFinishedID) ([]entities.RecipeLine, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT raw_material_id, qty_per_unit FROM recipes WHERE semi_finished_id = ? ORDER BY position",
		string(id),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe for %s: %w", id, err)
	}
	defer rows.Close()

	return scanRecipeLines(rows)
}

// GetRecipeTable returns the full recipe table
func (r *RecipeRepository) GetRecipeTable(ctx context.Context) (entities.RecipeTable, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT semi_finished_id, raw_material_id, qty_per_unit FROM recipes ORDER BY semi_finished_id, position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe table: %w", err)
	}
	defer rows.Close()

	table := make(entities.RecipeTable)
	for rows.Next() {
		var semiID, rawID, qtyStr string
		if err := rows.Scan(&semiID, &rawID, &qtyStr); err != nil {
			return nil, fmt.Errorf("failed to scan recipe line: %w", err)
		}
		qty, err := decimal.NewFromString(qtyStr)
		if err != nil {
			return nil, fmt.Errorf("invalid qty_per_unit %q for %s: %w", qtyStr, semiID, err)
		}
		table[entities.SemiFinishedID(semiID)] = append(table[entities.SemiFinishedID(semiID)], entities.RecipeLine{
			RawMaterialID: entities.RawMaterialID(rawID),
			QtyPerUnit:    qty,
		})
	}
	return table, rows.Err()
}

func scanRecipeLines(rows *sql.Rows) ([]entities.RecipeLine, error) {
	var lines []entities.RecipeLine
	for rows.Next() {
		var rawID, qtyStr string
		if err := rows.Scan(&rawID, &qtyStr); err != nil {
			return nil, fmt.Errorf("failed to scan recipe line: %w", err)
		}
		qty, err := decimal.NewFromString(qtyStr)
		if err != nil {
			return nil, fmt.Errorf("invalid qty_per_unit %q: %w", qtyStr, err)
		}
		lines = append(lines, entities.RecipeLine{
			RawMaterialID: entities.RawMaterialID(rawID),
			QtyPerUnit:    qty,
		})
	}
	return lines, rows.Err()
}
