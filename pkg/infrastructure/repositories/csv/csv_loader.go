// Package csv loads recipe and stock master data from CSV files
package csv

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/openmfg/prodplan/pkg/domain/entities"
)

// Loader handles loading master data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRecipes loads a recipe table from a CSV file.
// Expected columns: semi_finished_id, raw_material_id, qty_per_unit.
// Line order within one semi-finished item is preserved.
func (l *Loader) LoadRecipes(filename string) (entities.RecipeTable, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipes CSV: %w", err)
	}

	expectedHeader := []string{"semi_finished_id", "raw_material_id", "qty_per_unit"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("recipes CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	table := make(entities.RecipeTable)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("recipes CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		qty, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("recipes CSV row %d: invalid qty_per_unit %q: %w", i+2, record[2], err)
		}

		line, err := entities.NewRecipeLine(entities.RawMaterialID(record[1]), qty)
		if err != nil {
			return nil, fmt.Errorf("recipes CSV row %d: %w", i+2, err)
		}

		semiID := entities.SemiFinishedID(record[0])
		if string(semiID) == "" {
			return nil, fmt.Errorf("recipes CSV row %d: semi_finished_id cannot be empty", i+2)
		}
		table[semiID] = append(table[semiID], *line)
	}

	return table, nil
}

// LoadStock loads raw material master data from a CSV file.
// Expected columns: raw_material_id, name, code, stock_qty.
func (l *Loader) LoadStock(filename string) ([]entities.RawMaterial, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read stock CSV: %w", err)
	}

	expectedHeader := []string{"raw_material_id", "name", "code", "stock_qty"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("stock CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var materials []entities.RawMaterial
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("stock CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		stock, err := decimal.NewFromString(record[3])
		if err != nil {
			return nil, fmt.Errorf("stock CSV row %d: invalid stock_qty %q: %w", i+2, record[3], err)
		}

		material, err := entities.NewRawMaterial(entities.RawMaterialID(record[0]), record[1], record[2], stock)
		if err != nil {
			return nil, fmt.Errorf("stock CSV row %d: %w", i+2, err)
		}
		materials = append(materials, *material)
	}

	return materials, nil
}

func readAll(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV must have header and at least one data row")
	}
	return records, nil
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range expected {
		if header[i] != col {
			return false
		}
	}
	return true
}
