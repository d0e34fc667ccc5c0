package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SemiFinishedID uniquely identifies a semi-finished item
type SemiFinishedID string

// RawMaterialID uniquely identifies a raw material
type RawMaterialID string

// Quantity represents an integer quantity of discrete production units
type Quantity int64

// SemiFinishedItem is an intermediate manufactured good a plan targets.
// Immutable reference data.
type SemiFinishedItem struct {
	ID   SemiFinishedID
	Name string
	Code string
}

// NewSemiFinishedItem creates a validated SemiFinishedItem
func NewSemiFinishedItem(id SemiFinishedID, name, code string) (*SemiFinishedItem, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("semi-finished item id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("semi-finished item name cannot be empty")
	}

	return &SemiFinishedItem{
		ID:   id,
		Name: name,
		Code: code,
	}, nil
}

// RawMaterial is a base input consumed according to a recipe. Stock is the
// externally maintained on-hand quantity; the engine only reads it.
type RawMaterial struct {
	ID    RawMaterialID
	Name  string
	Code  string
	Stock decimal.Decimal
}

// NewRawMaterial creates a validated RawMaterial
func NewRawMaterial(id RawMaterialID, name, code string, stock decimal.Decimal) (*RawMaterial, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("raw material id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("raw material name cannot be empty")
	}
	if stock.IsNegative() {
		return nil, fmt.Errorf("stock cannot be negative, got %s", stock)
	}

	return &RawMaterial{
		ID:    id,
		Name:  name,
		Code:  code,
		Stock: stock,
	}, nil
}

// StockTable maps raw material identifiers to their master data and current
// stock level. Shared, externally owned reference data.
type StockTable map[RawMaterialID]RawMaterial
