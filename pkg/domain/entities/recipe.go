package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RecipeLine represents one raw material consumed per unit of output of a
// semi-finished item
type RecipeLine struct {
	RawMaterialID RawMaterialID
	QtyPerUnit    decimal.Decimal
}

// NewRecipeLine creates a validated RecipeLine
func NewRecipeLine(rawMaterialID RawMaterialID, qtyPerUnit decimal.Decimal) (*RecipeLine, error) {
	if string(rawMaterialID) == "" {
		return nil, fmt.Errorf("raw material id cannot be empty")
	}
	if qtyPerUnit.Sign() <= 0 {
		return nil, fmt.Errorf("quantity per unit must be positive, got %s", qtyPerUnit)
	}

	return &RecipeLine{
		RawMaterialID: rawMaterialID,
		QtyPerUnit:    qtyPerUnit,
	}, nil
}

// RecipeTable maps a semi-finished item to the ordered raw material lines it
// consumes. Recipes are flat: a line never points at another recipe.
type RecipeTable map[SemiFinishedID][]RecipeLine
