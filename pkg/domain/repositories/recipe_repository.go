package repositories

import (
	"context"

	"github.com/openmfg/prodplan/pkg/domain/entities"
)

// RecipeRepository provides access to the flat recipe table
type RecipeRepository interface {
	GetRecipe(ctx context.Context, id entities.SemiFinishedID) ([]entities.RecipeLine, error)
	GetRecipeTable(ctx context.Context) (entities.RecipeTable, error)
	LoadRecipes(ctx context.Context, table entities.RecipeTable) error
}
