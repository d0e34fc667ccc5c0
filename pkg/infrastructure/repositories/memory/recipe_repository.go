package memory

import (
	"context"
	"sync"

	"github.com/openmfg/prodplan/pkg/domain/entities"
	"github.com/openmfg/prodplan/pkg/domain/repositories"
)

// RecipeRepository provides in-memory recipe storage
type RecipeRepository struct {
	mu      sync.RWMutex
	recipes entities.RecipeTable
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{
		recipes: make(entities.RecipeTable),
	}
}

// Verify interface compliance
var _ repositories.RecipeRepository = (*RecipeRepository)(nil)

// LoadRecipes replaces the stored recipe table
func (r *RecipeRepository) LoadRecipes(ctx context.Context, table entities.RecipeTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recipes = make(entities.RecipeTable, len(table))
	for id, lines := range table {
		copied := make([]entities.RecipeLine, len(lines))
		copy(copied, lines)
		r.recipes[id] = copied
	}
	return nil
}

// GetRecipe returns the recipe lines for a semi-finished item, nil if it has
// no recipe
func (r *RecipeRepository) GetRecipe(ctx context.Context, id entities.SemiFinishedID) ([]entities.RecipeLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines := r.recipes[id]
	copied := make([]entities.RecipeLine, len(lines))
	copy(copied, lines)
	return copied, nil
}

// GetRecipeTable returns a copy of the full recipe table
func (r *RecipeRepository) GetRecipeTable(ctx context.Context) (entities.RecipeTable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table := make(entities.RecipeTable, len(r.recipes))
	for id, lines := range r.recipes {
		copied := make([]entities.RecipeLine, len(lines))
		copy(copied, lines)
		table[id] = copied
	}
	return table, nil
}
