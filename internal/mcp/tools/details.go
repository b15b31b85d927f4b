package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moolen/pantry/internal/catalog"
)

// GetRecipeDetailsTool implements the get_recipe_details MCP tool:
// exact (case-insensitive) lookup returning the full ingredient list.
type GetRecipeDetailsTool struct {
	catalog *catalog.Catalog
}

// NewGetRecipeDetailsTool creates the tool.
func NewGetRecipeDetailsTool(cat *catalog.Catalog) *GetRecipeDetailsTool {
	return &GetRecipeDetailsTool{catalog: cat}
}

// GetRecipeDetailsInput is the tool's argument schema.
type GetRecipeDetailsInput struct {
	RecipeName string `json:"recipe_name"`
}

// GetRecipeDetailsResult is the tool's response.
type GetRecipeDetailsResult struct {
	Name        string             `json:"name"`
	Tags        []catalog.Tag      `json:"tags"`
	TotalCost   float64            `json:"total_cost"`
	Ingredients []IngredientDetail `json:"ingredients"`
}

// Execute looks up the recipe.
func (t *GetRecipeDetailsTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var params GetRecipeDetailsInput
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if strings.TrimSpace(params.RecipeName) == "" {
		return nil, fmt.Errorf("recipe_name must not be empty")
	}

	r, ok := t.catalog.Get(params.RecipeName)
	if !ok {
		return nil, fmt.Errorf("recipe %q not found. Available recipes: %s",
			params.RecipeName, strings.Join(t.catalog.Names(), ", "))
	}

	return GetRecipeDetailsResult{
		Name:        r.Name,
		Tags:        r.Tags,
		TotalCost:   r.TotalCost(),
		Ingredients: ingredientDetails(r),
	}, nil
}
