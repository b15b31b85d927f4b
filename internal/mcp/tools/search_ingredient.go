package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moolen/pantry/internal/catalog"
)

// SearchByIngredientTool implements the search_by_ingredient MCP tool:
// case-insensitive substring match over ingredient item names.
type SearchByIngredientTool struct {
	catalog *catalog.Catalog
}

// NewSearchByIngredientTool creates the tool.
func NewSearchByIngredientTool(cat *catalog.Catalog) *SearchByIngredientTool {
	return &SearchByIngredientTool{catalog: cat}
}

// SearchByIngredientInput is the tool's argument schema.
type SearchByIngredientInput struct {
	Ingredient string `json:"ingredient"`
}

// IngredientMatch is one recipe using the searched ingredient.
type IngredientMatch struct {
	Recipe    string           `json:"recipe"`
	Uses      IngredientDetail `json:"uses"`
	TotalCost float64          `json:"total_cost"`
	Tags      []catalog.Tag    `json:"tags"`
}

// SearchByIngredientResult is the tool's response.
type SearchByIngredientResult struct {
	Ingredient string            `json:"ingredient"`
	Count      int               `json:"count"`
	Matches    []IngredientMatch `json:"matches"`
	Message    string            `json:"message,omitempty"`
}

// Execute runs the search.
func (t *SearchByIngredientTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var params SearchByIngredientInput
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if strings.TrimSpace(params.Ingredient) == "" {
		return nil, fmt.Errorf("ingredient must not be empty")
	}

	query := strings.ToLower(params.Ingredient)
	result := SearchByIngredientResult{Ingredient: params.Ingredient, Matches: []IngredientMatch{}}

	for _, r := range t.catalog.Recipes() {
		for _, ing := range r.Ingredients {
			if !strings.Contains(strings.ToLower(ing.Item), query) {
				continue
			}
			result.Matches = append(result.Matches, IngredientMatch{
				Recipe: r.Name,
				Uses: IngredientDetail{
					Item:     ing.Item,
					Quantity: ing.Quantity,
					Unit:     ing.Unit,
					Price:    ing.Price,
				},
				TotalCost: r.TotalCost(),
				Tags:      r.Tags,
			})
			break
		}
	}

	result.Count = len(result.Matches)
	if result.Count == 0 {
		result.Message = fmt.Sprintf("No recipes found containing %q", params.Ingredient)
	}
	return result, nil
}
