package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/moolen/pantry/internal/catalog"
)

// GetRecipesByBudgetTool implements the get_recipes_by_budget MCP
// tool: recipes whose total cost is at most the budget, cheapest first.
type GetRecipesByBudgetTool struct {
	catalog *catalog.Catalog
}

// NewGetRecipesByBudgetTool creates the tool.
func NewGetRecipesByBudgetTool(cat *catalog.Catalog) *GetRecipesByBudgetTool {
	return &GetRecipesByBudgetTool{catalog: cat}
}

// GetRecipesByBudgetInput is the tool's argument schema.
type GetRecipesByBudgetInput struct {
	MaxBudget float64 `json:"max_budget"`
}

// GetRecipesByBudgetResult is the tool's response.
type GetRecipesByBudgetResult struct {
	MaxBudget float64         `json:"max_budget"`
	Count     int             `json:"count"`
	Matches   []RecipeSummary `json:"matches"`
	Message   string          `json:"message,omitempty"`
}

// Execute runs the budget filter.
func (t *GetRecipesByBudgetTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var params GetRecipesByBudgetInput
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if params.MaxBudget <= 0 {
		return nil, fmt.Errorf("max_budget must be positive")
	}

	result := GetRecipesByBudgetResult{MaxBudget: params.MaxBudget, Matches: []RecipeSummary{}}
	for _, r := range t.catalog.Recipes() {
		if r.TotalCost() <= params.MaxBudget {
			result.Matches = append(result.Matches, summarize(r))
		}
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].Cost < result.Matches[j].Cost
	})

	result.Count = len(result.Matches)
	if result.Count == 0 {
		result.Message = fmt.Sprintf("No recipes found under $%.2f", params.MaxBudget)
	}
	return result, nil
}
