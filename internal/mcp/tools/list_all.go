package tools

import (
	"context"
	"encoding/json"

	"github.com/moolen/pantry/internal/catalog"
)

// ListAllRecipesTool implements the list_all_recipes MCP tool.
type ListAllRecipesTool struct {
	catalog *catalog.Catalog
}

// NewListAllRecipesTool creates the tool.
func NewListAllRecipesTool(cat *catalog.Catalog) *ListAllRecipesTool {
	return &ListAllRecipesTool{catalog: cat}
}

// ListAllRecipesResult is the tool's response.
type ListAllRecipesResult struct {
	Total   int             `json:"total"`
	Recipes []RecipeSummary `json:"recipes"`
}

// Execute lists the catalog. The tool takes no arguments.
func (t *ListAllRecipesTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	recipes := t.catalog.Recipes()
	result := ListAllRecipesResult{
		Total:   len(recipes),
		Recipes: make([]RecipeSummary, len(recipes)),
	}
	for i, r := range recipes {
		result.Recipes[i] = summarize(r)
	}
	return result, nil
}
