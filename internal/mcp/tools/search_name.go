package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moolen/pantry/internal/catalog"
)

// SearchRecipesByNameTool implements the search_recipes_by_name MCP
// tool: case-insensitive partial match on recipe names.
type SearchRecipesByNameTool struct {
	catalog *catalog.Catalog
}

// NewSearchRecipesByNameTool creates the tool.
func NewSearchRecipesByNameTool(cat *catalog.Catalog) *SearchRecipesByNameTool {
	return &SearchRecipesByNameTool{catalog: cat}
}

// SearchRecipesByNameInput is the tool's argument schema.
type SearchRecipesByNameInput struct {
	Query string `json:"query"`
}

// SearchRecipesByNameResult is the tool's response.
type SearchRecipesByNameResult struct {
	Query   string          `json:"query"`
	Count   int             `json:"count"`
	Matches []RecipeSummary `json:"matches"`
	Message string          `json:"message,omitempty"`
}

// Execute runs the search.
func (t *SearchRecipesByNameTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var params SearchRecipesByNameInput
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if strings.TrimSpace(params.Query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	query := strings.ToLower(params.Query)
	result := SearchRecipesByNameResult{Query: params.Query, Matches: []RecipeSummary{}}

	for _, r := range t.catalog.Recipes() {
		if strings.Contains(strings.ToLower(r.Name), query) {
			result.Matches = append(result.Matches, summarize(r))
		}
	}

	result.Count = len(result.Matches)
	if result.Count == 0 {
		result.Message = fmt.Sprintf("No recipes found matching %q", params.Query)
	}
	return result, nil
}
