package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moolen/pantry/internal/catalog"
)

// FilterRecipesByTagsTool implements the filter_recipes_by_tags MCP
// tool. A recipe matches when it carries ANY of the requested tags.
type FilterRecipesByTagsTool struct {
	catalog *catalog.Catalog
}

// NewFilterRecipesByTagsTool creates the tool.
func NewFilterRecipesByTagsTool(cat *catalog.Catalog) *FilterRecipesByTagsTool {
	return &FilterRecipesByTagsTool{catalog: cat}
}

// FilterRecipesByTagsInput is the tool's argument schema.
type FilterRecipesByTagsInput struct {
	Tags []string `json:"tags"`
}

// FilterRecipesByTagsResult is the tool's response.
type FilterRecipesByTagsResult struct {
	Tags    []catalog.Tag   `json:"tags"`
	Count   int             `json:"count"`
	Matches []RecipeSummary `json:"matches"`
	Message string          `json:"message,omitempty"`
}

// Execute runs the filter.
func (t *FilterRecipesByTagsTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var params FilterRecipesByTagsInput
	if err := json.Unmarshal(input, &params); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if len(params.Tags) == 0 {
		return nil, fmt.Errorf("provide at least one tag to filter by")
	}

	tags := make([]catalog.Tag, 0, len(params.Tags))
	for _, raw := range params.Tags {
		tag, err := catalog.ParseTag(raw)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	result := FilterRecipesByTagsResult{Tags: tags, Matches: []RecipeSummary{}}
	for _, r := range t.catalog.Recipes() {
		if r.HasAnyTag(tags) {
			result.Matches = append(result.Matches, summarize(r))
		}
	}

	result.Count = len(result.Matches)
	if result.Count == 0 {
		result.Message = "No recipes found with the requested tags"
	}
	return result, nil
}
