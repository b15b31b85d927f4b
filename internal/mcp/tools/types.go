// Package tools contains the MCP tool implementations exposing the
// recipe catalog. Each tool is a small struct with an
// Execute(ctx, json.RawMessage) method; the MCP server adapts them to
// mcp-go handlers.
package tools

import "github.com/moolen/pantry/internal/catalog"

// RecipeSummary is the compact recipe view returned by list and filter
// tools.
type RecipeSummary struct {
	Name            string        `json:"name"`
	Tags            []catalog.Tag `json:"tags"`
	Cost            float64       `json:"cost"`
	IngredientCount int           `json:"ingredient_count"`
}

// IngredientDetail is the full ingredient view returned by the details
// tool.
type IngredientDetail struct {
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
}

func summarize(r catalog.Recipe) RecipeSummary {
	return RecipeSummary{
		Name:            r.Name,
		Tags:            r.Tags,
		Cost:            r.TotalCost(),
		IngredientCount: len(r.Ingredients),
	}
}

func ingredientDetails(r catalog.Recipe) []IngredientDetail {
	out := make([]IngredientDetail, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		out[i] = IngredientDetail{
			Item:     ing.Item,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Price:    ing.Price,
		}
	}
	return out
}
