package planner

import (
	"strings"

	"github.com/moolen/pantry/internal/catalog"
)

// IngredientUse records one recipe's use of an ingredient.
type IngredientUse struct {
	Recipe     string             `json:"recipe"`
	Ingredient catalog.Ingredient `json:"ingredient"`
}

// ItemOverlap groups every use of one shopping item across the selected
// recipes. Item carries the spelling of the first use; grouping is
// case-insensitive on the item name.
type ItemOverlap struct {
	Item string          `json:"item"`
	Uses []IngredientUse `json:"uses"`
}

// Shared reports whether more than one recipe uses the item.
func (o ItemOverlap) Shared() bool {
	return len(o.Uses) > 1
}

// DetectOverlap groups the ingredients of the given recipes by item
// name. Matching is exact apart from letter case: "Garlic" and "garlic"
// group together, "tomato" and "tomatoes" do not. Groups appear in
// first-occurrence order.
func DetectOverlap(recipes []catalog.Recipe) []ItemOverlap {
	index := make(map[string]int)
	var groups []ItemOverlap

	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			key := strings.ToLower(ing.Item)
			i, ok := index[key]
			if !ok {
				i = len(groups)
				index[key] = i
				groups = append(groups, ItemOverlap{Item: ing.Item})
			}
			groups[i].Uses = append(groups[i].Uses, IngredientUse{
				Recipe:     r.Name,
				Ingredient: ing,
			})
		}
	}
	return groups
}

// SharedItems returns the names of items used by more than one recipe,
// in first-occurrence order.
func SharedItems(groups []ItemOverlap) []string {
	var shared []string
	for _, g := range groups {
		if g.Shared() {
			shared = append(shared, g.Item)
		}
	}
	return shared
}
