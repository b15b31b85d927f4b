package planner

import "strings"

// Entry is one row of the consolidated shopping list.
type Entry struct {
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	// Cost is the summed flat ingredient cost for this row.
	Cost float64 `json:"cost"`
	// Recipes lists the recipes contributing to this row, in selection
	// order, deduplicated.
	Recipes []string `json:"recipes"`
}

// Consolidate merges the grouped ingredient uses into a shopping list.
//
// Quantities are summed only when the unit strings match exactly
// (case-insensitive); uses with differing units stay as separate rows
// under the same item, in first-occurrence order. There is no unit
// conversion. Cost is always additive: each use contributes its flat
// ingredient price to its row regardless of merging.
func Consolidate(groups []ItemOverlap) []Entry {
	var entries []Entry

	for _, g := range groups {
		rowIndex := make(map[string]int)
		for _, use := range g.Uses {
			unitKey := strings.ToLower(use.Ingredient.Unit)
			i, ok := rowIndex[unitKey]
			if !ok {
				i = len(entries)
				rowIndex[unitKey] = i
				entries = append(entries, Entry{
					Item: g.Item,
					Unit: use.Ingredient.Unit,
				})
			}
			entries[i].Quantity += use.Ingredient.Quantity
			entries[i].Cost += use.Ingredient.Price
			entries[i].Recipes = appendUnique(entries[i].Recipes, use.Recipe)
		}
	}
	return entries
}

// TotalCost sums the cost of every entry.
func TotalCost(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Cost
	}
	return total
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
