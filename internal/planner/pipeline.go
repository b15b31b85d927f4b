package planner

import "github.com/moolen/pantry/internal/catalog"

// Result is the outcome of one planning run.
type Result struct {
	// Preferences is the normalized record the plan was built from.
	Preferences PreferenceRecord `json:"preferences"`
	// Recipes holds the selected recipe names in selection order.
	Recipes []string `json:"recipes"`
	// ShoppingList is the consolidated list, one row per item+unit.
	ShoppingList []Entry `json:"shopping_list"`
	// SharedItems names the items used by more than one recipe.
	SharedItems []string `json:"shared_items,omitempty"`
	// TotalCost is the summed cost of the shopping list. It equals the
	// sum of the selected recipes' costs.
	TotalCost float64 `json:"total_cost"`
	// NeedsCostReview signals that a plan was produced and its cost
	// should be checked against the budget. It is false only for an
	// empty plan.
	NeedsCostReview bool `json:"needs_cost_review"`
	// Message explains an empty plan; empty otherwise.
	Message string `json:"message,omitempty"`
}

// Empty reports whether no recipes were selected.
func (r Result) Empty() bool {
	return len(r.Recipes) == 0
}

// OverBudget reports whether the plan exceeds the requested budget.
func (r Result) OverBudget() bool {
	return r.TotalCost > r.Preferences.Budget
}

// Plan runs the full pipeline for a free-text request: extract
// preferences, select recipes, detect overlap, consolidate. The run is
// synchronous and deterministic; planning the same request against the
// same catalog always yields the same result.
func Plan(cat *catalog.Catalog, request string) Result {
	return PlanWithPreferences(cat, ExtractPreferences(request))
}

// PlanWithPreferences runs selection, overlap detection and
// consolidation for an already-extracted preference record. Used when
// an LLM extractor supplied the record.
func PlanWithPreferences(cat *catalog.Catalog, prefs PreferenceRecord) Result {
	prefs = prefs.Normalize()

	selected := Select(cat, prefs)
	if len(selected) == 0 {
		return Result{
			Preferences: prefs,
			Message:     "No recipes in the catalog match the requested dietary preferences.",
		}
	}

	groups := DetectOverlap(selected)
	entries := Consolidate(groups)

	names := make([]string, len(selected))
	for i, r := range selected {
		names[i] = r.Name
	}

	return Result{
		Preferences:     prefs,
		Recipes:         names,
		ShoppingList:    entries,
		SharedItems:     SharedItems(groups),
		TotalCost:       TotalCost(entries),
		NeedsCostReview: true,
	}
}
