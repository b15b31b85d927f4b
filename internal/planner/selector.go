package planner

import "github.com/moolen/pantry/internal/catalog"

// Select picks recipes matching the preference record from the catalog.
//
// Candidates are recipes whose tag set intersects the requested tags;
// with no tags requested every recipe is a candidate. Selection takes
// the first NumRecipes candidates in catalog order. When fewer recipes
// match, the shorter list is returned as-is: there is no backfill with
// non-matching recipes and no randomization.
func Select(cat *catalog.Catalog, prefs PreferenceRecord) []catalog.Recipe {
	prefs = prefs.Normalize()

	var selected []catalog.Recipe
	for _, r := range cat.Recipes() {
		if !r.HasAnyTag(prefs.Tags) {
			continue
		}
		selected = append(selected, r)
		if len(selected) == prefs.NumRecipes {
			break
		}
	}
	return selected
}
