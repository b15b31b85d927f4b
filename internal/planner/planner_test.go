package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moolen/pantry/internal/catalog"
)

func TestExtractPreferences(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantCount  int
		wantBudget float64
		wantTags   []catalog.Tag
	}{
		{
			name:       "full request",
			input:      "Plan 3 vegetarian dinners under $50",
			wantCount:  3,
			wantBudget: 50,
			wantTags:   []catalog.Tag{catalog.TagVegetarian},
		},
		{
			name:       "empty request uses defaults",
			input:      "",
			wantCount:  DefaultNumRecipes,
			wantBudget: DefaultBudget,
		},
		{
			name:       "ambiguous request uses defaults",
			input:      "plan me some dinners please",
			wantCount:  DefaultNumRecipes,
			wantBudget: DefaultBudget,
		},
		{
			name:       "keto maps to low-carb",
			input:      "4 meals, keto please",
			wantCount:  4,
			wantBudget: DefaultBudget,
			wantTags:   []catalog.Tag{catalog.TagLowCarb},
		},
		{
			name:       "budget in words",
			input:      "plan 2 recipes for 30 dollars",
			wantCount:  2,
			wantBudget: 30,
		},
		{
			name:       "fractional dollar budget",
			input:      "meals for $42.50",
			wantCount:  DefaultNumRecipes,
			wantBudget: 42.5,
		},
		{
			name:       "multiple tags deduplicated",
			input:      "vegan plant-based gluten free dinners",
			wantCount:  DefaultNumRecipes,
			wantBudget: DefaultBudget,
			wantTags:   []catalog.Tag{catalog.TagVegan, catalog.TagGlutenFree},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPreferences(tt.input)
			assert.Equal(t, tt.wantCount, got.NumRecipes)
			assert.InDelta(t, tt.wantBudget, got.Budget, 0.001)
			assert.Equal(t, tt.wantTags, got.Tags)
		})
	}
}

func TestSelectFirstNInCatalogOrder(t *testing.T) {
	cat := catalog.Default()

	selected := Select(cat, PreferenceRecord{NumRecipes: 3})
	require.Len(t, selected, 3)
	assert.Equal(t, "Spaghetti Aglio e Olio", selected[0].Name)
	assert.Equal(t, "Chicken Stir-Fry", selected[1].Name)
	assert.Equal(t, "Black Bean Tacos", selected[2].Name)
}

func TestSelectShortResultWithoutBackfill(t *testing.T) {
	cat := catalog.Default()

	// Only three recipes are vegan; requesting five must not backfill
	// with non-vegan recipes.
	selected := Select(cat, PreferenceRecord{NumRecipes: 5, Tags: []catalog.Tag{catalog.TagVegan}})
	require.Len(t, selected, 3)
	for _, r := range selected {
		assert.True(t, r.HasTag(catalog.TagVegan), "recipe %q is not vegan", r.Name)
	}
}

func TestSelectCountExceedingCatalog(t *testing.T) {
	cat := catalog.Default()

	selected := Select(cat, PreferenceRecord{NumRecipes: 25})
	assert.Len(t, selected, cat.Len())
}

func TestSelectNoMatches(t *testing.T) {
	cat, err := catalog.New([]catalog.Recipe{
		{Name: "Beef Stew", Ingredients: []catalog.Ingredient{{Item: "beef", Quantity: 1, Unit: "lb", Price: 6}}},
	})
	require.NoError(t, err)

	selected := Select(cat, PreferenceRecord{NumRecipes: 3, Tags: []catalog.Tag{catalog.TagVegan}})
	assert.Empty(t, selected)
}

func TestDetectOverlapGroupsCaseInsensitively(t *testing.T) {
	recipes := []catalog.Recipe{
		{
			Name: "Garlic Bread",
			Ingredients: []catalog.Ingredient{
				{Item: "Garlic", Quantity: 1, Unit: "clove", Price: 0.25},
				{Item: "bread", Quantity: 1, Unit: "loaf", Price: 2.00},
			},
		},
		{
			Name: "Garlic Soup",
			Ingredients: []catalog.Ingredient{
				{Item: "garlic", Quantity: 1, Unit: "clove", Price: 0.25},
				{Item: "tomato", Quantity: 2, Unit: "count", Price: 1.00},
			},
		},
		{
			Name: "Salad",
			Ingredients: []catalog.Ingredient{
				{Item: "tomatoes", Quantity: 3, Unit: "count", Price: 1.50},
			},
		},
	}

	groups := DetectOverlap(recipes)
	require.Len(t, groups, 4, "tomato and tomatoes must not fold together")

	assert.Equal(t, "Garlic", groups[0].Item)
	assert.Len(t, groups[0].Uses, 2)
	assert.True(t, groups[0].Shared())

	assert.Equal(t, []string{"Garlic"}, SharedItems(groups))
}

func TestConsolidateMergesMatchingUnits(t *testing.T) {
	groups := DetectOverlap([]catalog.Recipe{
		{
			Name: "Pasta",
			Ingredients: []catalog.Ingredient{
				{Item: "garlic", Quantity: 1, Unit: "clove", Price: 0.25},
			},
		},
		{
			Name: "Stir-Fry",
			Ingredients: []catalog.Ingredient{
				{Item: "garlic", Quantity: 1, Unit: "clove", Price: 0.25},
			},
		},
	})

	entries := Consolidate(groups)
	require.Len(t, entries, 1)
	assert.Equal(t, "garlic", entries[0].Item)
	assert.InDelta(t, 2, entries[0].Quantity, 0.001)
	assert.Equal(t, "clove", entries[0].Unit)
	assert.InDelta(t, 0.50, entries[0].Cost, 0.001)
	assert.Equal(t, []string{"Pasta", "Stir-Fry"}, entries[0].Recipes)
}

func TestConsolidateKeepsMismatchedUnitsSeparate(t *testing.T) {
	groups := DetectOverlap([]catalog.Recipe{
		{
			Name: "Bread",
			Ingredients: []catalog.Ingredient{
				{Item: "flour", Quantity: 1, Unit: "cup", Price: 0.50},
			},
		},
		{
			Name: "Cake",
			Ingredients: []catalog.Ingredient{
				{Item: "flour", Quantity: 200, Unit: "g", Price: 0.40},
			},
		},
	})

	entries := Consolidate(groups)
	require.Len(t, entries, 2, "differing units must not merge")

	assert.Equal(t, "cup", entries[0].Unit)
	assert.InDelta(t, 1, entries[0].Quantity, 0.001)
	assert.Equal(t, "g", entries[1].Unit)
	assert.InDelta(t, 200, entries[1].Quantity, 0.001)

	// Cost stays additive across the split rows.
	assert.InDelta(t, 0.90, TotalCost(entries), 0.001)
}

func TestPlanCostAdditivity(t *testing.T) {
	cat := catalog.Default()

	requests := []string{
		"plan 10 dinners",
		"plan 6 meals",
		"3 vegetarian dinners under $50",
		"4 gluten-free recipes",
	}

	for _, req := range requests {
		t.Run(req, func(t *testing.T) {
			result := Plan(cat, req)
			require.False(t, result.Empty())

			var want float64
			for _, name := range result.Recipes {
				r, ok := cat.Get(name)
				require.True(t, ok)
				want += r.TotalCost()
			}
			assert.InDelta(t, want, result.TotalCost, 0.001)
		})
	}
}

func TestPlanVegetarianScenario(t *testing.T) {
	result := Plan(catalog.Default(), "Plan 3 vegetarian dinners under $50")

	assert.Equal(t, []string{"Spaghetti Aglio e Olio", "Black Bean Tacos", "Lentil Soup"}, result.Recipes)
	assert.InDelta(t, 21.00, result.TotalCost, 0.001)
	assert.False(t, result.OverBudget())
	assert.True(t, result.NeedsCostReview)
}

func TestPlanSharedIngredients(t *testing.T) {
	result := Plan(catalog.Default(), "plan 6 dinners")

	// The first six recipes share mixed vegetables, soy sauce, rice and
	// olive oil.
	assert.Contains(t, result.SharedItems, "mixed vegetables")
	assert.Contains(t, result.SharedItems, "soy sauce")
	assert.Contains(t, result.SharedItems, "rice")
	assert.Contains(t, result.SharedItems, "olive oil")

	// Olive oil appears with both cup and tbsp units, so it occupies
	// two rows.
	var oliveOilRows []Entry
	for _, e := range result.ShoppingList {
		if e.Item == "olive oil" {
			oliveOilRows = append(oliveOilRows, e)
		}
	}
	require.Len(t, oliveOilRows, 2)
}

func TestPlanEmptySelection(t *testing.T) {
	cat, err := catalog.New([]catalog.Recipe{
		{Name: "Beef Stew", Ingredients: []catalog.Ingredient{{Item: "beef", Quantity: 1, Unit: "lb", Price: 6}}},
	})
	require.NoError(t, err)

	result := PlanWithPreferences(cat, PreferenceRecord{Tags: []catalog.Tag{catalog.TagVegan}})
	assert.True(t, result.Empty())
	assert.False(t, result.NeedsCostReview)
	assert.NotEmpty(t, result.Message)
	assert.Zero(t, result.TotalCost)
}

func TestPlanIsIdempotent(t *testing.T) {
	cat := catalog.Default()

	first := Plan(cat, "Plan 3 vegetarian dinners under $50")
	second := Plan(cat, "Plan 3 vegetarian dinners under $50")
	assert.Equal(t, first, second)
}

func TestRenderMarkdown(t *testing.T) {
	result := Plan(catalog.Default(), "Plan 3 vegetarian dinners under $50")
	out := RenderMarkdown(result)

	assert.Contains(t, out, "Spaghetti Aglio e Olio")
	assert.Contains(t, out, "Shopping List")
	assert.Contains(t, out, "$21.00")

	empty := Result{Message: "No recipes in the catalog match the requested dietary preferences."}
	assert.Contains(t, RenderMarkdown(empty), "No recipes")
}
