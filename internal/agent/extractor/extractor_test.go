package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pantrymodel "github.com/moolen/pantry/internal/agent/model"
	"github.com/moolen/pantry/internal/catalog"
)

func TestExtractStructuredOutput(t *testing.T) {
	llm := pantrymodel.NewMockLLM(pantrymodel.ScriptedStep{
		Text: `{"dietary_preferences": ["vegetarian", "gluten free"], "num_recipes": 3, "budget": 40}`,
	})

	prefs := New(llm).Extract(context.Background(), "3 vegetarian gluten free dinners for $40")

	assert.Equal(t, []catalog.Tag{catalog.TagVegetarian, catalog.TagGlutenFree}, prefs.Tags)
	assert.Equal(t, 3, prefs.NumRecipes)
	assert.InDelta(t, 40.0, prefs.Budget, 0.001)
}

func TestExtractAppliesDefaults(t *testing.T) {
	llm := pantrymodel.NewMockLLM(pantrymodel.ScriptedStep{
		Text: `{"dietary_preferences": [], "num_recipes": 0, "budget": 0}`,
	})

	prefs := New(llm).Extract(context.Background(), "plan some dinners")

	assert.Empty(t, prefs.Tags)
	assert.Equal(t, 5, prefs.NumRecipes)
	assert.InDelta(t, 50.0, prefs.Budget, 0.001)
}

func TestExtractDropsUnknownTags(t *testing.T) {
	llm := pantrymodel.NewMockLLM(pantrymodel.ScriptedStep{
		Text: `{"dietary_preferences": ["vegan", "paleo"], "num_recipes": 2, "budget": 30}`,
	})

	prefs := New(llm).Extract(context.Background(), "2 vegan paleo dinners for $30")

	assert.Equal(t, []catalog.Tag{catalog.TagVegan}, prefs.Tags)
}

func TestExtractFallsBackOnGarbage(t *testing.T) {
	llm := pantrymodel.NewMockLLM(pantrymodel.ScriptedStep{
		Text: "I could not help with that.",
	})

	prefs := New(llm).Extract(context.Background(), "Plan 3 vegetarian dinners under $50")

	// Keyword extraction still finds everything.
	require.Equal(t, []catalog.Tag{catalog.TagVegetarian}, prefs.Tags)
	assert.Equal(t, 3, prefs.NumRecipes)
	assert.InDelta(t, 50.0, prefs.Budget, 0.001)
}
