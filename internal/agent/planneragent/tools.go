package planneragent

import (
	"encoding/json"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"github.com/moolen/pantry/internal/agent/extractor"
	"github.com/moolen/pantry/internal/catalog"
	"github.com/moolen/pantry/internal/planner"
)

// StateKeyMealPlan is the session state key holding the full plan result.
const StateKeyMealPlan = "meal_plan"

// PlanRecipesArgs defines the input for the plan_recipes tool.
type PlanRecipesArgs struct {
	// Request is the user's meal planning request, passed verbatim.
	Request string `json:"request"`
}

// PlanRecipesResult is returned after calling the tool.
type PlanRecipesResult struct {
	Status          string  `json:"status"`
	Preferences     string  `json:"preferences"`
	RecipeCount     int     `json:"recipe_count"`
	Recipes         []string `json:"recipes,omitempty"`
	TotalCost       float64 `json:"total_cost"`
	NeedsCostReview bool    `json:"needs_cost_review"`
	Summary         string  `json:"summary,omitempty"`
	Message         string  `json:"message,omitempty"`
}

// NewPlanRecipesTool creates the plan_recipes tool backed by the
// deterministic planning pipeline. When ex is non-nil, preference
// extraction goes through the model's structured output first; the
// keyword extractor remains the fallback.
func NewPlanRecipesTool(cat *catalog.Catalog, ex *extractor.Extractor) (tool.Tool, error) {
	return functiontool.New(functiontool.Config{
		Name: "plan_recipes",
		Description: `Plan dinner recipes and build a consolidated shopping list.

Pass the user's request verbatim. The tool extracts dietary preferences,
recipe count and budget from the text, selects matching recipes from the
catalog, detects shared ingredients and merges them into a single
shopping list with summed quantities and costs.

Returns the selected recipe names, the total cost and a markdown
summary. needs_cost_review is true when the plan should be handed to
the budget agent for a cost check.`,
	}, planRecipesHandler(cat, ex))
}

func planRecipesHandler(cat *catalog.Catalog, ex *extractor.Extractor) func(ctx tool.Context, args PlanRecipesArgs) (PlanRecipesResult, error) {
	return func(ctx tool.Context, args PlanRecipesArgs) (PlanRecipesResult, error) {
		if args.Request == "" {
			return PlanRecipesResult{
				Status:  "error",
				Message: "request is required",
			}, nil
		}

		var result planner.Result
		if ex != nil {
			prefs := ex.Extract(ctx, args.Request)
			result = planner.PlanWithPreferences(cat, prefs)
		} else {
			result = planner.Plan(cat, args.Request)
		}

		// Store the full plan for the budget agent.
		planJSON, err := json.Marshal(result)
		if err == nil {
			actions := ctx.Actions()
			if actions.StateDelta == nil {
				actions.StateDelta = make(map[string]any)
			}
			actions.StateDelta[StateKeyMealPlan] = string(planJSON)
		}

		if result.Empty() {
			return PlanRecipesResult{
				Status:          "success",
				Preferences:     result.Preferences.Describe(),
				NeedsCostReview: false,
				Message:         result.Message,
			}, nil
		}

		return PlanRecipesResult{
			Status:          "success",
			Preferences:     result.Preferences.Describe(),
			RecipeCount:     len(result.Recipes),
			Recipes:         result.Recipes,
			TotalCost:       result.TotalCost,
			NeedsCostReview: result.NeedsCostReview,
			Summary:         planner.RenderMarkdown(result),
		}, nil
	}
}
