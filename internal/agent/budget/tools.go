package budget

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"github.com/moolen/pantry/internal/agent/planneragent"
	"github.com/moolen/pantry/internal/catalog"
	"github.com/moolen/pantry/internal/planner"
)

// StateKeyBudgetCheck is the session state key holding the last budget check.
const StateKeyBudgetCheck = "budget_check"

// DefaultBudget is assumed when no budget is given. It matches the
// default the preference extraction applies.
const DefaultBudget = planner.DefaultBudget

// ShoppingItem is one row of a shopping list passed to the cost tools.
type ShoppingItem struct {
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Cost     float64 `json:"cost"`
}

// CalculateShoppingCostArgs defines the input for calculate_shopping_cost.
type CalculateShoppingCostArgs struct {
	// Items is the shopping list. When empty, the tool falls back to
	// the meal plan stored in session state.
	Items []ShoppingItem `json:"items,omitempty"`
}

// CalculateShoppingCostResult is returned after calling the tool.
type CalculateShoppingCostResult struct {
	Status    string  `json:"status"`
	ItemCount int     `json:"item_count"`
	TotalCost float64 `json:"total_cost"`
	Message   string  `json:"message,omitempty"`
}

// NewCalculateShoppingCostTool creates the calculate_shopping_cost tool.
func NewCalculateShoppingCostTool() (tool.Tool, error) {
	return functiontool.New(functiontool.Config{
		Name: "calculate_shopping_cost",
		Description: `Calculate the exact total cost of a shopping list.

Pass the shopping list items with their costs. If items are omitted the
tool reads the most recent meal plan from the session instead. Returns
the item count and the summed total cost.`,
	}, calculateShoppingCost)
}

func calculateShoppingCost(ctx tool.Context, args CalculateShoppingCostArgs) (CalculateShoppingCostResult, error) {
	items := args.Items
	if len(items) == 0 {
		plan, err := planFromState(ctx)
		if err != nil {
			return CalculateShoppingCostResult{
				Status:  "error",
				Message: "no items given and no meal plan in session",
			}, nil
		}
		for _, e := range plan.ShoppingList {
			items = append(items, ShoppingItem{
				Item:     e.Item,
				Quantity: e.Quantity,
				Unit:     e.Unit,
				Cost:     e.Cost,
			})
		}
	}

	var total float64
	for _, it := range items {
		total += it.Cost
	}

	return CalculateShoppingCostResult{
		Status:    "success",
		ItemCount: len(items),
		TotalCost: round2(total),
	}, nil
}

// CheckBudgetArgs defines the input for check_budget.
type CheckBudgetArgs struct {
	TotalCost float64 `json:"total_cost"`
	// Budget defaults to 50 when omitted.
	Budget float64 `json:"budget,omitempty"`
}

// CheckBudgetResult is returned after calling the tool.
type CheckBudgetResult struct {
	Status       string  `json:"status"`
	WithinBudget bool    `json:"within_budget"`
	TotalCost    float64 `json:"total_cost"`
	Budget       float64 `json:"budget"`
	Difference   float64 `json:"difference"`
	Message      string  `json:"message"`
}

// NewCheckBudgetTool creates the check_budget tool.
func NewCheckBudgetTool() (tool.Tool, error) {
	return functiontool.New(functiontool.Config{
		Name: "check_budget",
		Description: `Check a shopping list total against the budget.

The budget defaults to $50 when omitted. Returns whether the total is
within budget and the remaining headroom (or overrun).`,
	}, checkBudget)
}

func checkBudget(ctx tool.Context, args CheckBudgetArgs) (CheckBudgetResult, error) {
	budget := args.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}
	if args.TotalCost < 0 {
		return CheckBudgetResult{
			Status:  "error",
			Message: "total_cost must not be negative",
		}, nil
	}

	within := args.TotalCost <= budget
	diff := round2(budget - args.TotalCost)

	result := CheckBudgetResult{
		Status:       "success",
		WithinBudget: within,
		TotalCost:    round2(args.TotalCost),
		Budget:       budget,
		Difference:   diff,
	}
	if within {
		result.Message = fmt.Sprintf("Within budget: $%.2f of $%.2f used, $%.2f remaining.", result.TotalCost, budget, diff)
	} else {
		result.Message = fmt.Sprintf("Over budget by $%.2f ($%.2f of $%.2f).", -diff, result.TotalCost, budget)
	}

	checkJSON, err := json.Marshal(result)
	if err == nil {
		actions := ctx.Actions()
		if actions.StateDelta == nil {
			actions.StateDelta = make(map[string]any)
		}
		actions.StateDelta[StateKeyBudgetCheck] = string(checkJSON)
	}

	return result, nil
}

// SuggestSubstitutionsArgs defines the input for suggest_substitutions.
type SuggestSubstitutionsArgs struct {
	// Recipes is the currently selected recipe names.
	Recipes []string `json:"recipes"`
	// Budget defaults to 50 when omitted.
	Budget float64 `json:"budget,omitempty"`
}

// Substitution proposes replacing one recipe with a cheaper one.
type Substitution struct {
	Replace string  `json:"replace"`
	With    string  `json:"with"`
	Savings float64 `json:"savings"`
}

// SuggestSubstitutionsResult is returned after calling the tool.
type SuggestSubstitutionsResult struct {
	Status        string         `json:"status"`
	Substitutions []Substitution `json:"substitutions"`
	Message       string         `json:"message,omitempty"`
}

// NewSuggestSubstitutionsTool creates the suggest_substitutions tool.
func NewSuggestSubstitutionsTool(cat *catalog.Catalog) (tool.Tool, error) {
	return functiontool.New(functiontool.Config{
		Name: "suggest_substitutions",
		Description: `Suggest cheaper recipe substitutions for an over-budget plan.

Pass the currently selected recipe names. The tool proposes swapping the
most expensive selections for cheaper recipes from the catalog that are
not already selected, largest savings first.`,
	}, suggestSubstitutionsHandler(cat))
}

func suggestSubstitutionsHandler(cat *catalog.Catalog) func(ctx tool.Context, args SuggestSubstitutionsArgs) (SuggestSubstitutionsResult, error) {
	return func(ctx tool.Context, args SuggestSubstitutionsArgs) (SuggestSubstitutionsResult, error) {
		if len(args.Recipes) == 0 {
			return SuggestSubstitutionsResult{
				Status:  "error",
				Message: "recipes is required",
			}, nil
		}

		selected := make([]catalog.Recipe, 0, len(args.Recipes))
		selectedNames := make(map[string]bool)
		for _, name := range args.Recipes {
			r, ok := cat.Get(name)
			if !ok {
				return SuggestSubstitutionsResult{
					Status:  "error",
					Message: fmt.Sprintf("unknown recipe: %s", name),
				}, nil
			}
			selected = append(selected, r)
			selectedNames[r.Name] = true
		}

		// Unselected alternatives, cheapest first.
		var alternatives []catalog.Recipe
		for _, r := range cat.Recipes() {
			if !selectedNames[r.Name] {
				alternatives = append(alternatives, r)
			}
		}
		sort.SliceStable(alternatives, func(i, j int) bool {
			return alternatives[i].TotalCost() < alternatives[j].TotalCost()
		})

		// Selected recipes, most expensive first.
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].TotalCost() > selected[j].TotalCost()
		})

		result := SuggestSubstitutionsResult{Status: "success", Substitutions: []Substitution{}}
		for i, r := range selected {
			if i >= len(alternatives) {
				break
			}
			alt := alternatives[i]
			savings := r.TotalCost() - alt.TotalCost()
			if savings <= 0 {
				break
			}
			result.Substitutions = append(result.Substitutions, Substitution{
				Replace: r.Name,
				With:    alt.Name,
				Savings: round2(savings),
			})
		}

		if len(result.Substitutions) == 0 {
			result.Message = "No cheaper substitutions available."
		}
		return result, nil
	}
}

func planFromState(ctx tool.Context) (*planner.Result, error) {
	raw, err := ctx.State().Get(planneragent.StateKeyMealPlan)
	if err != nil {
		return nil, err
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected meal plan state type %T", raw)
	}
	var plan planner.Result
	if err := json.Unmarshal([]byte(s), &plan); err != nil {
		return nil, fmt.Errorf("failed to decode meal plan state: %w", err)
	}
	return &plan, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
