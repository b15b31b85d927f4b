package planner

import (
	"fmt"
	"strings"
)

// RenderMarkdown formats a planning result as markdown, the shape the
// agents hand back to the user.
func RenderMarkdown(r Result) string {
	var b strings.Builder

	if r.Empty() {
		b.WriteString("## Meal Plan\n\n")
		b.WriteString(r.Message)
		b.WriteString("\n")
		return b.String()
	}

	fmt.Fprintf(&b, "## Meal Plan (%s)\n\n", r.Preferences.Describe())

	b.WriteString("### Selected Recipes\n\n")
	for i, name := range r.Recipes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}

	if len(r.SharedItems) > 0 {
		fmt.Fprintf(&b, "\nIngredient overlap found for: %s\n", strings.Join(r.SharedItems, ", "))
	}

	b.WriteString("\n### Shopping List\n\n")
	for _, e := range r.ShoppingList {
		fmt.Fprintf(&b, "- %s: %s %s ($%.2f)\n", e.Item, formatQuantity(e.Quantity), e.Unit, e.Cost)
	}

	fmt.Fprintf(&b, "\n**Total cost: $%.2f** (budget $%.2f)\n", r.TotalCost, r.Preferences.Budget)
	if r.OverBudget() {
		b.WriteString("\nThe plan exceeds the budget; consider substitutions.\n")
	}

	return b.String()
}

func formatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%.2g", q)
}
