// Package budget implements the budget optimization agent. Instead of
// generating and executing code, cost arithmetic runs in deterministic
// function tools.
package budget

import (
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/tool"

	"github.com/moolen/pantry/internal/catalog"
)

// AgentName is the name of the budget optimization agent.
const AgentName = "budget_optimizer_agent"

// AgentDescription describes the agent's purpose.
const AgentDescription = "Calculates shopping list costs, checks budget compliance and suggests cheaper recipe substitutions."

const instruction = `You are a budget optimization specialist.

Your tasks:
1. Calculate the total cost of a shopping list with calculate_shopping_cost
2. Check the total against the budget with check_budget
3. If the plan is over budget, call suggest_substitutions to find cheaper recipes

Never estimate costs yourself. Always use the tools: they compute exact
totals from the item costs. Report the total cost, whether the plan is
within budget, and any substitution suggestions.`

// New creates the budget optimization agent.
func New(llm model.LLM, cat *catalog.Catalog) (agent.Agent, error) {
	calcTool, err := NewCalculateShoppingCostTool()
	if err != nil {
		return nil, err
	}
	checkTool, err := NewCheckBudgetTool()
	if err != nil {
		return nil, err
	}
	substTool, err := NewSuggestSubstitutionsTool(cat)
	if err != nil {
		return nil, err
	}

	return llmagent.New(llmagent.Config{
		Name:            AgentName,
		Description:     AgentDescription,
		Model:           llm,
		Instruction:     instruction,
		Tools:           []tool.Tool{calcTool, checkTool, substTool},
		IncludeContents: llmagent.IncludeContentsDefault,
	})
}
