// Package orchestrator implements the top-level meal planning agent.
// It coordinates the recipe planning agent and the budget optimization
// agent to deliver a complete meal plan.
package orchestrator

import (
	"fmt"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/tool"
)

// AgentName is the name of the orchestrator agent.
const AgentName = "meal_plan_orchestrator"

// AgentDescription describes the agent's purpose.
const AgentDescription = "Coordinates recipe planning and budget optimization to deliver a complete meal plan."

const instruction = `You are a meal planning orchestrator.

When users request meal plans:
1. Delegate to recipe_planner_agent to handle the recipe selection workflow
2. Once the recipe planner provides a consolidated shopping list, delegate to budget_optimizer_agent to:
   - Calculate the total cost of the shopping list
   - Check budget compliance
   - Suggest substitutions if over budget

Coordinate between both agents to deliver a complete meal plan.

IMPORTANT: When providing feedback to the user, list ALL the recipe
names that were selected by the recipe planner. Do not summarize or
truncate the recipe list.

FORMAT YOUR RESPONSE EXACTLY AS FOLLOWS:

Here is your meal plan:

1.  [Recipe Name 1]
2.  [Recipe Name 2]
3.  [Recipe Name 3]

Here is your shopping list:

*   [Ingredient 1]: [quantity]
*   [Ingredient 2]: [quantity]

And here are the estimated prices:

*   [Ingredient 1] ([quantity]): $[price]
*   [Ingredient 2] ([quantity]): $[price]

Total cost: $[total]
Enjoy your meals!`

// Config configures the orchestrator agent.
type Config struct {
	Model model.LLM
	// Planner handles recipe selection. Optional when a remote planner
	// relay tool is given instead.
	Planner agent.Agent
	// Budget handles cost checks.
	Budget agent.Agent
	// Tools are additional tools, e.g. the remote planner relay.
	Tools []tool.Tool
}

// New creates the orchestrator agent.
func New(cfg Config) (agent.Agent, error) {
	if cfg.Model == nil {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.Planner == nil && len(cfg.Tools) == 0 {
		return nil, fmt.Errorf("a planner agent or a planner tool is required")
	}

	var subAgents []agent.Agent
	if cfg.Planner != nil {
		subAgents = append(subAgents, cfg.Planner)
	}
	if cfg.Budget != nil {
		subAgents = append(subAgents, cfg.Budget)
	}

	return llmagent.New(llmagent.Config{
		Name:            AgentName,
		Description:     AgentDescription,
		Model:           cfg.Model,
		Instruction:     instruction,
		Tools:           cfg.Tools,
		SubAgents:       subAgents,
		IncludeContents: llmagent.IncludeContentsDefault,
	})
}
