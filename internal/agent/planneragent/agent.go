// Package planneragent implements the recipe planning agent. It wraps
// the deterministic four-stage planning pipeline as an ADK agent so the
// orchestrator can delegate to it.
package planneragent

import (
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/tool"

	"github.com/moolen/pantry/internal/agent/extractor"
	"github.com/moolen/pantry/internal/catalog"
)

// AgentName is the name of the recipe planning agent.
const AgentName = "recipe_planner_agent"

// AgentDescription describes the agent's purpose.
const AgentDescription = "Plans dinner recipes from the catalog based on dietary preferences and builds a consolidated shopping list."

const instruction = `You are a recipe planning agent.

Your workflow:
1. Read the user's request for dietary preferences, number of recipes and budget
2. Call the plan_recipes tool with the user's request verbatim
3. Report the resulting meal plan back, listing every selected recipe by name

The plan_recipes tool runs the full planning pipeline: it extracts
preferences, selects matching recipes, detects ingredient overlap and
consolidates the shopping list. Call it exactly once per request.

If the tool reports that the plan needs a cost review, say so so the
budget agent can take over.`

// New creates the recipe planning agent. Preference extraction inside
// the plan_recipes tool uses the same model via structured output,
// falling back to keyword matching when the model call fails.
func New(llm model.LLM, cat *catalog.Catalog) (agent.Agent, error) {
	planTool, err := NewPlanRecipesTool(cat, extractor.New(llm))
	if err != nil {
		return nil, err
	}

	return llmagent.New(llmagent.Config{
		Name:            AgentName,
		Description:     AgentDescription,
		Model:           llm,
		Instruction:     instruction,
		Tools:           []tool.Tool{planTool},
		IncludeContents: llmagent.IncludeContentsDefault,
	})
}
