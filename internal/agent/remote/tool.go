package remote

import (
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// PlanRecipesArgs defines the input for the relayed plan_recipes tool.
type PlanRecipesArgs struct {
	// Request is the user's meal planning request, passed verbatim.
	Request string `json:"request"`
}

// PlanRecipesResult is returned after calling the tool.
type PlanRecipesResult struct {
	Status  string `json:"status"`
	Plan    string `json:"plan,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewPlanRecipesTool creates a plan_recipes tool that relays requests
// to a remote planning agent. It lets the orchestrator use an A2A
// planner in place of the in-process sub-agent.
func NewPlanRecipesTool(planner Planner) (tool.Tool, error) {
	return functiontool.New(functiontool.Config{
		Name: "plan_recipes",
		Description: `Plan dinner recipes and build a consolidated shopping list.

Pass the user's request verbatim. The request is handled by a remote
recipe planning agent; the returned plan lists the selected recipes and
the consolidated shopping list with costs.`,
	}, planHandler(planner))
}

func planHandler(planner Planner) func(ctx tool.Context, args PlanRecipesArgs) (PlanRecipesResult, error) {
	return func(ctx tool.Context, args PlanRecipesArgs) (PlanRecipesResult, error) {
		if args.Request == "" {
			return PlanRecipesResult{
				Status:  "error",
				Message: "request is required",
			}, nil
		}

		plan, err := planner.Plan(ctx, args.Request)
		if err != nil {
			return PlanRecipesResult{
				Status:  "error",
				Message: err.Error(),
			}, nil
		}

		return PlanRecipesResult{
			Status: "success",
			Plan:   plan,
		}, nil
	}
}
