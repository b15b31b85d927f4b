// Package mcp exposes the recipe catalog over the Model Context
// Protocol using mcp-go.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/moolen/pantry/internal/catalog"
	"github.com/moolen/pantry/internal/logging"
	"github.com/moolen/pantry/internal/mcp/tools"
	"github.com/moolen/pantry/internal/metrics"
)

// Tool defines the interface for our tool implementations.
type Tool interface {
	Execute(ctx context.Context, input json.RawMessage) (interface{}, error)
}

// RecipeServer wraps an mcp-go server with the recipe catalog tools,
// resources and prompts.
type RecipeServer struct {
	mcpServer *server.MCPServer
	catalog   *catalog.Catalog
	tools     map[string]Tool
	metrics   *metrics.Metrics
	logger    *logging.Logger
	version   string
}

// ServerOptions configures the recipe MCP server.
type ServerOptions struct {
	Catalog *catalog.Catalog
	Version string
	Metrics *metrics.Metrics
}

// NewRecipeServer creates the recipe MCP server and registers all
// tools, resources and prompts.
func NewRecipeServer(opts ServerOptions) (*RecipeServer, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("catalog must not be nil")
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	mcpServer := server.NewMCPServer(
		"Recipe Database Server",
		opts.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithLogging(),
	)

	s := &RecipeServer{
		mcpServer: mcpServer,
		catalog:   opts.Catalog,
		tools:     make(map[string]Tool),
		metrics:   opts.Metrics,
		logger:    logging.GetLogger("mcp"),
		version:   opts.Version,
	}

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s, nil
}

func (s *RecipeServer) registerTools() {
	s.registerTool(
		"search_recipes_by_name",
		"Search for recipes by name (case-insensitive partial match)",
		tools.NewSearchRecipesByNameTool(s.catalog),
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The search term to look for in recipe names",
				},
			},
			"required": []string{"query"},
		},
	)

	s.registerTool(
		"filter_recipes_by_tags",
		"Filter recipes by dietary tags. Returns recipes matching ANY of the given tags.",
		tools.NewFilterRecipesByTagsTool(s.catalog),
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"tags": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Dietary tags to filter by (vegetarian, vegan, gluten-free, low-carb)",
				},
			},
			"required": []string{"tags"},
		},
	)

	s.registerTool(
		"get_recipe_details",
		"Get complete details for a recipe including ingredients with quantities and prices",
		tools.NewGetRecipeDetailsTool(s.catalog),
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"recipe_name": map[string]interface{}{
					"type":        "string",
					"description": "The exact recipe name (case-insensitive)",
				},
			},
			"required": []string{"recipe_name"},
		},
	)

	s.registerTool(
		"list_all_recipes",
		"List all recipes in the catalog with tags and estimated costs",
		tools.NewListAllRecipesTool(s.catalog),
		map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	)

	s.registerTool(
		"search_by_ingredient",
		"Find all recipes containing a specific ingredient (case-insensitive partial match)",
		tools.NewSearchByIngredientTool(s.catalog),
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"ingredient": map[string]interface{}{
					"type":        "string",
					"description": "The ingredient to search for",
				},
			},
			"required": []string{"ingredient"},
		},
	)

	s.registerTool(
		"get_recipes_by_budget",
		"Find recipes whose total cost is within a budget, cheapest first",
		tools.NewGetRecipesByBudgetTool(s.catalog),
		map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"max_budget": map[string]interface{}{
					"type":        "number",
					"description": "Maximum budget per recipe in dollars",
				},
			},
			"required": []string{"max_budget"},
		},
	)
}

func (s *RecipeServer) registerTool(name, description string, tool Tool, inputSchema map[string]interface{}) {
	s.tools[name] = tool

	schemaJSON, err := json.Marshal(inputSchema)
	if err != nil {
		// Schemas are static; a marshal failure is a programming error.
		panic(fmt.Sprintf("failed to marshal schema for tool %s: %v", name, err))
	}

	mcpTool := mcp.NewToolWithRawSchema(name, description, schemaJSON)
	s.mcpServer.AddTool(mcpTool, s.createToolHandler(name, tool))
}

func (s *RecipeServer) createToolHandler(name string, tool Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		args, err := json.Marshal(request.Params.Arguments)
		if err != nil {
			s.metrics.ToolCalls.WithLabelValues(name, "error").Inc()
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		result, err := tool.Execute(ctx, args)
		s.metrics.ToolDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		if err != nil {
			s.metrics.ToolCalls.WithLabelValues(name, "error").Inc()
			s.logger.WarnWithFields("tool call failed",
				logging.Field("tool", name),
				logging.Field("error", err.Error()),
			)
			return mcp.NewToolResultError(fmt.Sprintf("Tool execution failed: %v", err)), nil
		}

		resultJSON, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			s.metrics.ToolCalls.WithLabelValues(name, "error").Inc()
			return mcp.NewToolResultError(fmt.Sprintf("Failed to format result: %v", err)), nil
		}

		s.metrics.ToolCalls.WithLabelValues(name, "ok").Inc()
		s.logger.DebugWithFields("tool call complete",
			logging.Field("tool", name),
			logging.Field("duration_ms", time.Since(start).Milliseconds()),
		)
		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func (s *RecipeServer) registerPrompts() {
	planMealsPrompt := mcp.Prompt{
		Name:        "plan_meals",
		Description: "Plan a set of meals and build a consolidated shopping list",
		Arguments: []mcp.PromptArgument{
			{Name: "num_recipes", Description: "How many recipes to plan (default 5)", Required: false},
			{Name: "dietary_preferences", Description: "Optional dietary restrictions (e.g. vegetarian, gluten-free)", Required: false},
			{Name: "budget", Description: "Budget in dollars (default 50)", Required: false},
		},
	}

	s.mcpServer.AddPrompt(planMealsPrompt, func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		numRecipes := request.Params.Arguments["num_recipes"]
		if numRecipes == "" {
			numRecipes = "5"
		}
		budget := request.Params.Arguments["budget"]
		if budget == "" {
			budget = "50"
		}
		prefs := request.Params.Arguments["dietary_preferences"]

		text := fmt.Sprintf("Plan %s dinners with a total budget of $%s.", numRecipes, budget)
		if prefs != "" {
			text += fmt.Sprintf(" Dietary preferences: %s.", prefs)
		}
		text += " Use list_all_recipes and filter_recipes_by_tags to pick recipes, then get_recipe_details to build a consolidated shopping list."

		return &mcp.GetPromptResult{
			Description: "Meal planning workflow",
			Messages: []mcp.PromptMessage{
				{
					Role: mcp.RoleUser,
					Content: mcp.TextContent{
						Type: "text",
						Text: text,
					},
				},
			},
		}, nil
	})
}

// GetMCPServer returns the underlying mcp-go server for transport setup.
func (s *RecipeServer) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}
