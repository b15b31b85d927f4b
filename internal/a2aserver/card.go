// Package a2aserver exposes the recipe planning agent over the A2A
// protocol so other agent processes can delegate planning requests.
package a2aserver

import (
	"github.com/a2aproject/a2a-go/a2a"
)

// NewAgentCard builds the agent card served at the well-known path.
func NewAgentCard(baseURL, version string) *a2a.AgentCard {
	return &a2a.AgentCard{
		Name:               "recipe_planner_agent",
		Description:        "Plans dinner recipes from a catalog based on dietary preferences and builds a consolidated shopping list with costs.",
		URL:                baseURL,
		Version:            version,
		ProtocolVersion:    "1.0",
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain"},
		Skills: []a2a.AgentSkill{
			{
				ID:          "meal_planning",
				Name:        "Meal Planning",
				Description: "Selects recipes matching dietary preferences and consolidates their ingredients into a shopping list.",
				Tags:        []string{"recipes", "meal-planning", "shopping-list"},
				Examples: []string{
					"Plan 3 vegetarian dinners under $50",
					"I need 5 gluten-free meals",
				},
			},
		},
		Capabilities: a2a.AgentCapabilities{
			Streaming:              true,
			PushNotifications:      false,
			StateTransitionHistory: false,
		},
		PreferredTransport: a2a.TransportProtocolJSONRPC,
	}
}
