package planneragent

import (
	"context"
	"encoding/json"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/memory"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	pantrymodel "github.com/moolen/pantry/internal/agent/model"
	"github.com/moolen/pantry/internal/catalog"
	"github.com/moolen/pantry/internal/planner"
)

// mockState implements session.State for testing.
type mockState struct {
	data map[string]any
}

func newMockState() *mockState {
	return &mockState{data: make(map[string]any)}
}

func (m *mockState) Get(key string) (any, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, session.ErrStateKeyNotExist
}

func (m *mockState) Set(key string, value any) error {
	m.data[key] = value
	return nil
}

func (m *mockState) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for k, v := range m.data {
			if !yield(k, v) {
				return
			}
		}
	}
}

// mockToolContext implements tool.Context for testing.
type mockToolContext struct {
	context.Context
	state   *mockState
	actions *session.EventActions
}

func newMockToolContext() *mockToolContext {
	return &mockToolContext{
		Context: context.Background(),
		state:   newMockState(),
		actions: &session.EventActions{
			StateDelta: make(map[string]any),
		},
	}
}

func (m *mockToolContext) FunctionCallID() string         { return "test-function-call-id" }
func (m *mockToolContext) Actions() *session.EventActions { return m.actions }
func (m *mockToolContext) SearchMemory(ctx context.Context, query string) (*memory.SearchResponse, error) {
	return &memory.SearchResponse{}, nil
}
func (m *mockToolContext) Artifacts() agent.Artifacts           { return nil }
func (m *mockToolContext) State() session.State                 { return m.state }
func (m *mockToolContext) UserContent() *genai.Content          { return nil }
func (m *mockToolContext) InvocationID() string                 { return "test-invocation-id" }
func (m *mockToolContext) AgentName() string                    { return "test-agent" }
func (m *mockToolContext) ReadonlyState() session.ReadonlyState { return m.state }
func (m *mockToolContext) UserID() string                       { return "test-user" }
func (m *mockToolContext) AppName() string                      { return "test-app" }
func (m *mockToolContext) SessionID() string                    { return "test-session" }
func (m *mockToolContext) Branch() string                       { return "" }

func TestPlanRecipesHandler(t *testing.T) {
	ctx := newMockToolContext()
	handler := planRecipesHandler(catalog.Default(), nil)

	result, err := handler(ctx, PlanRecipesArgs{Request: "Plan 3 vegetarian dinners under $50"})
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 3, result.RecipeCount)
	assert.Equal(t, []string{"Spaghetti Aglio e Olio", "Black Bean Tacos", "Lentil Soup"}, result.Recipes)
	assert.InDelta(t, 21.00, result.TotalCost, 0.001)
	assert.True(t, result.NeedsCostReview)
	assert.Contains(t, result.Summary, "Shopping List")

	// Full plan is stored for the budget agent.
	raw, ok := ctx.actions.StateDelta[StateKeyMealPlan]
	require.True(t, ok)

	var plan planner.Result
	require.NoError(t, json.Unmarshal([]byte(raw.(string)), &plan))
	assert.Len(t, plan.Recipes, 3)
	assert.True(t, plan.NeedsCostReview)
}

func TestPlanRecipesHandlerNoMatch(t *testing.T) {
	ctx := newMockToolContext()
	cat, err := catalog.New([]catalog.Recipe{
		{
			Name:        "Chicken Stir-Fry",
			Ingredients: []catalog.Ingredient{{Item: "chicken breast", Quantity: 1, Unit: "lb", Price: 5.99}},
			Tags:        []catalog.Tag{catalog.TagGlutenFree},
		},
	})
	require.NoError(t, err)
	handler := planRecipesHandler(cat, nil)

	result, err := handler(ctx, PlanRecipesArgs{Request: "plan 2 vegan dinners"})
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.Zero(t, result.RecipeCount)
	assert.False(t, result.NeedsCostReview)
	assert.NotEmpty(t, result.Message)
}

func TestPlanRecipesHandlerEmptyRequest(t *testing.T) {
	ctx := newMockToolContext()
	handler := planRecipesHandler(catalog.Default(), nil)

	result, err := handler(ctx, PlanRecipesArgs{})
	require.NoError(t, err)
	assert.Equal(t, "error", result.Status)
}

func TestNewAgent(t *testing.T) {
	a, err := New(pantrymodel.NewMockLLM(), catalog.Default())
	require.NoError(t, err)
	assert.Equal(t, AgentName, a.Name())
}
