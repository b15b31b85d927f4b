package budget

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
	"github.com/moolen/pantry/internal/agent/planneragent"
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

func TestCalculateShoppingCost(t *testing.T) {
	ctx := newMockToolContext()

	result, err := calculateShoppingCost(ctx, CalculateShoppingCostArgs{
		Items: []ShoppingItem{
			{Item: "spaghetti", Quantity: 1, Unit: "lb", Cost: 1.50},
			{Item: "garlic", Quantity: 1, Unit: "bulb", Cost: 0.75},
			{Item: "olive oil", Quantity: 0.5, Unit: "cup", Cost: 2.00},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 3, result.ItemCount)
	assert.InDelta(t, 4.25, result.TotalCost, 0.001)
}

func TestCalculateShoppingCostFromState(t *testing.T) {
	ctx := newMockToolContext()

	plan := planner.Plan(catalog.Default(), "Plan 3 vegetarian dinners under $50")
	planJSON, err := json.Marshal(plan)
	require.NoError(t, err)
	require.NoError(t, ctx.state.Set(planneragent.StateKeyMealPlan, string(planJSON)))

	result, err := calculateShoppingCost(ctx, CalculateShoppingCostArgs{})
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.InDelta(t, 21.00, result.TotalCost, 0.001)
}

func TestCalculateShoppingCostNoInput(t *testing.T) {
	ctx := newMockToolContext()

	result, err := calculateShoppingCost(ctx, CalculateShoppingCostArgs{})
	require.NoError(t, err)
	assert.Equal(t, "error", result.Status)
}

func TestCheckBudgetWithin(t *testing.T) {
	ctx := newMockToolContext()

	result, err := checkBudget(ctx, CheckBudgetArgs{TotalCost: 21.00, Budget: 50})
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.True(t, result.WithinBudget)
	assert.InDelta(t, 29.00, result.Difference, 0.001)
	assert.Contains(t, result.Message, "Within budget")

	_, ok := ctx.actions.StateDelta[StateKeyBudgetCheck]
	assert.True(t, ok)
}

func TestCheckBudgetOver(t *testing.T) {
	ctx := newMockToolContext()

	result, err := checkBudget(ctx, CheckBudgetArgs{TotalCost: 60.00, Budget: 50})
	require.NoError(t, err)

	assert.False(t, result.WithinBudget)
	assert.InDelta(t, -10.00, result.Difference, 0.001)
	assert.Contains(t, result.Message, "Over budget by $10.00")
}

func TestCheckBudgetDefault(t *testing.T) {
	ctx := newMockToolContext()

	result, err := checkBudget(ctx, CheckBudgetArgs{TotalCost: 40.00})
	require.NoError(t, err)

	assert.InDelta(t, planner.DefaultBudget, result.Budget, 0.001)
	assert.True(t, result.WithinBudget)
}

func TestSuggestSubstitutions(t *testing.T) {
	ctx := newMockToolContext()
	handler := suggestSubstitutionsHandler(catalog.Default())

	result, err := handler(ctx, SuggestSubstitutionsArgs{
		Recipes: []string{"Mushroom Risotto", "Greek Salad"},
	})
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	require.Len(t, result.Substitutions, 2)

	// Most expensive selection is swapped with the cheapest alternative.
	assert.Equal(t, "Mushroom Risotto", result.Substitutions[0].Replace)
	assert.Equal(t, "Spaghetti Aglio e Olio", result.Substitutions[0].With)
	assert.InDelta(t, 10.50, result.Substitutions[0].Savings, 0.001)

	assert.Equal(t, "Greek Salad", result.Substitutions[1].Replace)
	assert.Equal(t, "Veggie Fried Rice", result.Substitutions[1].With)
	assert.InDelta(t, 6.25, result.Substitutions[1].Savings, 0.001)
}

func TestSuggestSubstitutionsUnknownRecipe(t *testing.T) {
	ctx := newMockToolContext()
	handler := suggestSubstitutionsHandler(catalog.Default())

	result, err := handler(ctx, SuggestSubstitutionsArgs{Recipes: []string{"Beef Wellington"}})
	require.NoError(t, err)
	assert.Equal(t, "error", result.Status)
}

func TestSuggestSubstitutionsValidation(t *testing.T) {
	ctx := newMockToolContext()
	handler := suggestSubstitutionsHandler(catalog.Default())

	result, err := handler(ctx, SuggestSubstitutionsArgs{})
	require.NoError(t, err)
	assert.Equal(t, "error", result.Status)
}

func TestNewAgent(t *testing.T) {
	a, err := New(pantrymodel.NewMockLLM(), catalog.Default())
	require.NoError(t, err)
	assert.Equal(t, AgentName, a.Name())
}
