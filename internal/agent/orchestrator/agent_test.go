package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moolen/pantry/internal/agent/budget"
	pantrymodel "github.com/moolen/pantry/internal/agent/model"
	"github.com/moolen/pantry/internal/agent/planneragent"
	"github.com/moolen/pantry/internal/catalog"
)

func TestNewOrchestrator(t *testing.T) {
	llm := pantrymodel.NewMockLLM()
	cat := catalog.Default()

	plannerAgent, err := planneragent.New(llm, cat)
	require.NoError(t, err)
	budgetAgent, err := budget.New(llm, cat)
	require.NoError(t, err)

	a, err := New(Config{
		Model:   llm,
		Planner: plannerAgent,
		Budget:  budgetAgent,
	})
	require.NoError(t, err)
	assert.Equal(t, AgentName, a.Name())
}

func TestNewOrchestratorValidation(t *testing.T) {
	llm := pantrymodel.NewMockLLM()

	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Model: llm})
	assert.Error(t, err)
}
