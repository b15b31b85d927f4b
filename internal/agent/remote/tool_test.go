package remote

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/memory"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/a2aproject/a2a-go/a2a"
)

type stubPlanner struct {
	plan string
	err  error

	gotRequest string
}

func (s *stubPlanner) Plan(ctx context.Context, request string) (string, error) {
	s.gotRequest = request
	return s.plan, s.err
}

// mockState implements session.State for testing.
type mockState struct {
	data map[string]any
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
		state:   &mockState{data: make(map[string]any)},
		actions: &session.EventActions{StateDelta: make(map[string]any)},
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

func TestPlanHandlerRelaysRequest(t *testing.T) {
	stub := &stubPlanner{plan: "## Meal Plan\n3 recipes"}
	handler := planHandler(stub)

	result, err := handler(newMockToolContext(), PlanRecipesArgs{Request: "3 vegetarian dinners"})
	require.NoError(t, err)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "## Meal Plan\n3 recipes", result.Plan)
	assert.Equal(t, "3 vegetarian dinners", stub.gotRequest)
}

func TestPlanHandlerRemoteError(t *testing.T) {
	stub := &stubPlanner{err: errors.New("connection refused")}
	handler := planHandler(stub)

	result, err := handler(newMockToolContext(), PlanRecipesArgs{Request: "3 dinners"})
	require.NoError(t, err)

	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Message, "connection refused")
}

func TestPlanHandlerEmptyRequest(t *testing.T) {
	handler := planHandler(&stubPlanner{})

	result, err := handler(newMockToolContext(), PlanRecipesArgs{})
	require.NoError(t, err)
	assert.Equal(t, "error", result.Status)
}

func TestPartsText(t *testing.T) {
	text := partsText([]a2a.Part{
		a2a.TextPart{Text: "first"},
		&a2a.TextPart{Text: "second"},
	})
	assert.Equal(t, "first\nsecond", text)
}
