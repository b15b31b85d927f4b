package runner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moolen/pantry/internal/agent/audit"
	pantrymodel "github.com/moolen/pantry/internal/agent/model"
	"github.com/moolen/pantry/internal/catalog"
)

func TestRunnerProcessMessage(t *testing.T) {
	tmpDir := t.TempDir()
	auditPath := filepath.Join(tmpDir, "audit.jsonl")

	llm := pantrymodel.NewMockLLM(
		pantrymodel.ScriptedStep{Text: "Here is your meal plan:\n\n1. Spaghetti Aglio e Olio\n\nTotal cost: $4.50\nEnjoy your meals!"},
	)

	var out bytes.Buffer
	ctx := context.Background()

	r, err := New(ctx, Config{
		Model:        "mock",
		Catalog:      catalog.Default(),
		AuditLogPath: auditPath,
		LLM:          llm,
		Output:       &out,
	})
	require.NoError(t, err)
	require.NoError(t, r.Start(ctx))

	text, err := r.ProcessMessage(ctx, "plan 1 vegetarian dinner")
	require.NoError(t, err)
	assert.Contains(t, text, "Spaghetti Aglio e Olio")

	requests, inputTokens, outputTokens := r.TokenUsage()
	assert.Equal(t, 1, requests)
	assert.Positive(t, inputTokens)
	assert.Positive(t, outputTokens)

	require.NoError(t, r.Close())

	// Audit log has session lifecycle events.
	file, err := os.Open(auditPath)
	require.NoError(t, err)
	defer file.Close()

	var types []audit.EventType
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var event audit.Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event))
		types = append(types, event.Type)
	}
	require.NoError(t, scanner.Err())

	assert.Contains(t, types, audit.EventTypeSessionStart)
	assert.Contains(t, types, audit.EventTypeUserMessage)
	assert.Contains(t, types, audit.EventTypeLLMRequest)
	assert.Contains(t, types, audit.EventTypeSessionMetrics)
	assert.Contains(t, types, audit.EventTypeSessionEnd)

	// Progress output names the active agent.
	assert.Contains(t, out.String(), "meal_plan_orchestrator")
}

func TestRunnerRequiresCatalog(t *testing.T) {
	_, err := New(context.Background(), Config{Model: "mock", LLM: pantrymodel.NewMockLLM()})
	assert.Error(t, err)
}

func TestRunnerSessionID(t *testing.T) {
	r, err := New(context.Background(), Config{
		Model:        "mock",
		Catalog:      catalog.Default(),
		SessionID:    "fixed-session",
		AuditLogPath: filepath.Join(t.TempDir(), "audit.jsonl"),
		LLM:          pantrymodel.NewMockLLM(),
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed-session", r.SessionID())
	require.NoError(t, r.Close())
}
