package model

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
	"sync"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// ScriptedToolCall is a tool call emitted by a scripted step.
type ScriptedToolCall struct {
	Name string
	Args map[string]interface{}
}

// ScriptedStep is one model turn: optional text plus optional tool calls.
type ScriptedStep struct {
	Text      string
	ToolCalls []ScriptedToolCall
}

// MockLLM implements model.LLM with pre-scripted responses, consumed
// in order. It lets agent wiring be tested without real API calls.
type MockLLM struct {
	steps []ScriptedStep

	mu              sync.Mutex
	requestCount    int
	conversationLog []ConversationEntry
}

// ConversationEntry records a request/response pair for debugging.
type ConversationEntry struct {
	Timestamp time.Time
	Request   string
	Response  string
	ToolCalls []string
}

// NewMockLLM creates a MockLLM that replays the given steps in order.
func NewMockLLM(steps ...ScriptedStep) *MockLLM {
	return &MockLLM{steps: steps}
}

// Name returns the model identifier.
func (m *MockLLM) Name() string {
	return "mock"
}

// RequestCount returns how many requests the mock has served.
func (m *MockLLM) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount
}

// GenerateContent implements model.LLM.GenerateContent.
func (m *MockLLM) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		select {
		case <-ctx.Done():
			yield(nil, ctx.Err())
			return
		default:
		}

		m.mu.Lock()
		var step *ScriptedStep
		if m.requestCount < len(m.steps) {
			step = &m.steps[m.requestCount]
		}
		m.requestCount++
		m.mu.Unlock()

		requestContent := extractRequestContent(req)

		if step == nil {
			// Out of steps, return a generic completion message.
			resp := textResponse("[mock scripted steps exhausted]")
			m.logConversation(requestContent, resp)
			yield(resp, nil)
			return
		}

		resp := buildResponseFromStep(step)
		m.logConversation(requestContent, resp)
		yield(resp, nil)
	}
}

// GetConversationLog returns the conversation log for debugging.
func (m *MockLLM) GetConversationLog() []ConversationEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ConversationEntry{}, m.conversationLog...)
}

// Reset resets the MockLLM state for a new conversation.
func (m *MockLLM) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.conversationLog = nil
}

func buildResponseFromStep(step *ScriptedStep) *model.LLMResponse {
	parts := make([]*genai.Part, 0, 1+len(step.ToolCalls))

	if step.Text != "" {
		parts = append(parts, &genai.Part{
			Text: step.Text,
		})
	}

	for i, tc := range step.ToolCalls {
		args := tc.Args
		if args == nil {
			args = make(map[string]interface{})
		}

		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				ID:   fmt.Sprintf("mock_call_%d", i),
				Name: tc.Name,
				Args: args,
			},
		})
	}

	return &model.LLMResponse{
		Content: &genai.Content{
			Parts: parts,
			Role:  "model",
		},
		FinishReason: genai.FinishReasonStop,
		TurnComplete: true,
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			// Mock estimates, bounded values.
			// #nosec G115
			PromptTokenCount: int32(len(parts) * 50),
			// #nosec G115
			CandidatesTokenCount: int32(len(step.Text) / 4),
			// #nosec G115
			TotalTokenCount: int32(len(parts)*50 + len(step.Text)/4),
		},
	}
}

func textResponse(text string) *model.LLMResponse {
	return &model.LLMResponse{
		Content: &genai.Content{
			Parts: []*genai.Part{
				{Text: text},
			},
			Role: "model",
		},
		FinishReason: genai.FinishReasonStop,
		TurnComplete: true,
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     100,
			CandidatesTokenCount: 10,
			TotalTokenCount:      110,
		},
	}
}

// logConversation records a conversation entry for debugging.
func (m *MockLLM) logConversation(request string, resp *model.LLMResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := ConversationEntry{
		Timestamp: time.Now(),
		Request:   truncateString(request, 200),
	}

	if resp != nil && resp.Content != nil {
		var textParts []string
		var toolCalls []string

		for _, part := range resp.Content.Parts {
			if part.Text != "" {
				textParts = append(textParts, truncateString(part.Text, 100))
			}
			if part.FunctionCall != nil {
				toolCalls = append(toolCalls, part.FunctionCall.Name)
			}
		}

		entry.Response = strings.Join(textParts, " | ")
		entry.ToolCalls = toolCalls
	}

	m.conversationLog = append(m.conversationLog, entry)
}

// extractRequestContent extracts text content from an LLM request for logging.
func extractRequestContent(req *model.LLMRequest) string {
	if req == nil || len(req.Contents) == 0 {
		return ""
	}

	var parts []string
	for _, content := range req.Contents {
		if content == nil {
			continue
		}
		for _, part := range content.Parts {
			if part == nil {
				continue
			}
			if part.Text != "" {
				parts = append(parts, part.Text)
			}
			if part.FunctionResponse != nil {
				respJSON, _ := json.Marshal(part.FunctionResponse.Response)
				parts = append(parts, fmt.Sprintf("[tool_result:%s] %s", part.FunctionResponse.Name, string(respJSON)))
			}
		}
	}

	return strings.Join(parts, "\n")
}

// truncateString truncates a string to maxLen characters.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
