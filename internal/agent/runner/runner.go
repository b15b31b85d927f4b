// Package runner wraps the ADK runner for the meal planning agents.
// It drives the orchestrator, prints progress to the console and
// returns the final meal plan text.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"google.golang.org/adk/agent"
	adkmodel "google.golang.org/adk/model"
	adkrunner "google.golang.org/adk/runner"
	adksession "google.golang.org/adk/session"
	"google.golang.org/adk/tool"

	"github.com/moolen/pantry/internal/agent/audit"
	"github.com/moolen/pantry/internal/agent/budget"
	pantrymodel "github.com/moolen/pantry/internal/agent/model"
	"github.com/moolen/pantry/internal/agent/orchestrator"
	"github.com/moolen/pantry/internal/agent/planneragent"
	"github.com/moolen/pantry/internal/agent/remote"
	"github.com/moolen/pantry/internal/catalog"
	"github.com/moolen/pantry/internal/logging"
	"github.com/moolen/pantry/internal/metrics"
)

const (
	// AppName is the ADK application name.
	AppName = "pantry"

	// DefaultUserID is used when no user ID is specified.
	DefaultUserID = "default"
)

// Config contains the runner configuration.
type Config struct {
	// Model is the Gemini model name.
	Model string

	// APIKey is the Gemini API key. Falls back to GOOGLE_API_KEY.
	APIKey string

	// Catalog is the recipe catalog.
	Catalog *catalog.Catalog

	// SessionID allows resuming a previous session (optional).
	SessionID string

	// AuditLogPath is the path to write the audit log (JSONL format).
	// Defaults to ~/.pantry/sessions/<session-id>.audit.log.
	AuditLogPath string

	// PlannerURL points to a remote A2A planning agent. When set, the
	// orchestrator relays planning requests over A2A instead of using
	// the in-process planner sub-agent.
	PlannerURL string

	// LLM overrides the model adapter, used by tests.
	LLM adkmodel.LLM

	// Metrics collects runner metrics (optional).
	Metrics *metrics.Metrics

	// Output receives progress lines. Defaults to stdout.
	Output io.Writer
}

// Runner manages the multi-agent meal planning system.
type Runner struct {
	config Config

	adkRunner      *adkrunner.Runner
	sessionService adksession.Service
	sessionID      string
	userID         string

	remotePlanner *remote.A2APlanner

	auditLogger *audit.Logger
	metrics     *metrics.Metrics
	logger      *logging.Logger
	out         io.Writer

	totalLLMRequests  int
	totalInputTokens  int
	totalOutputTokens int
}

// New creates a new meal planning Runner.
func New(ctx context.Context, cfg Config) (*Runner, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	r := &Runner{
		config:         cfg,
		userID:         DefaultUserID,
		sessionService: adksession.InMemoryService(),
		metrics:        cfg.Metrics,
		logger:         logging.GetLogger("runner"),
		out:            cfg.Output,
	}

	if cfg.SessionID != "" {
		r.sessionID = cfg.SessionID
	} else {
		r.sessionID = uuid.NewString()
	}

	auditLogPath := cfg.AuditLogPath
	if auditLogPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			sessionsDir := filepath.Join(home, ".pantry", "sessions")
			if err := os.MkdirAll(sessionsDir, 0750); err == nil {
				auditLogPath = filepath.Join(sessionsDir, r.sessionID+".audit.log")
			}
		}
	}

	llm := cfg.LLM
	if llm == nil {
		var err error
		llm, err = pantrymodel.NewGemini(ctx, cfg.Model, cfg.APIKey)
		if err != nil {
			return nil, err
		}
	}

	orch, err := r.buildOrchestrator(ctx, llm)
	if err != nil {
		return nil, err
	}

	r.adkRunner, err = adkrunner.New(adkrunner.Config{
		AppName:        AppName,
		Agent:          orch,
		SessionService: r.sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ADK runner: %w", err)
	}

	if auditLogPath != "" {
		auditLogger, err := audit.NewLogger(auditLogPath, r.sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to create audit logger: %w", err)
		}
		r.auditLogger = auditLogger
	}

	return r, nil
}

// buildOrchestrator wires the orchestrator with either the in-process
// planner sub-agent or a remote A2A relay tool.
func (r *Runner) buildOrchestrator(ctx context.Context, llm adkmodel.LLM) (agent.Agent, error) {
	budgetAgent, err := budget.New(llm, r.config.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to create budget agent: %w", err)
	}

	orchCfg := orchestrator.Config{
		Model:  llm,
		Budget: budgetAgent,
	}

	if r.config.PlannerURL != "" {
		rp, err := remote.NewA2APlanner(ctx, r.config.PlannerURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to remote planner: %w", err)
		}
		r.remotePlanner = rp

		relayTool, err := remote.NewPlanRecipesTool(rp)
		if err != nil {
			return nil, err
		}
		orchCfg.Tools = []tool.Tool{relayTool}
		r.logger.InfoWithFields("using remote planner",
			logging.Field("url", r.config.PlannerURL),
			logging.Field("agent", rp.Card().Name),
		)
	} else {
		plannerAgent, err := planneragent.New(llm, r.config.Catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to create planner agent: %w", err)
		}
		orchCfg.Planner = plannerAgent
	}

	return orchestrator.New(orchCfg)
}

// Start creates the session and logs session start.
func (r *Runner) Start(ctx context.Context) error {
	_, err := r.sessionService.Create(ctx, &adksession.CreateRequest{
		AppName:   AppName,
		UserID:    r.userID,
		SessionID: r.sessionID,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	r.metrics.ActiveSessions.Inc()
	if r.auditLogger != nil {
		_ = r.auditLogger.LogSessionStart(r.config.Model, r.config.Catalog.Len())
	}
	return nil
}

// ProcessMessage runs the orchestrator on a single user message and
// returns the final response text.
func (r *Runner) ProcessMessage(ctx context.Context, message string) (string, error) {
	if r.auditLogger != nil {
		_ = r.auditLogger.LogUserMessage(message)
	}

	userContent := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: message},
		},
	}

	runConfig := agent.RunConfig{
		StreamingMode: agent.StreamingModeNone,
	}

	var currentAgent string
	var lastTextResponse string
	var planRecipeCount int
	var planTotalCost float64
	toolStartTimes := make(map[string]time.Time)
	runStart := time.Now()

	for event, err := range r.adkRunner.Run(ctx, r.userID, r.sessionID, userContent, runConfig) {
		if err != nil {
			if r.auditLogger != nil {
				_ = r.auditLogger.LogError(currentAgent, err)
			}
			r.metrics.PipelineRuns.WithLabelValues("error").Inc()
			return "", fmt.Errorf("agent error: %w", err)
		}

		if event == nil {
			continue
		}

		if event.UsageMetadata != nil && event.UsageMetadata.PromptTokenCount > 0 {
			inputTokens := int(event.UsageMetadata.PromptTokenCount)
			outputTokens := int(event.UsageMetadata.CandidatesTokenCount)

			r.totalLLMRequests++
			r.totalInputTokens += inputTokens
			r.totalOutputTokens += outputTokens
			r.metrics.ModelTokens.WithLabelValues("input").Add(float64(inputTokens))
			r.metrics.ModelTokens.WithLabelValues("output").Add(float64(outputTokens))

			if r.auditLogger != nil {
				_ = r.auditLogger.LogLLMRequest(r.config.Model, inputTokens, outputTokens)
			}
		}

		if event.Author != "" && event.Author != currentAgent {
			if currentAgent != "" && r.auditLogger != nil {
				_ = r.auditLogger.LogAgentTransfer(currentAgent, event.Author)
			}
			currentAgent = event.Author
			r.printAgent(currentAgent)
			if r.auditLogger != nil {
				_ = r.auditLogger.LogAgentActivated(currentAgent)
			}
		}

		if event.Content != nil {
			for _, part := range event.Content.Parts {
				if part.FunctionCall != nil {
					toolName := part.FunctionCall.Name
					toolKey := part.FunctionCall.ID
					if toolKey == "" {
						toolKey = toolName
					}
					toolStartTimes[toolKey] = time.Now()

					r.printToolStart(toolName)
					if r.auditLogger != nil {
						_ = r.auditLogger.LogToolStart(currentAgent, toolName, part.FunctionCall.Args)
					}
				}
				if part.FunctionResponse != nil {
					toolName := part.FunctionResponse.Name
					toolKey := part.FunctionResponse.ID
					if toolKey == "" {
						toolKey = toolName
					}

					var duration time.Duration
					if startTime, ok := toolStartTimes[toolKey]; ok {
						duration = time.Since(startTime)
						delete(toolStartTimes, toolKey)
					}

					success := true
					if errMsg, exists := part.FunctionResponse.Response["error"]; exists && errMsg != nil {
						success = false
					}
					if status, ok := part.FunctionResponse.Response["status"].(string); ok && status == "error" {
						success = false
					}

					if toolName == "plan_recipes" && success {
						if n, ok := asFloat(part.FunctionResponse.Response["recipe_count"]); ok {
							planRecipeCount = int(n)
						}
						if c, ok := asFloat(part.FunctionResponse.Response["total_cost"]); ok {
							planTotalCost = c
						}
					}

					r.printToolComplete(toolName, success, duration)
					outcome := "ok"
					if !success {
						outcome = "error"
					}
					r.metrics.ToolCalls.WithLabelValues(toolName, outcome).Inc()
					r.metrics.ToolDuration.WithLabelValues(toolName).Observe(duration.Seconds())
					if r.auditLogger != nil {
						_ = r.auditLogger.LogToolComplete(currentAgent, toolName, success, duration)
					}
				}
			}

			for _, part := range event.Content.Parts {
				if part.Text != "" && !part.Thought {
					lastTextResponse = part.Text
					if r.auditLogger != nil {
						_ = r.auditLogger.LogAgentText(currentAgent, part.Text, false)
					}
				}
			}
		}

		if len(event.Actions.StateDelta) > 0 && r.auditLogger != nil {
			keys := make([]string, 0, len(event.Actions.StateDelta))
			for key := range event.Actions.StateDelta {
				keys = append(keys, key)
			}
			_ = r.auditLogger.LogStateDelta(currentAgent, keys)
		}

		if event.Actions.Escalate && r.auditLogger != nil {
			_ = r.auditLogger.LogEscalation(currentAgent, "agent escalated")
		}

		if event.IsFinalResponse() && lastTextResponse != "" {
			if r.auditLogger != nil {
				_ = r.auditLogger.LogAgentText(currentAgent, lastTextResponse, true)
			}
		}
	}

	r.metrics.PipelineRuns.WithLabelValues("ok").Inc()
	if r.auditLogger != nil {
		_ = r.auditLogger.LogPlanComplete(time.Since(runStart), planRecipeCount, planTotalCost)
	}

	return lastTextResponse, nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Close logs session metrics and releases resources.
func (r *Runner) Close() error {
	r.metrics.ActiveSessions.Dec()

	if r.remotePlanner != nil {
		r.remotePlanner.Destroy()
	}

	if r.auditLogger != nil {
		_ = r.auditLogger.LogSessionMetrics(r.totalLLMRequests, r.totalInputTokens, r.totalOutputTokens)
		_ = r.auditLogger.LogSessionEnd()
		return r.auditLogger.Close()
	}
	return nil
}

// SessionID returns the current session ID.
func (r *Runner) SessionID() string {
	return r.sessionID
}

// TokenUsage returns the accumulated LLM usage for the session.
func (r *Runner) TokenUsage() (requests, inputTokens, outputTokens int) {
	return r.totalLLMRequests, r.totalInputTokens, r.totalOutputTokens
}
