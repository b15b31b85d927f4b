package a2aserver

import (
	"context"
	"fmt"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/a2aproject/a2a-go/a2asrv/eventqueue"
	"google.golang.org/genai"

	"google.golang.org/adk/agent"
	adkrunner "google.golang.org/adk/runner"
	adksession "google.golang.org/adk/session"

	"github.com/moolen/pantry/internal/logging"
	"github.com/moolen/pantry/internal/metrics"
)

// AppName is the ADK application name for the A2A planner.
const AppName = "pantry-planner"

// DefaultUserID is used when the message does not carry a user id.
const DefaultUserID = "default"

// ExecutorConfig configures the A2A executor.
type ExecutorConfig struct {
	// Agent is the planning agent driven per task.
	Agent agent.Agent

	// SessionService stores sessions across task continuations.
	SessionService adksession.Service

	// Metrics collects task state metrics (optional).
	Metrics *metrics.Metrics
}

// Executor implements a2asrv.AgentExecutor by bridging the ADK runner.
//
// Event translation:
//   - New task: TaskStatusUpdateEvent with TaskStateSubmitted
//   - Before the run: TaskStatusUpdateEvent with TaskStateWorking
//   - Agent text output: TaskArtifactUpdateEvent
//   - On error: TaskStatusUpdateEvent with TaskStateFailed (final)
//   - On success: TaskStatusUpdateEvent with TaskStateCompleted (final)
type Executor struct {
	config    ExecutorConfig
	adkRunner *adkrunner.Runner
	metrics   *metrics.Metrics
	logger    *logging.Logger
}

// NewExecutor creates the A2A executor.
func NewExecutor(cfg ExecutorConfig) (*Executor, error) {
	if cfg.Agent == nil {
		return nil, fmt.Errorf("agent is required")
	}
	if cfg.SessionService == nil {
		cfg.SessionService = adksession.InMemoryService()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}

	r, err := adkrunner.New(adkrunner.Config{
		AppName:        AppName,
		Agent:          cfg.Agent,
		SessionService: cfg.SessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ADK runner: %w", err)
	}

	return &Executor{
		config:    cfg,
		adkRunner: r,
		metrics:   cfg.Metrics,
		logger:    logging.GetLogger("a2a-server"),
	}, nil
}

// Execute implements a2asrv.AgentExecutor.
func (e *Executor) Execute(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	msg := reqCtx.Message
	if msg == nil {
		return fmt.Errorf("message not provided")
	}

	request := messageText(msg)
	if request == "" {
		return e.fail(ctx, reqCtx, queue, fmt.Errorf("message contains no text"))
	}

	userID, sessionID := invocationIDs(reqCtx)

	e.logger.InfoWithFields("planning task received",
		logging.Field("task_id", string(reqCtx.TaskID)),
		logging.Field("session_id", sessionID),
	)

	if reqCtx.StoredTask == nil {
		e.metrics.A2ATasks.WithLabelValues("submitted").Inc()
		if err := queue.Write(ctx, a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateSubmitted, nil)); err != nil {
			return fmt.Errorf("failed to write submitted event: %w", err)
		}
	}

	if err := e.prepareSession(ctx, userID, sessionID); err != nil {
		return e.fail(ctx, reqCtx, queue, err)
	}

	e.metrics.A2ATasks.WithLabelValues("working").Inc()
	if err := queue.Write(ctx, a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateWorking, nil)); err != nil {
		return err
	}

	userContent := &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: request}},
	}
	runConfig := agent.RunConfig{
		StreamingMode: agent.StreamingModeNone,
	}

	var responseID a2a.ArtifactID
	for event, err := range e.adkRunner.Run(ctx, userID, sessionID, userContent, runConfig) {
		if err != nil {
			return e.fail(ctx, reqCtx, queue, fmt.Errorf("agent run failed: %w", err))
		}
		if event == nil || event.Content == nil {
			continue
		}

		var parts []a2a.Part
		for _, part := range event.Content.Parts {
			if part.Text != "" && !part.Thought {
				parts = append(parts, a2a.TextPart{Text: part.Text})
			}
		}
		if len(parts) == 0 {
			continue
		}

		var artifactEvent *a2a.TaskArtifactUpdateEvent
		if responseID == "" {
			artifactEvent = a2a.NewArtifactEvent(reqCtx, parts...)
			responseID = artifactEvent.Artifact.ID
		} else {
			artifactEvent = a2a.NewArtifactUpdateEvent(reqCtx, responseID, parts...)
		}
		if err := queue.Write(ctx, artifactEvent); err != nil {
			return fmt.Errorf("failed to write artifact event: %w", err)
		}
	}

	if responseID != "" {
		closing := a2a.NewArtifactUpdateEvent(reqCtx, responseID)
		closing.LastChunk = true
		if err := queue.Write(ctx, closing); err != nil {
			return fmt.Errorf("failed to write closing artifact event: %w", err)
		}
	}

	e.metrics.A2ATasks.WithLabelValues("completed").Inc()
	completed := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCompleted, nil)
	completed.Final = true
	return queue.Write(ctx, completed)
}

// Cancel implements a2asrv.AgentExecutor.
func (e *Executor) Cancel(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue) error {
	e.metrics.A2ATasks.WithLabelValues("canceled").Inc()
	event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCanceled, nil)
	event.Final = true
	return queue.Write(ctx, event)
}

func (e *Executor) fail(ctx context.Context, reqCtx *a2asrv.RequestContext, queue eventqueue.Queue, cause error) error {
	e.logger.ErrorWithErr("planning task failed", cause)
	e.metrics.A2ATasks.WithLabelValues("failed").Inc()

	statusMsg := a2a.NewMessage(a2a.MessageRoleAgent, a2a.TextPart{Text: cause.Error()})
	event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateFailed, statusMsg)
	event.Final = true
	return queue.Write(ctx, event)
}

// prepareSession ensures a session exists for the invocation.
func (e *Executor) prepareSession(ctx context.Context, userID, sessionID string) error {
	_, err := e.config.SessionService.Get(ctx, &adksession.GetRequest{
		AppName:   AppName,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err == nil {
		return nil
	}

	_, err = e.config.SessionService.Create(ctx, &adksession.CreateRequest{
		AppName:   AppName,
		UserID:    userID,
		SessionID: sessionID,
		State:     make(map[string]any),
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// invocationIDs derives the user and session IDs for a request. The
// a2asrv context ID doubles as the session ID so task continuations
// share state.
func invocationIDs(reqCtx *a2asrv.RequestContext) (userID, sessionID string) {
	sessionID = reqCtx.ContextID

	if reqCtx.Message != nil && reqCtx.Message.Metadata != nil {
		if uid, ok := reqCtx.Message.Metadata["user_id"].(string); ok {
			userID = uid
		}
	}
	if userID == "" {
		userID = DefaultUserID
	}
	return userID, sessionID
}

func messageText(msg *a2a.Message) string {
	var out string
	for _, part := range msg.Parts {
		switch v := part.(type) {
		case a2a.TextPart:
			if out != "" {
				out += "\n"
			}
			out += v.Text
		case *a2a.TextPart:
			if out != "" {
				out += "\n"
			}
			out += v.Text
		}
	}
	return out
}
