// Package remote provides an A2A client proxy for a recipe planning
// agent running in another process, plus a tool that relays planning
// requests to it.
package remote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2aclient"
	"github.com/a2aproject/a2a-go/a2aclient/agentcard"

	"github.com/moolen/pantry/internal/logging"
)

const pollInterval = 500 * time.Millisecond

// Planner plans meals from a free-form request.
type Planner interface {
	Plan(ctx context.Context, request string) (string, error)
}

// A2APlanner talks to a remote planning agent over A2A.
type A2APlanner struct {
	client *a2aclient.Client
	card   *a2a.AgentCard
	logger *logging.Logger
}

// NewA2APlanner resolves the agent card at the given base URL and
// connects to the remote planner.
func NewA2APlanner(ctx context.Context, url string) (*A2APlanner, error) {
	card, err := agentcard.DefaultResolver.Resolve(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve agent card at %s: %w", url, err)
	}

	client, err := a2aclient.NewFromCard(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("failed to create a2a client: %w", err)
	}

	return &A2APlanner{
		client: client,
		card:   card,
		logger: logging.GetLogger("a2a-client"),
	}, nil
}

// Card returns the resolved agent card.
func (p *A2APlanner) Card() *a2a.AgentCard {
	return p.card
}

// Plan sends the request to the remote planner and returns the plan
// text, waiting for the remote task to reach a terminal state.
func (p *A2APlanner) Plan(ctx context.Context, request string) (string, error) {
	msg := a2a.NewMessage(a2a.MessageRoleUser, a2a.TextPart{Text: request})

	p.logger.DebugWithFields("sending plan request",
		logging.Field("agent", p.card.Name),
	)

	result, err := p.client.SendMessage(ctx, &a2a.MessageSendParams{Message: msg})
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	switch ev := result.(type) {
	case *a2a.Message:
		return partsText(ev.Parts), nil
	case *a2a.Task:
		return p.awaitTask(ctx, ev)
	default:
		return "", fmt.Errorf("unexpected response type %T", result)
	}
}

// awaitTask polls the task until it is terminal and extracts its output.
func (p *A2APlanner) awaitTask(ctx context.Context, task *a2a.Task) (string, error) {
	for !task.Status.State.Terminal() {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(pollInterval):
		}

		updated, err := p.client.GetTask(ctx, &a2a.TaskQueryParams{ID: task.ID})
		if err != nil {
			return "", fmt.Errorf("failed to poll task: %w", err)
		}
		task = updated
	}

	if task.Status.State != a2a.TaskStateCompleted {
		reason := ""
		if task.Status.Message != nil {
			reason = partsText(task.Status.Message.Parts)
		}
		return "", fmt.Errorf("remote planning task %s: %s", task.Status.State, reason)
	}

	var out []string
	for _, artifact := range task.Artifacts {
		if text := partsText(artifact.Parts); text != "" {
			out = append(out, text)
		}
	}
	if len(out) == 0 && task.Status.Message != nil {
		if text := partsText(task.Status.Message.Parts); text != "" {
			out = append(out, text)
		}
	}
	if len(out) == 0 {
		return "", fmt.Errorf("remote planner returned no output")
	}

	return strings.Join(out, "\n"), nil
}

// Destroy releases the client resources.
func (p *A2APlanner) Destroy() {
	p.client.Destroy()
}

func partsText(parts []a2a.Part) string {
	var texts []string
	for _, part := range parts {
		switch v := part.(type) {
		case a2a.TextPart:
			texts = append(texts, v.Text)
		case *a2a.TextPart:
			texts = append(texts, v.Text)
		}
	}
	return strings.Join(texts, "\n")
}
