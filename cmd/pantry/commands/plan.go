package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/moolen/pantry/internal/agent/runner"
	"github.com/moolen/pantry/internal/catalog"
	"github.com/moolen/pantry/internal/config"
	"github.com/moolen/pantry/internal/logging"
	"github.com/moolen/pantry/internal/planner"
)

var (
	planModel      string
	planAPIKey     string
	planCatalog    string
	planPlannerURL string
	planAuditLog   string
	planSessionID  string
	planBudget     float64
	planOffline    bool
)

var planCmd = &cobra.Command{
	Use:   "plan [prompt]",
	Short: "Plan meals from a natural language request",
	Long: `Run the meal planning agents on a request like
"Plan 3 vegetarian dinners under $50".

The orchestrator delegates recipe selection to the planning agent and
cost review to the budget agent, then prints the final meal plan with a
consolidated shopping list.

With --offline the deterministic planning pipeline runs directly,
without any LLM calls.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planModel, "model", getEnv("PANTRY_MODEL", config.DefaultModel), "Gemini model name")
	planCmd.Flags().StringVar(&planAPIKey, "api-key", "", "Gemini API key (defaults to GOOGLE_API_KEY)")
	planCmd.Flags().StringVar(&planCatalog, "catalog", getEnv("PANTRY_CATALOG", ""), "Path to a YAML recipe catalog (defaults to the built-in catalog)")
	planCmd.Flags().StringVar(&planPlannerURL, "planner-url", getEnv("PANTRY_PLANNER_URL", ""), "URL of a remote A2A planning agent (defaults to the in-process planner)")
	planCmd.Flags().StringVar(&planAuditLog, "audit-log", "", "Path to the JSONL audit log (defaults to ~/.pantry/sessions/<session-id>.audit.log)")
	planCmd.Flags().StringVar(&planSessionID, "session-id", "", "Session ID to resume (defaults to a new session)")
	planCmd.Flags().Float64Var(&planBudget, "budget", 0, "Budget override for offline planning")
	planCmd.Flags().BoolVar(&planOffline, "offline", false, "Run the deterministic pipeline without any LLM")
}

// buildPlanConfig assembles and validates the configuration from the
// command flags.
func buildPlanConfig() (*config.Config, error) {
	cfg := config.New()
	cfg.LogLevel = logLevel
	cfg.CatalogPath = planCatalog
	cfg.Model = planModel
	cfg.APIKey = planAPIKey
	cfg.PlannerURL = planPlannerURL
	cfg.AuditLogPath = planAuditLog

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runPlan(cmd *cobra.Command, args []string) {
	if err := setupLog(); err != nil {
		HandleError(err, "Failed to setup logging")
	}
	logger := logging.GetLogger("plan")

	cfg, err := buildPlanConfig()
	if err != nil {
		HandleError(err, "Invalid configuration")
	}

	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		HandleError(fmt.Errorf("prompt must not be empty"), "Invalid request")
	}

	cat, err := catalog.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		HandleError(err, "Failed to load catalog")
	}
	logger.Debug("Catalog loaded with %d recipes", cat.Len())

	if planOffline {
		runPlanOffline(cat, prompt)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	r, err := runner.New(ctx, runner.Config{
		Model:        cfg.Model,
		APIKey:       cfg.APIKey,
		Catalog:      cat,
		SessionID:    planSessionID,
		AuditLogPath: cfg.AuditLogPath,
		PlannerURL:   cfg.PlannerURL,
	})
	if err != nil {
		HandleError(err, "Failed to create runner")
	}
	defer func() {
		if err := r.Close(); err != nil {
			logger.Error("Failed to close runner: %v", err)
		}
	}()

	if err := r.Start(ctx); err != nil {
		HandleError(err, "Failed to start session")
	}
	logger.Info("Session %s started", r.SessionID())

	text, err := r.ProcessMessage(ctx, prompt)
	if err != nil {
		HandleError(err, "Planning failed")
	}

	fmt.Println()
	fmt.Print(renderMarkdown(text))

	requests, inputTokens, outputTokens := r.TokenUsage()
	logger.Info("Token usage: %d requests, %d input, %d output", requests, inputTokens, outputTokens)
}

// runPlanOffline drives the planning pipeline directly.
func runPlanOffline(cat *catalog.Catalog, prompt string) {
	prefs := planner.ExtractPreferences(prompt)
	if planBudget > 0 {
		prefs.Budget = planBudget
	}

	result := planner.PlanWithPreferences(cat, prefs)
	fmt.Print(renderMarkdown(planner.RenderMarkdown(result)))

	if result.OverBudget() {
		fmt.Fprintf(os.Stderr, "Warning: total cost $%.2f exceeds budget $%.2f\n", result.TotalCost, result.Preferences.Budget)
	}
}

// renderMarkdown pretty-prints markdown for the terminal, falling back
// to the raw text when rendering fails.
func renderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return text + "\n"
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}
