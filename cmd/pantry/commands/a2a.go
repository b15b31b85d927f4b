package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/moolen/pantry/internal/a2aserver"
	pantrymodel "github.com/moolen/pantry/internal/agent/model"
	"github.com/moolen/pantry/internal/agent/planneragent"
	"github.com/moolen/pantry/internal/catalog"
	"github.com/moolen/pantry/internal/config"
	"github.com/moolen/pantry/internal/logging"
	"github.com/moolen/pantry/internal/metrics"
)

var (
	a2aAddr        string
	a2aCardURL     string
	a2aModel       string
	a2aAPIKey      string
	a2aCatalogPath string
)

var a2aCmd = &cobra.Command{
	Use:   "a2a",
	Short: "Serve the planning agent over A2A",
	Long: `Start an Agent2Agent (A2A) server exposing the recipe planning
agent so other agent processes can delegate planning requests to it.

The agent card is served at /.well-known/agent-card.json; point the
orchestrator at this server with 'pantry plan --planner-url'.`,
	Run: runA2A,
}

func init() {
	a2aCmd.Flags().StringVar(&a2aAddr, "addr", getEnv("A2A_ADDR", config.DefaultA2AAddr), "Listen address (host:port)")
	a2aCmd.Flags().StringVar(&a2aCardURL, "card-url", getEnv("A2A_CARD_URL", ""), "Externally reachable URL advertised in the agent card (defaults to http://localhost<addr>)")
	a2aCmd.Flags().StringVar(&a2aModel, "model", getEnv("PANTRY_MODEL", config.DefaultModel), "Gemini model name")
	a2aCmd.Flags().StringVar(&a2aAPIKey, "api-key", "", "Gemini API key (defaults to GOOGLE_API_KEY)")
	a2aCmd.Flags().StringVar(&a2aCatalogPath, "catalog", getEnv("PANTRY_CATALOG", ""), "Path to a YAML recipe catalog (defaults to the built-in catalog)")
}

// buildA2AConfig assembles and validates the configuration from the
// command flags.
func buildA2AConfig() (*config.Config, error) {
	cfg := config.New()
	cfg.LogLevel = logLevel
	cfg.CatalogPath = a2aCatalogPath
	cfg.Model = a2aModel
	cfg.APIKey = a2aAPIKey
	cfg.A2AAddr = a2aAddr

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runA2A(cmd *cobra.Command, args []string) {
	if err := setupLog(); err != nil {
		HandleError(err, "Failed to setup logging")
	}
	logger := logging.GetLogger("a2a")

	cfg, err := buildA2AConfig()
	if err != nil {
		HandleError(err, "Invalid configuration")
	}
	logger.Info("Starting A2A planning server on %s", cfg.A2AAddr)

	cat, err := catalog.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("Failed to load catalog: %v", err)
	}
	logger.Info("Catalog loaded with %d recipes", cat.Len())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	llm, err := pantrymodel.NewGemini(ctx, cfg.Model, cfg.APIKey)
	if err != nil {
		logger.Fatal("Failed to create model: %v", err)
	}

	plannerAgent, err := planneragent.New(llm, cat)
	if err != nil {
		logger.Fatal("Failed to create planning agent: %v", err)
	}

	m := metrics.New()

	executor, err := a2aserver.NewExecutor(a2aserver.ExecutorConfig{
		Agent:   plannerAgent,
		Metrics: m,
	})
	if err != nil {
		logger.Fatal("Failed to create executor: %v", err)
	}

	srv, err := a2aserver.NewServer(a2aserver.ServerConfig{
		Addr:     cfg.A2AAddr,
		BaseURL:  a2aCardURL,
		Version:  Version,
		Executor: executor,
		Metrics:  m,
	})
	if err != nil {
		logger.Fatal("Failed to create server: %v", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down A2A server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("Server error: %v", err)
	}
	logger.Info("Server stopped")
}
