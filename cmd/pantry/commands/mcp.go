package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/moolen/pantry/internal/catalog"
	"github.com/moolen/pantry/internal/config"
	"github.com/moolen/pantry/internal/logging"
	"github.com/moolen/pantry/internal/mcp"
	"github.com/moolen/pantry/internal/metrics"
)

var (
	mcpCatalogPath  string
	httpAddr        string
	transportType   string
	mcpEndpointPath string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the recipe MCP server",
	Long: `Start the Model Context Protocol (MCP) server that exposes the
recipe catalog as MCP tools for AI assistants.

Supports two transport modes:
  - http: HTTP server mode (default, suitable for independent deployment)
  - stdio: Standard input/output mode (for subprocess-based MCP clients)

HTTP mode includes /health and /metrics endpoints.`,
	Run: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpCatalogPath, "catalog", getEnv("PANTRY_CATALOG", ""), "Path to a YAML recipe catalog (defaults to the built-in catalog)")
	mcpCmd.Flags().StringVar(&httpAddr, "http-addr", getEnv("MCP_HTTP_ADDR", config.DefaultHTTPAddr), "HTTP server address (host:port)")
	mcpCmd.Flags().StringVar(&transportType, "transport", "http", "Transport type: http or stdio")
	mcpCmd.Flags().StringVar(&mcpEndpointPath, "mcp-endpoint", getEnv("MCP_ENDPOINT", config.DefaultMCPEndpoint), "HTTP endpoint path for MCP requests")
}

// buildMCPConfig assembles and validates the configuration from the
// command flags.
func buildMCPConfig() (*config.Config, error) {
	cfg := config.New()
	cfg.LogLevel = logLevel
	cfg.CatalogPath = mcpCatalogPath
	cfg.Transport = config.Transport(transportType)
	cfg.HTTPAddr = httpAddr
	cfg.MCPEndpoint = normalizeEndpoint(mcpEndpointPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func normalizeEndpoint(path string) string {
	if path == "" {
		return config.DefaultMCPEndpoint
	}
	if path[0] != '/' {
		return "/" + path
	}
	return path
}

func runMCP(cmd *cobra.Command, args []string) {
	if err := setupLog(); err != nil {
		HandleError(err, "Failed to setup logging")
	}
	logger := logging.GetLogger("mcp")

	cfg, err := buildMCPConfig()
	if err != nil {
		HandleError(err, "Invalid configuration")
	}
	logger.Info("Starting recipe MCP server (transport: %s)", cfg.Transport)

	cat, err := catalog.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("Failed to load catalog: %v", err)
	}
	logger.Info("Catalog loaded with %d recipes", cat.Len())

	m := metrics.New()

	recipeServer, err := mcp.NewRecipeServer(mcp.ServerOptions{
		Catalog: cat,
		Version: Version,
		Metrics: m,
	})
	if err != nil {
		logger.Fatal("Failed to create MCP server: %v", err)
	}

	mcpServer := recipeServer.GetMCPServer()

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal: %v, shutting down gracefully...", sig)
		cancel()
	}()

	switch cfg.Transport {
	case config.TransportHTTP:
		endpointPath := cfg.MCPEndpoint

		logger.Info("Starting HTTP server on %s (endpoint: %s)", cfg.HTTPAddr, endpointPath)

		// Custom mux with health and metrics endpoints
		mux := http.NewServeMux()
		mux.Handle("/health", m.InstrumentHandler("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("ok"))
		})))
		mux.Handle("/metrics", m.Handler())

		httpSrv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second, // Prevent Slowloris attacks
		}

		// Stateless mode keeps clients that don't manage sessions working
		streamableServer := server.NewStreamableHTTPServer(
			mcpServer,
			server.WithEndpointPath(endpointPath),
			server.WithStateLess(true),
			server.WithStreamableHTTPServer(httpSrv),
		)
		mux.Handle(endpointPath, m.InstrumentHandler(endpointPath, streamableServer))

		errCh := make(chan error, 1)
		go func() {
			if err := streamableServer.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case <-ctx.Done():
			logger.Info("Shutting down HTTP server...")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()

			if err := streamableServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("Error during shutdown: %v", err)
				shutdownCancel() // Call explicitly before exit
				os.Exit(1)       //nolint:gocritic // shutdownCancel() is called explicitly above
			}
		case err := <-errCh:
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}

	case config.TransportStdio:
		logger.Info("Starting stdio transport")
		if err := server.ServeStdio(mcpServer); err != nil {
			logger.Error("Stdio transport error: %v", err)
		}
	}

	logger.Info("Server stopped")
}
