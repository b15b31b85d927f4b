package a2aserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/a2aproject/a2a-go/a2asrv"

	"github.com/moolen/pantry/internal/logging"
	"github.com/moolen/pantry/internal/metrics"
)

// AgentCardPath is the well-known path for the agent card.
const AgentCardPath = "/.well-known/agent-card.json"

// ServerConfig configures the A2A HTTP server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8001".
	Addr string

	// BaseURL is the externally reachable URL advertised in the card.
	BaseURL string

	// Version is reported in the agent card.
	Version string

	// Executor handles planning tasks.
	Executor *Executor

	// Metrics serves the /metrics endpoint (optional).
	Metrics *metrics.Metrics
}

// Server serves the planning agent over JSON-RPC plus the agent card,
// health and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *logging.Logger
}

// NewServer creates the A2A HTTP server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost" + cfg.Addr
	}

	card := NewAgentCard(cfg.BaseURL, cfg.Version)

	handler := a2asrv.NewHandler(cfg.Executor)

	mux := http.NewServeMux()
	mux.Handle("/", cfg.Metrics.InstrumentHandler("/", a2asrv.NewJSONRPCHandler(handler)))
	mux.Handle(AgentCardPath, cfg.Metrics.InstrumentHandler(AgentCardPath, a2asrv.NewStaticAgentCardHandler(card)))
	mux.Handle("/metrics", cfg.Metrics.Handler())
	mux.Handle("/health", cfg.Metrics.InstrumentHandler("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})))

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logging.GetLogger("a2a-server"),
	}, nil
}

// Start runs the server until it fails or is shut down.
func (s *Server) Start() error {
	s.logger.InfoWithFields("starting A2A server",
		logging.Field("addr", s.httpServer.Addr),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("a2a server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
