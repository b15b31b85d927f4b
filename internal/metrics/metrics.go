// Package metrics exposes Prometheus metrics for the pantry servers.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors shared by the servers.
type Metrics struct {
	registry *prometheus.Registry

	PipelineRuns   *prometheus.CounterVec // planning pipeline runs by outcome
	ToolCalls      *prometheus.CounterVec // MCP tool calls by tool and outcome
	ToolDuration   *prometheus.HistogramVec
	HTTPRequests   *prometheus.CounterVec // HTTP requests by path and code
	A2ATasks       *prometheus.CounterVec // A2A tasks by terminal state
	ModelTokens    *prometheus.CounterVec // LLM token usage by direction
	ActiveSessions prometheus.Gauge
}

// New creates the pantry metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg)
}

// NewWithRegistry creates the pantry metrics on the given registry.
// Tests pass their own registry to avoid cross-test pollution.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		PipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pantry_pipeline_runs_total",
			Help: "Total number of planning pipeline runs",
		}, []string{"outcome"}),
		ToolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pantry_mcp_tool_calls_total",
			Help: "Total number of MCP tool calls",
		}, []string{"tool", "outcome"}),
		ToolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pantry_mcp_tool_duration_seconds",
			Help:    "MCP tool execution duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pantry_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"path", "code"}),
		A2ATasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pantry_a2a_tasks_total",
			Help: "Total number of A2A planner tasks by terminal state",
		}, []string{"state"}),
		ModelTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pantry_model_tokens_total",
			Help: "Total LLM tokens consumed",
		}, []string{"direction"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pantry_active_sessions",
			Help: "Number of active agent sessions",
		}),
	}

	reg.MustRegister(
		m.PipelineRuns,
		m.ToolCalls,
		m.ToolDuration,
		m.HTTPRequests,
		m.A2ATasks,
		m.ModelTokens,
		m.ActiveSessions,
	)

	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the response status code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// InstrumentHandler counts requests served by next, labeled with the
// given path and the response status code.
func (m *Metrics) InstrumentHandler(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.HTTPRequests.WithLabelValues(path, strconv.Itoa(rec.code)).Inc()
	})
}
