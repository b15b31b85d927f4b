// Package config holds the runtime configuration for the pantry
// commands.
package config

import (
	"fmt"
	"strings"
)

// Defaults used when flags and environment leave a value unset.
const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultHTTPAddr    = ":8080"
	DefaultMCPEndpoint = "/mcp"
	DefaultA2AAddr     = ":8001"
)

// Transport selects how the MCP server talks to clients.
type Transport string

const (
	TransportHTTP  Transport = "http"
	TransportStdio Transport = "stdio"
)

// Config holds all configuration for the application.
type Config struct {
	// LogLevel is the logging level (debug, info, warn, error).
	LogLevel string

	// CatalogPath is an optional YAML catalog file. Empty selects the
	// built-in catalog.
	CatalogPath string

	// Model is the Gemini model used by the agents.
	Model string

	// APIKey authenticates against the Gemini API. Usually sourced
	// from the GOOGLE_API_KEY environment variable.
	APIKey string

	// Transport selects the MCP transport (http or stdio).
	Transport Transport

	// HTTPAddr is the listen address for the MCP HTTP transport.
	HTTPAddr string

	// MCPEndpoint is the HTTP path the MCP server is mounted on.
	MCPEndpoint string

	// A2AAddr is the listen address for the A2A planner server.
	A2AAddr string

	// PlannerURL points at a remote A2A planner agent. Empty runs the
	// planner in-process.
	PlannerURL string

	// AuditLogPath is an optional JSONL audit log file.
	AuditLogPath string
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		Model:       DefaultModel,
		Transport:   TransportHTTP,
		HTTPAddr:    DefaultHTTPAddr,
		MCPEndpoint: DefaultMCPEndpoint,
		A2AAddr:     DefaultA2AAddr,
	}
}

// Validate checks that the configuration is consistent.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportHTTP, TransportStdio:
	default:
		return NewConfigError(fmt.Sprintf("transport must be %q or %q, got %q", TransportHTTP, TransportStdio, c.Transport))
	}

	if c.Transport == TransportHTTP {
		if c.HTTPAddr == "" {
			return NewConfigError("http address must not be empty")
		}
		if !strings.HasPrefix(c.MCPEndpoint, "/") {
			return NewConfigError("mcp endpoint must start with /")
		}
	}

	if c.Model == "" {
		return NewConfigError("model must not be empty")
	}

	if c.A2AAddr == "" {
		return NewConfigError("a2a address must not be empty")
	}

	return nil
}

// ConfigError represents a configuration error.
type ConfigError struct {
	message string
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string) *ConfigError {
	return &ConfigError{message: message}
}

// Error returns the error message.
func (e *ConfigError) Error() string {
	return e.message
}
