package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, New().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "unknown transport",
			mutate: func(c *Config) { c.Transport = "grpc" },
		},
		{
			name:   "empty http address",
			mutate: func(c *Config) { c.HTTPAddr = "" },
		},
		{
			name:   "endpoint without leading slash",
			mutate: func(c *Config) { c.MCPEndpoint = "mcp" },
		},
		{
			name:   "empty model",
			mutate: func(c *Config) { c.Model = "" },
		},
		{
			name:   "empty a2a address",
			mutate: func(c *Config) { c.A2AAddr = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestStdioSkipsHTTPChecks(t *testing.T) {
	cfg := New()
	cfg.Transport = TransportStdio
	cfg.HTTPAddr = ""
	cfg.MCPEndpoint = ""

	assert.NoError(t, cfg.Validate())
}
