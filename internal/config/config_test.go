package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumcheck/sumcheck/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SUMCHECK_CONFIG", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPort, cfg.Port)
	assert.Equal(t, config.DefaultMaxCells, cfg.MaxCells)
	assert.Equal(t, config.DefaultAgentMaxTokens, cfg.AgentMaxTokens)
	assert.Equal(t, config.DefaultAgentMaxIterations, cfg.AgentMaxIter)
	assert.Equal(t, "X-API-Key", cfg.APIKeyHeader)
	assert.True(t, cfg.EnableAuth)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sumcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9100
environment: production
max_cells: 5000
api_keys: [alpha, beta]
`), 0o600))
	t.Setenv("SUMCHECK_CONFIG", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 5000, cfg.MaxCells)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.APIKeys)
	assert.False(t, cfg.IsDevelopment())
	// untouched fields keep defaults
	assert.Equal(t, config.DefaultMaxMagnitudes, cfg.MaxMagnitudes)
}

func TestLoadJSONFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sumcheck.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 9200, "max_magnitudes": 50}`), 0o600))
	t.Setenv("SUMCHECK_CONFIG", path)
	t.Setenv("SUMCHECK_PORT", "9300")
	t.Setenv("ENABLE_AUTH", "false")
	t.Setenv("SUMCHECK_API_KEYS", "k1,k2")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9300, cfg.Port)
	assert.Equal(t, 50, cfg.MaxMagnitudes)
	assert.False(t, cfg.EnableAuth)
	assert.Equal(t, []string{"k1", "k2"}, cfg.APIKeys)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("SUMCHECK_CONFIG", filepath.Join(t.TempDir(), "nope.json"))
	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"port", func(c *config.Config) { c.Port = 0 }},
		{"max cells", func(c *config.Config) { c.MaxCells = -1 }},
		{"max magnitudes", func(c *config.Config) { c.MaxMagnitudes = 0 }},
		{"rate limit", func(c *config.Config) { c.RateLimitPerMinute = -1 }},
		{"agent max tokens", func(c *config.Config) { c.AgentMaxTokens = 0 }},
		{"agent max iterations", func(c *config.Config) { c.AgentMaxIter = -2 }},
		{"confidence", func(c *config.Config) { c.ParserConfidence = 1.5 }},
		{"prefix", func(c *config.Config) { c.APIPrefix = "api" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, config.Defaults().Validate())

	disabled := config.Defaults()
	disabled.RateLimitPerMinute = 0
	assert.NoError(t, disabled.Validate(), "zero rate limit disables limiting")
}

func TestLoadAgentLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sumcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
agent_max_tokens: 512
agent_max_iterations: 3
rate_limit_per_minute: 0
`), 0o600))
	t.Setenv("SUMCHECK_CONFIG", path)
	t.Setenv("SUMCHECK_AGENT_MAX_ITERATIONS", "4")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.AgentMaxTokens)
	assert.Equal(t, 4, cfg.AgentMaxIter)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
}
