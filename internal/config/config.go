package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	Host        string `json:"host" yaml:"host"`
	Port        int    `json:"port" yaml:"port"`
	Environment string `json:"environment" yaml:"environment"`
	APIPrefix   string `json:"api_prefix" yaml:"api_prefix"`
	LogLevel    string `json:"log_level" yaml:"log_level"`

	// CORS
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins"`

	// Auth
	APIKeyHeader string   `json:"api_key_header" yaml:"api_key_header"`
	APIKeys      []string `json:"api_keys" yaml:"api_keys"`
	EnableAuth   bool     `json:"enable_auth" yaml:"enable_auth"`

	// Rate Limiting (0 disables)
	RateLimitPerMinute int `json:"rate_limit_per_minute" yaml:"rate_limit_per_minute"`

	// Solver
	MaxCells      int `json:"max_cells" yaml:"max_cells"`
	MaxMagnitudes int `json:"max_magnitudes" yaml:"max_magnitudes"`

	// Storage
	DatabaseURL     string `json:"database_url" yaml:"database_url"`
	MemoryStoreSize int    `json:"memory_store_size" yaml:"memory_store_size"`

	// Security
	EnableAuditLogging bool `json:"enable_audit_logging" yaml:"enable_audit_logging"`
	MaxPromptLength    int  `json:"max_prompt_length" yaml:"max_prompt_length"`

	// AI / LLM
	AnthropicAPIKey   string  `json:"anthropic_api_key" yaml:"anthropic_api_key"`
	AnthropicBaseURL  string  `json:"anthropic_base_url" yaml:"anthropic_base_url"` // override for compatible proxies
	AgentName         string  `json:"agent_name" yaml:"agent_name"`
	AgentInstructions string  `json:"agent_instructions" yaml:"agent_instructions"`
	AgentModel        string  `json:"agent_model" yaml:"agent_model"`
	AgentTimeout      int     `json:"agent_timeout" yaml:"agent_timeout"`
	AgentMaxTokens    int     `json:"agent_max_tokens" yaml:"agent_max_tokens"`
	AgentMaxIter      int     `json:"agent_max_iterations" yaml:"agent_max_iterations"`
	ParserConfidence  float64 `json:"parser_confidence" yaml:"parser_confidence"`
}

func Load() (*Config, error) {
	cfg := Defaults()

	// Load from config file if specified
	if path := getEnv("SUMCHECK_CONFIG", ""); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	// Environment overrides
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns a Config populated with the built-in defaults.
func Defaults() *Config {
	return &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		Environment:        DefaultEnvironment,
		APIPrefix:          DefaultAPIPrefix,
		LogLevel:           DefaultLogLevel,
		CORSOrigins:        DefaultCORSOrigins,
		APIKeyHeader:       "X-API-Key",
		EnableAuth:         true,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		MaxCells:           DefaultMaxCells,
		MaxMagnitudes:      DefaultMaxMagnitudes,
		MemoryStoreSize:    DefaultMemoryStoreSize,
		EnableAuditLogging: true,
		MaxPromptLength:    DefaultMaxPromptLength,
		AgentName:          DefaultAgentName,
		AgentInstructions:  DefaultAgentInstructions,
		AgentModel:         DefaultAgentModel,
		AgentTimeout:       DefaultAgentTimeout,
		AgentMaxTokens:     DefaultAgentMaxTokens,
		AgentMaxIter:       DefaultAgentMaxIterations,
		ParserConfidence:   DefaultParserConfidence,
	}
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxCells <= 0 {
		return fmt.Errorf("max_cells must be positive, got %d", c.MaxCells)
	}
	if c.MaxMagnitudes <= 0 {
		return fmt.Errorf("max_magnitudes must be positive, got %d", c.MaxMagnitudes)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("rate_limit_per_minute must not be negative, got %d", c.RateLimitPerMinute)
	}
	if c.AgentMaxTokens <= 0 {
		return fmt.Errorf("agent_max_tokens must be positive, got %d", c.AgentMaxTokens)
	}
	if c.AgentMaxIter <= 0 {
		return fmt.Errorf("agent_max_iterations must be positive, got %d", c.AgentMaxIter)
	}
	if c.ParserConfidence < 0 || c.ParserConfidence > 1 {
		return fmt.Errorf("parser_confidence must be within [0, 1], got %.2f", c.ParserConfidence)
	}
	if !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("api_prefix must start with '/', got %q", c.APIPrefix)
	}
	return nil
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("SUMCHECK_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("SUMCHECK_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("SUMCHECK_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("SUMCHECK_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("SUMCHECK_API_KEYS", ""); v != "" {
		cfg.APIKeys = strings.Split(v, ",")
	}
	if v := getEnv("ENABLE_AUTH", ""); v != "" {
		cfg.EnableAuth = v == "true" || v == "1"
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("SUMCHECK_MAX_CELLS", ""); v != "" {
		if c, err := strconv.Atoi(v); err == nil {
			cfg.MaxCells = c
		}
	}
	if v := getEnv("SUMCHECK_MAX_MAGNITUDES", ""); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			cfg.MaxMagnitudes = m
		}
	}
	if v := getEnv("DATABASE_URL", ""); v != "" {
		cfg.DatabaseURL = v
	}
	if v := getEnv("SUMCHECK_AUDIT_LOGGING", ""); v != "" {
		cfg.EnableAuditLogging = v == "true" || v == "1"
	}
	if v := getEnv("ANTHROPIC_API_KEY", ""); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := getEnv("ANTHROPIC_BASE_URL", ""); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := getEnv("SUMCHECK_AGENT_MODEL", ""); v != "" {
		cfg.AgentModel = v
	}
	if v := getEnv("SUMCHECK_AGENT_MAX_TOKENS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AgentMaxTokens = n
		}
	}
	if v := getEnv("SUMCHECK_AGENT_MAX_ITERATIONS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AgentMaxIter = n
		}
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
