package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the Krishi AI service configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Generation GenerationConfig `yaml:"generation"`
	Vision     VisionConfig     `yaml:"vision"`
	Knowledge  KnowledgeConfig  `yaml:"knowledge"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
// An empty key list disables authentication.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds the feedback store connection settings.
// Driver "none" runs the service without persistence.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, none (default: none)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// RetrievalConfig holds ranking and scoring knobs. The thresholds are
// tuned heuristics, kept configurable rather than hardcoded.
type RetrievalConfig struct {
	TopK                int     `yaml:"top_k"`
	EscalationThreshold float64 `yaml:"escalation_threshold"`
	ConfidenceBoost     float64 `yaml:"confidence_boost"`
	ConfidenceFloor     float64 `yaml:"confidence_floor"`
	ConfidenceCeiling   float64 `yaml:"confidence_ceiling"`
	DefaultSimilarity   float64 `yaml:"default_similarity"`
}

// GenerationConfig holds the external chat-completion settings.
// Models is an ordered fallback list; each candidate is tried once per request.
type GenerationConfig struct {
	APIKey          string   `yaml:"api_key"`
	BaseURL         string   `yaml:"base_url"`
	Models          []string `yaml:"models"`
	TimeoutSec      int      `yaml:"timeout_sec"`
	DefaultLanguage string   `yaml:"default_language"`
}

// VisionConfig holds the image classification provider settings.
type VisionConfig struct {
	APIToken   string `yaml:"api_token"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// KnowledgeConfig holds the corpus source settings.
type KnowledgeConfig struct {
	Path string `yaml:"path"` // empty = built-in seed corpus
}

// StorageConfig holds key naming and retention for the feedback store.
type StorageConfig struct {
	KeyPrefix     string `yaml:"key_prefix"`
	RetentionDays int    `yaml:"retention_days"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "none"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = 3
	}
	if c.Retrieval.EscalationThreshold <= 0 {
		c.Retrieval.EscalationThreshold = 0.15
	}
	if c.Retrieval.ConfidenceBoost <= 0 {
		c.Retrieval.ConfidenceBoost = 0.3
	}
	if c.Retrieval.ConfidenceFloor <= 0 {
		c.Retrieval.ConfidenceFloor = 0.3
	}
	if c.Retrieval.ConfidenceCeiling <= 0 {
		c.Retrieval.ConfidenceCeiling = 0.95
	}
	if c.Retrieval.DefaultSimilarity <= 0 {
		c.Retrieval.DefaultSimilarity = 0.4
	}
	if len(c.Generation.Models) == 0 {
		c.Generation.Models = []string{"gemini-1.5-flash"}
	}
	if c.Generation.TimeoutSec <= 0 {
		c.Generation.TimeoutSec = 30
	}
	if c.Generation.DefaultLanguage == "" {
		c.Generation.DefaultLanguage = "ml"
	}
	if c.Vision.BaseURL == "" {
		c.Vision.BaseURL = "https://api-inference.huggingface.co"
	}
	if c.Vision.Model == "" {
		c.Vision.Model = "microsoft/resnet-50"
	}
	if c.Vision.TimeoutSec <= 0 {
		c.Vision.TimeoutSec = 60
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "krishiai:"
	}
	if c.Storage.RetentionDays <= 0 {
		c.Storage.RetentionDays = 90
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "none":
	case "redis":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"none\", got %q", c.Database.Driver)
	}
	if c.Retrieval.ConfidenceFloor > c.Retrieval.ConfidenceCeiling {
		return fmt.Errorf("retrieval.confidence_floor %.2f exceeds ceiling %.2f",
			c.Retrieval.ConfidenceFloor, c.Retrieval.ConfidenceCeiling)
	}
	switch c.Generation.DefaultLanguage {
	case "ml", "en":
	default:
		return fmt.Errorf("generation.default_language must be \"ml\" or \"en\", got %q",
			c.Generation.DefaultLanguage)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
