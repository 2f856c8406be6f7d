package config

import (
	"testing"
)

func baseConfig() Config {
	cfg := Config{}
	cfg.HTTP.Port = 5001
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := baseConfig()

	if cfg.Database.Driver != "none" {
		t.Errorf("database.driver default = %q, want none", cfg.Database.Driver)
	}
	if cfg.Retrieval.TopK != 3 {
		t.Errorf("retrieval.top_k default = %d, want 3", cfg.Retrieval.TopK)
	}
	if cfg.Retrieval.EscalationThreshold != 0.15 {
		t.Errorf("escalation_threshold default = %f, want 0.15", cfg.Retrieval.EscalationThreshold)
	}
	if cfg.Retrieval.ConfidenceFloor != 0.3 || cfg.Retrieval.ConfidenceCeiling != 0.95 {
		t.Errorf("confidence bounds default = [%f, %f], want [0.3, 0.95]",
			cfg.Retrieval.ConfidenceFloor, cfg.Retrieval.ConfidenceCeiling)
	}
	if cfg.Retrieval.DefaultSimilarity != 0.4 {
		t.Errorf("default_similarity default = %f, want 0.4", cfg.Retrieval.DefaultSimilarity)
	}
	if len(cfg.Generation.Models) != 1 || cfg.Generation.Models[0] != "gemini-1.5-flash" {
		t.Errorf("generation.models default = %v", cfg.Generation.Models)
	}
	if cfg.Generation.DefaultLanguage != "ml" {
		t.Errorf("default_language default = %q, want ml", cfg.Generation.DefaultLanguage)
	}
	if cfg.Vision.Model != "microsoft/resnet-50" {
		t.Errorf("vision.model default = %q", cfg.Vision.Model)
	}
	if cfg.Vision.TimeoutSec != 60 {
		t.Errorf("vision.timeout_sec default = %d, want 60", cfg.Vision.TimeoutSec)
	}
	if cfg.Storage.KeyPrefix != "krishiai:" {
		t.Errorf("storage.key_prefix default = %q", cfg.Storage.KeyPrefix)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"zero port", func(c *Config) { c.HTTP.Port = 0 }, true},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }, true},
		{"redis without addrs", func(c *Config) { c.Database.Driver = "redis" }, true},
		{"redis with addrs", func(c *Config) {
			c.Database.Driver = "redis"
			c.Database.Addrs = []string{"localhost:6379"}
		}, false},
		{"floor above ceiling", func(c *Config) {
			c.Retrieval.ConfidenceFloor = 0.96
		}, true},
		{"unknown language", func(c *Config) { c.Generation.DefaultLanguage = "fr" }, true},
		{"english default", func(c *Config) { c.Generation.DefaultLanguage = "en" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("KRISHI_TEST_KEY", "secret")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "api_key: ${KRISHI_TEST_KEY}", "api_key: secret"},
		{"unset variable", "api_key: ${KRISHI_TEST_UNSET}", "api_key: "},
		{"default used", "port: ${KRISHI_TEST_UNSET:-5001}", "port: 5001"},
		{"default ignored when set", "key: ${KRISHI_TEST_KEY:-other}", "key: secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
