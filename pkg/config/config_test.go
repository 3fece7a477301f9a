package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name             string
		envVars          map[string]string
		expectedPort     string
		expectedLimit    int
		expectedMaxBytes int
	}{
		{
			name:             "defaults when nothing set",
			envVars:          map[string]string{},
			expectedPort:     "8000",
			expectedLimit:    60,
			expectedMaxBytes: 512 * 1024,
		},
		{
			name:             "uses PORT env var when set",
			envVars:          map[string]string{"PORT": "3000"},
			expectedPort:     "3000",
			expectedLimit:    60,
			expectedMaxBytes: 512 * 1024,
		},
		{
			name:             "uses RATE_LIMIT and MAX_CONTENT_BYTES when set",
			envVars:          map[string]string{"RATE_LIMIT": "5", "MAX_CONTENT_BYTES": "1024"},
			expectedPort:     "8000",
			expectedLimit:    5,
			expectedMaxBytes: 1024,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := LoadFromEnv()
			if err != nil {
				t.Fatalf("LoadFromEnv() error = %v", err)
			}

			if cfg.Server.Port != tt.expectedPort {
				t.Errorf("Port = %v, want %v", cfg.Server.Port, tt.expectedPort)
			}
			if cfg.Server.RateLimit != tt.expectedLimit {
				t.Errorf("RateLimit = %v, want %v", cfg.Server.RateLimit, tt.expectedLimit)
			}
			if cfg.Server.MaxContentBytes != tt.expectedMaxBytes {
				t.Errorf("MaxContentBytes = %v, want %v", cfg.Server.MaxContentBytes, tt.expectedMaxBytes)
			}
		})
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Cache.Type != "memory" {
		t.Errorf("Cache.Type = %v, want memory", cfg.Cache.Type)
	}
	if cfg.Transformer.Type != "echo" {
		t.Errorf("Transformer.Type = %v, want echo", cfg.Transformer.Type)
	}
	if cfg.Transformer.Timeout != 60*time.Second {
		t.Errorf("Transformer.Timeout = %v, want 60s", cfg.Transformer.Timeout)
	}
	if cfg.Enhance.CacheTTL != time.Hour {
		t.Errorf("Enhance.CacheTTL = %v, want 1h", cfg.Enhance.CacheTTL)
	}
	if cfg.Enhance.ProposalTTL != 24*time.Hour {
		t.Errorf("Enhance.ProposalTTL = %v, want 24h", cfg.Enhance.ProposalTTL)
	}
	if cfg.Enhance.BatchWorkers != 4 {
		t.Errorf("Enhance.BatchWorkers = %v, want 4", cfg.Enhance.BatchWorkers)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want info/json", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromEnv_InvalidIntFallsBack(t *testing.T) {
	os.Clearenv()
	os.Setenv("BATCH_WORKERS", "not-a-number")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Enhance.BatchWorkers != 4 {
		t.Errorf("BatchWorkers = %v, want %v (default)", cfg.Enhance.BatchWorkers, 4)
	}
}

func TestLoadFromEnv_NormalizesCase(t *testing.T) {
	os.Clearenv()
	os.Setenv("CACHE_TYPE", "Redis")
	os.Setenv("TRANSFORMER_TYPE", "GEMINI")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Cache.Type != "redis" {
		t.Errorf("Cache.Type = %v, want redis", cfg.Cache.Type)
	}
	if cfg.Transformer.Type != "gemini" {
		t.Errorf("Transformer.Type = %v, want gemini", cfg.Transformer.Type)
	}
}

func TestLoadFromEnv_ReadsDotEnv(t *testing.T) {
	os.Clearenv()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9100\nTRANSFORMER_URL=http://rewrite.local\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	os.Setenv("PORT", "9200")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Server.Port != "9200" {
		t.Errorf("Port = %v, want 9200 (environment wins over .env)", cfg.Server.Port)
	}
	if cfg.Transformer.URL != "http://rewrite.local" {
		t.Errorf("Transformer.URL = %v, want value from .env", cfg.Transformer.URL)
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8000",
			RateLimit:       60,
			RateWindow:      time.Minute,
			MaxContentBytes: 1024,
		},
		Cache:       CacheConfig{Type: "memory"},
		Transformer: TransformerConfig{Type: "echo", Timeout: time.Minute},
		Enhance:     EnhanceConfig{BatchWorkers: 2, CacheTTL: time.Hour, ProposalTTL: time.Hour},
		Log:         LogConfig{Level: "info", Format: "json"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: true,
			errMsg:  "port cannot be empty",
		},
		{
			name:    "rate limit less than 1",
			mutate:  func(c *Config) { c.Server.RateLimit = 0 },
			wantErr: true,
			errMsg:  "rate limit must be at least 1",
		},
		{
			name:    "invalid cache type",
			mutate:  func(c *Config) { c.Cache.Type = "invalid" },
			wantErr: true,
			errMsg:  "cache type must be 'memory', 'redis' or 'sqlite'",
		},
		{
			name: "redis type with empty address",
			mutate: func(c *Config) {
				c.Cache.Type = "redis"
				c.Cache.Redis.Address = ""
			},
			wantErr: true,
			errMsg:  "redis address cannot be empty when using redis cache",
		},
		{
			name: "sqlite type with path",
			mutate: func(c *Config) {
				c.Cache.Type = "sqlite"
				c.Cache.SQLite.Path = "cache.db"
			},
			wantErr: false,
		},
		{
			name:    "remote transformer without url",
			mutate:  func(c *Config) { c.Transformer.Type = "remote" },
			wantErr: true,
			errMsg:  "transformer url cannot be empty when using remote transformer",
		},
		{
			name:    "gemini transformer without key",
			mutate:  func(c *Config) { c.Transformer.Type = "gemini" },
			wantErr: true,
			errMsg:  "gemini api key cannot be empty when using gemini transformer",
		},
		{
			name:    "unknown transformer",
			mutate:  func(c *Config) { c.Transformer.Type = "openai" },
			wantErr: true,
			errMsg:  "transformer type must be 'remote', 'gemini' or 'echo'",
		},
		{
			name:    "zero batch workers",
			mutate:  func(c *Config) { c.Enhance.BatchWorkers = 0 },
			wantErr: true,
			errMsg:  "batch workers must be at least 1",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "log format must be 'json' or 'text'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errMsg != "" && err.Error() != tt.errMsg {
				t.Errorf("Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}
