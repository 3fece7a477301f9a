// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, transformer, enhancement and logging

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Transformer selects and configures the text rewriting backend
	Transformer TransformerConfig

	// Enhance tunes the enhancement pipeline
	Enhance EnhanceConfig

	// Log configures the logger
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests allowed per window per client
	RateLimit int

	// RateWindow is the rate limit window
	RateWindow time.Duration

	// MaxContentBytes caps the size of submitted HTML
	MaxContentBytes int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int

	// KeyPrefix namespaces every key written by this service
	KeyPrefix string
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// CleanupInterval is how often expired entries are purged, in seconds
	CleanupInterval int
}

// TransformerConfig selects the rewriting backend
type TransformerConfig struct {
	// Type is remote, gemini or echo
	Type string

	// URL is the remote transformer endpoint
	URL string

	// APIKey is sent as a bearer token to the remote transformer
	APIKey string

	// GeminiAPIKey authenticates against the Gemini API
	GeminiAPIKey string

	// GeminiModel is the Gemini model name
	GeminiModel string

	// Timeout bounds a single transformation
	Timeout time.Duration
}

// EnhanceConfig tunes the enhancement pipeline
type EnhanceConfig struct {
	// CacheTTL is how long transformer results are reused
	CacheTTL time.Duration

	// ProposalTTL is how long a proposal waits for acceptance
	ProposalTTL time.Duration

	// BatchWorkers is the number of concurrent batch workers
	BatchWorkers int
}

// LogConfig configures the logger
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string

	// Format is json or text
	Format string

	// File enables rotating file output when set
	File string
}

// LoadFromEnv loads configuration from environment variables.
// A .env file in the working directory is read first if present; real
// environment variables take precedence over it.
func LoadFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8000"),
			RateLimit:       getEnvAsIntOrDefault("RATE_LIMIT", 60),
			RateWindow:      time.Duration(getEnvAsIntOrDefault("RATE_WINDOW_SECONDS", 60)) * time.Second,
			MaxContentBytes: getEnvAsIntOrDefault("MAX_CONTENT_BYTES", 512*1024),
		},
		Cache: CacheConfig{
			Type: strings.ToLower(getEnvOrDefault("CACHE_TYPE", "memory")),
			Redis: RedisConfig{
				Address:   getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:  getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:        getEnvAsIntOrDefault("REDIS_DB", 0),
				KeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "commonplace:"),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "commonplace_cache.db"),
			},
			Memory: MemoryConfig{
				CleanupInterval: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 600),
			},
		},
		Transformer: TransformerConfig{
			Type:         strings.ToLower(getEnvOrDefault("TRANSFORMER_TYPE", "echo")),
			URL:          getEnvOrDefault("TRANSFORMER_URL", ""),
			APIKey:       getEnvOrDefault("TRANSFORMER_API_KEY", ""),
			GeminiAPIKey: getEnvOrDefault("GEMINI_API_KEY", ""),
			GeminiModel:  getEnvOrDefault("GEMINI_MODEL", ""),
			Timeout:      time.Duration(getEnvAsIntOrDefault("TRANSFORMER_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Enhance: EnhanceConfig{
			CacheTTL:     time.Duration(getEnvAsIntOrDefault("ENHANCE_CACHE_TTL", 3600)) * time.Second,
			ProposalTTL:  time.Duration(getEnvAsIntOrDefault("PROPOSAL_TTL", 86400)) * time.Second,
			BatchWorkers: getEnvAsIntOrDefault("BATCH_WORKERS", 4),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 1 {
		return errors.New("rate limit must be at least 1")
	}

	if c.Server.RateWindow < time.Second {
		return errors.New("rate window must be at least 1 second")
	}

	if c.Server.MaxContentBytes < 1 {
		return errors.New("max content bytes must be positive")
	}

	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "sqlite":
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	switch c.Transformer.Type {
	case "echo":
	case "remote":
		if c.Transformer.URL == "" {
			return errors.New("transformer url cannot be empty when using remote transformer")
		}
	case "gemini":
		if c.Transformer.GeminiAPIKey == "" {
			return errors.New("gemini api key cannot be empty when using gemini transformer")
		}
	default:
		return errors.New("transformer type must be 'remote', 'gemini' or 'echo'")
	}

	if c.Transformer.Timeout < time.Second {
		return errors.New("transformer timeout must be at least 1 second")
	}

	if c.Enhance.BatchWorkers < 1 {
		return errors.New("batch workers must be at least 1")
	}

	if c.Enhance.CacheTTL < 0 || c.Enhance.ProposalTTL < 0 {
		return errors.New("ttl values cannot be negative")
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return errors.New("log format must be 'json' or 'text'")
	}

	return nil
}
