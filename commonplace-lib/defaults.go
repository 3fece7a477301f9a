// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for caches, loggers and transformers

package commonplace

import (
	"context"
	"io"
	"os"
	"time"

	"commonplace-api/core/interfaces"
	"commonplace-api/core/transformer"
	"commonplace-api/infrastructure/cache/memory"
	"commonplace-api/infrastructure/cache/sqlite"
	httpInfra "commonplace-api/infrastructure/http/standard"
	"commonplace-api/infrastructure/logger/structured"
)

// DefaultMemoryCache creates a default in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache()
}

// DefaultSQLiteCache creates a SQLite cache with the given file path
func DefaultSQLiteCache(filePath string) (interfaces.Cache, error) {
	return sqlite.NewSQLiteCache(filePath)
}

// DefaultLogger creates a text logger that writes to stdout
func DefaultLogger() interfaces.Logger {
	return structured.NewLogger(structured.Options{Level: "info", Format: "text"})
}

// LoggerTo creates a logger writing to w at the given level
func LoggerTo(w io.Writer, level string) interfaces.Logger {
	return structured.NewWithWriter(w, level)
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return &quietLogger{}
}

// quietLogger is a logger that discards all output
type quietLogger struct{}

func (q *quietLogger) Debug(msg string, fields map[string]interface{}) {}
func (q *quietLogger) Info(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Warn(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Error(msg string, fields map[string]interface{}) {}

// CacheOption represents cache configuration options
type CacheOption struct {
	Type     CacheType
	FilePath string // For SQLite cache
}

// CacheType represents the type of cache
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeSQLite CacheType = "sqlite"
)

// WithCacheOption creates a cache based on the provided options
func WithCacheOption(opt CacheOption) Option {
	return func(c *Config) error {
		switch opt.Type {
		case CacheTypeMemory:
			c.Cache = DefaultMemoryCache()
		case CacheTypeSQLite:
			if opt.FilePath == "" {
				opt.FilePath = "commonplace_cache.db"
			}
			cache, err := DefaultSQLiteCache(opt.FilePath)
			if err != nil {
				return NewError(ErrorTypeConfiguration, "cannot open sqlite cache").WithCause(err)
			}
			c.Cache = cache
			c.closers = append(c.closers, func() error {
				if cl, ok := cache.(io.Closer); ok {
					return cl.Close()
				}
				return nil
			})
		default:
			return NewError(ErrorTypeConfiguration, "invalid cache type").
				WithContext("type", string(opt.Type))
		}
		return nil
	}
}

// WithRemoteTransformer sends text to an HTTP rewriting service
func WithRemoteTransformer(endpoint, apiKey string, timeout time.Duration) Option {
	return func(c *Config) error {
		client := httpInfra.NewStandardHTTPClient(timeout, httpInfra.WithBearerToken(apiKey))
		remote, err := transformer.NewRemote(client, endpoint, c.Logger)
		if err != nil {
			return NewError(ErrorTypeConfiguration, "invalid remote transformer").WithCause(err)
		}
		c.Transformer = remote
		return nil
	}
}

// WithGeminiTransformer rewrites text with a Gemini model. An empty apiKey
// falls back to the GEMINI_API_KEY environment variable.
func WithGeminiTransformer(ctx context.Context, apiKey, model string) Option {
	return func(c *Config) error {
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		gemini, err := transformer.NewGemini(ctx, apiKey, model)
		if err != nil {
			return NewError(ErrorTypeConfiguration, "invalid gemini transformer").WithCause(err)
		}
		c.Transformer = gemini
		c.closers = append(c.closers, gemini.Close)
		return nil
	}
}

// WithEchoTransformer returns text unchanged; useful for trying the pipeline offline
func WithEchoTransformer() Option {
	return WithTransformer(transformer.Echo{})
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = QuietLogger()
		return nil
	}
}
