// ABOUTME: Backend selection for the API server
// ABOUTME: Builds the configured cache and transformer, falling back where a backend is unreachable

package main

import (
	"context"
	"fmt"
	"time"

	"commonplace-api/api/middleware"
	"commonplace-api/core/interfaces"
	"commonplace-api/core/transformer"
	"commonplace-api/infrastructure/cache/memory"
	"commonplace-api/infrastructure/cache/redis"
	"commonplace-api/infrastructure/cache/sqlite"
	stdhttp "commonplace-api/infrastructure/http/standard"
	"commonplace-api/pkg/config"
	"commonplace-api/pkg/featureflags"
)

// defaultFlags apply when no FEATURE_* variable overrides them
var defaultFlags = map[featureflags.FeatureFlag]bool{
	featureflags.EnhanceEnabled:     true,
	featureflags.ResultCacheEnabled: true,
	featureflags.BatchEnabled:       true,
	featureflags.MarkdownPreview:    false,
	featureflags.RateLimitEnabled:   true,
}

// newCache returns the configured cache and a function closing it.
// Unreachable redis or sqlite backends fall back to memory.
func newCache(cfg config.CacheConfig, logger interfaces.Logger) (interfaces.Cache, func()) {
	fallback := func(backend string, err error) (interfaces.Cache, func()) {
		logger.Error("Failed to create cache, falling back to memory", map[string]interface{}{
			"backend": backend,
			"error":   err.Error(),
		})
		return newMemoryCache(cfg), func() {}
	}

	switch cfg.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			return fallback("redis", err)
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return redisCache, func() { _ = redisCache.Close() }
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCacheWithLogger(cfg.SQLite.Path, logger)
		if err != nil {
			return fallback("sqlite", err)
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLite.Path,
		})
		return sqliteCache, func() { _ = sqliteCache.Close() }
	default:
		logger.Info("Using memory cache", nil)
		return newMemoryCache(cfg), func() {}
	}
}

func newMemoryCache(cfg config.CacheConfig) interfaces.Cache {
	if cfg.Memory.CleanupInterval > 0 {
		return memory.NewMemoryCacheWithCleanup(time.Duration(cfg.Memory.CleanupInterval) * time.Second)
	}
	return memory.NewMemoryCache()
}

// newTransformer returns the configured transformer and a function releasing it
func newTransformer(ctx context.Context, cfg config.TransformerConfig, logger interfaces.Logger) (interfaces.Transformer, func(), error) {
	switch cfg.Type {
	case "remote":
		client := stdhttp.NewStandardHTTPClient(cfg.Timeout,
			stdhttp.WithBearerToken(cfg.APIKey),
			stdhttp.WithTransport(&middleware.LoggingRoundTripper{Logger: logger}),
		)
		remote, err := transformer.NewRemote(client, cfg.URL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("remote transformer: %w", err)
		}
		return remote, func() {}, nil
	case "gemini":
		gemini, err := transformer.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, fmt.Errorf("gemini transformer: %w", err)
		}
		return gemini, func() { _ = gemini.Close() }, nil
	case "echo":
		logger.Warn("Using echo transformer; documents are returned unchanged", nil)
		return transformer.Echo{}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown transformer type %q", cfg.Type)
	}
}
