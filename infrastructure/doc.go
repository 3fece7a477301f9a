// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, logging and proposal storage.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache backed by go-cache
// - cache/redis: Redis-based cache implementation
// - cache/sqlite: SQLite-based cache for single-node persistence
// - http/standard: Standard library HTTP client with retry logic
// - logger/structured: logrus logger with optional rotating file output
// - storage/cached: Proposal storage on top of any cache
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address:   "localhost:6379",
//	    KeyPrefix: "commonplace:",
//	})
//
// A missing key is reported as interfaces.ErrCacheMiss by every backend.
//
// # HTTP Client
//
// The HTTP client includes automatic retry logic for transient failures:
//
//	client := standard.NewStandardHTTPClient(30*time.Second, standard.WithBearerToken(key))
//	resp, err := client.Post(ctx, "https://rewrite.example.com", body)
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := structured.NewLogger(structured.Options{Level: "info", Format: "json"})
//	logger.Info("Enhancement started", map[string]interface{}{
//	    "document_id": "note-42",
//	    "mode":        "polish",
//	})
//
package infrastructure
