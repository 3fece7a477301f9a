package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"commonplace-api/core/transformer"
	"commonplace-api/infrastructure/cache/memory"
	"commonplace-api/infrastructure/cache/sqlite"
	"commonplace-api/infrastructure/logger/structured"
	"commonplace-api/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *structured.Logger {
	return structured.NewWithWriter(&bytes.Buffer{}, "error")
}

func TestNewCache_Memory(t *testing.T) {
	cache, closeFn := newCache(config.CacheConfig{Type: "memory", Memory: config.MemoryConfig{CleanupInterval: 60}}, testLogger())
	defer closeFn()

	_, ok := cache.(*memory.MemoryCache)
	assert.True(t, ok)
}

func TestNewCache_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	cache, closeFn := newCache(config.CacheConfig{Type: "sqlite", SQLite: config.SQLiteConfig{Path: path}}, testLogger())
	defer closeFn()

	_, ok := cache.(*sqlite.Client)
	assert.True(t, ok)

	require.NoError(t, cache.Set(context.Background(), "k", []byte("v"), time.Minute))
}

func TestNewCache_UnreachableRedisFallsBack(t *testing.T) {
	cache, closeFn := newCache(config.CacheConfig{
		Type:  "redis",
		Redis: config.RedisConfig{Address: "127.0.0.1:1"},
	}, testLogger())
	defer closeFn()

	_, ok := cache.(*memory.MemoryCache)
	assert.True(t, ok)
}

func TestNewTransformer(t *testing.T) {
	ctx := context.Background()

	tr, closeFn, err := newTransformer(ctx, config.TransformerConfig{Type: "echo"}, testLogger())
	require.NoError(t, err)
	closeFn()
	assert.IsType(t, transformer.Echo{}, tr)

	tr, closeFn, err = newTransformer(ctx, config.TransformerConfig{Type: "remote", URL: "http://localhost:9/enhance", Timeout: time.Second}, testLogger())
	require.NoError(t, err)
	closeFn()
	assert.IsType(t, &transformer.Remote{}, tr)

	_, _, err = newTransformer(ctx, config.TransformerConfig{Type: "remote"}, testLogger())
	assert.Error(t, err, "remote needs a url")

	_, _, err = newTransformer(ctx, config.TransformerConfig{Type: "gemini"}, testLogger())
	assert.Error(t, err, "gemini needs an api key")

	_, _, err = newTransformer(ctx, config.TransformerConfig{Type: "carrier-pigeon"}, testLogger())
	assert.Error(t, err)
}

func TestDefaultFlags(t *testing.T) {
	assert.True(t, defaultFlags["enhance_enabled"])
	assert.False(t, defaultFlags["markdown_preview"])
}
