// ABOUTME: SQLite-based cache implementation for persistent caching
// ABOUTME: Keeps transformer results and proposals across application restarts

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"commonplace-api/core/interfaces"

	_ "github.com/mattn/go-sqlite3"
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = interfaces.ErrCacheMiss

// noExpiry marks rows written with a zero TTL
const noExpiry int64 = 0

// Client implements the Cache interface using SQLite
type Client struct {
	db       *sql.DB
	filePath string
	logger   interfaces.Logger
	stop     chan struct{}
	once     sync.Once
}

// NewSQLiteCache creates a new SQLite cache client
func NewSQLiteCache(filePath string) (*Client, error) {
	return NewSQLiteCacheWithLogger(filePath, nil)
}

// NewSQLiteCacheWithLogger creates a client that reports suspicious keys to logger
func NewSQLiteCacheWithLogger(filePath string, logger interfaces.Logger) (*Client, error) {
	if filePath == "" {
		filePath = "commonplace_cache.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	client := &Client{
		db:       db,
		filePath: filePath,
		logger:   logger,
		stop:     make(chan struct{}),
	}

	if err := client.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	go client.cleanupRoutine(5 * time.Minute)

	return client, nil
}

func (c *Client) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS cache (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			expiry INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_expiry ON cache(expiry);
	`

	_, err := c.db.Exec(query)
	return err
}

// Get retrieves a value from the cache
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key, nil); err != nil {
		return nil, err
	}

	var value []byte
	query := "SELECT value FROM cache WHERE key = ? AND (expiry = ? OR expiry > ?)"
	err := c.db.QueryRowContext(ctx, query, key, noExpiry, time.Now().UnixNano()).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}

	return value, nil
}

// Set stores a value in the cache with TTL; zero means no expiry
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ValidateKey(key, c.logger); err != nil {
		return err
	}
	if err := ValidateValue(value); err != nil {
		return err
	}

	expiry := noExpiry
	if ttl > 0 {
		expiry = time.Now().Add(ttl).UnixNano()
	}

	query := "INSERT OR REPLACE INTO cache (key, value, expiry) VALUES (?, ?, ?)"
	if _, err := c.db.ExecContext(ctx, query, key, value, expiry); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

// Delete removes a value from the cache
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key, nil); err != nil {
		return err
	}

	if _, err := c.db.ExecContext(ctx, "DELETE FROM cache WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}

// Clear removes all values from the cache
func (c *Client) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM cache"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	return nil
}

func (c *Client) cleanupRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

func (c *Client) cleanup() {
	_, err := c.db.Exec("DELETE FROM cache WHERE expiry != ? AND expiry <= ?", noExpiry, time.Now().UnixNano())
	if err != nil && c.logger != nil {
		c.logger.Warn("SQLite cache cleanup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Close stops the cleanup routine and closes the database connection
func (c *Client) Close() error {
	c.once.Do(func() { close(c.stop) })
	return c.db.Close()
}

// Stats returns cache statistics
func (c *Client) Stats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM cache").Scan(&count); err != nil {
		return nil, err
	}
	stats["total_entries"] = count

	var expired int
	err := c.db.QueryRow("SELECT COUNT(*) FROM cache WHERE expiry != ? AND expiry <= ?", noExpiry, time.Now().UnixNano()).Scan(&expired)
	if err != nil {
		return nil, err
	}
	stats["expired_entries"] = expired

	var pageCount, pageSize int
	if err := c.db.QueryRow("PRAGMA page_count").Scan(&pageCount); err == nil {
		if err := c.db.QueryRow("PRAGMA page_size").Scan(&pageSize); err == nil {
			stats["db_size_bytes"] = pageCount * pageSize
		}
	}

	stats["file_path"] = c.filePath

	return stats, nil
}
