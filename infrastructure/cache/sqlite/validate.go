// ABOUTME: Key and value validation for the SQLite cache
// ABOUTME: Rejects unusable input and flags suspicious keys in the log

package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"commonplace-api/core/interfaces"
)

const (
	maxKeyLength   = 255
	maxValueLength = 4 * 1024 * 1024
)

var suspiciousPatterns = []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}

// ValidateKey validates a cache key. Keys with SQL-looking fragments are
// allowed because every query is parameterised, but they are logged.
func ValidateKey(key string, logger interfaces.Logger) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if len(key) > maxKeyLength {
		return fmt.Errorf("key too long: max %d characters", maxKeyLength)
	}

	if strings.Contains(key, "\x00") {
		return errors.New("key cannot contain null bytes")
	}

	if logger == nil {
		return nil
	}
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) {
			logger.Warn("Suspicious pattern detected in cache key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": truncateKey(key),
			})
		}
	}

	return nil
}

func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}

// ValidateValue validates a cache value
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}

	if len(value) > maxValueLength {
		return fmt.Errorf("value too large: max %d bytes", maxValueLength)
	}

	return nil
}
