// ABOUTME: Configuration options for the Commonplace library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package commonplace

import (
	"time"

	"commonplace-api/core/enhance"
	"commonplace-api/core/interfaces"
	"commonplace-api/core/workers"
	"commonplace-api/infrastructure/cache/memory"
	"commonplace-api/pkg/featureflags"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithTransformer sets the text rewriting backend
func WithTransformer(t interfaces.Transformer) Option {
	return func(c *Config) error {
		c.Transformer = t
		return nil
	}
}

// WithProposalStorage sets a custom proposal storage implementation
func WithProposalStorage(storage interfaces.ProposalStorage) Option {
	return func(c *Config) error {
		c.ProposalStorage = storage
		return nil
	}
}

// WithWorkerConfig sets the worker pool configuration
func WithWorkerConfig(config workers.WorkerConfig) Option {
	return func(c *Config) error {
		c.WorkerConfig = config
		return nil
	}
}

// WithBackgroundProcessing enables or disables the batch worker pool
func WithBackgroundProcessing(enabled bool) Option {
	return func(c *Config) error {
		c.EnableBackgroundProcessing = enabled
		return nil
	}
}

// WithTimeout bounds a single transformation
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 {
			return NewError(ErrorTypeConfiguration, "timeout cannot be negative")
		}
		c.Enhance.Timeout = timeout
		return nil
	}
}

// WithProposalTTL sets how long proposals wait for acceptance; zero keeps them forever
func WithProposalTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl < 0 {
			return NewError(ErrorTypeConfiguration, "proposal ttl cannot be negative")
		}
		c.Enhance.ProposalTTL = ttl
		return nil
	}
}

// WithMaxContentBytes caps the size of submitted HTML; zero disables the check
func WithMaxContentBytes(n int) Option {
	return func(c *Config) error {
		c.Enhance.MaxContentBytes = n
		return nil
	}
}

// WithMarkdownPreview enables or disables markdown rendering of proposals
func WithMarkdownPreview(enabled bool) Option {
	return func(c *Config) error {
		c.Flags.SetEnabled(featureflags.MarkdownPreview, enabled)
		return nil
	}
}

// WithResultCache enables or disables reuse of transformer output
func WithResultCache(enabled bool) Option {
	return func(c *Config) error {
		c.Flags.SetEnabled(featureflags.ResultCacheEnabled, enabled)
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		Cache:        memory.NewMemoryCache(),
		Logger:       QuietLogger(),
		Enhance:      enhance.DefaultOptions(),
		WorkerConfig: workers.DefaultWorkerConfig(),
		Flags: featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
			featureflags.EnhanceEnabled:     true,
			featureflags.ResultCacheEnabled: true,
			featureflags.BatchEnabled:       true,
			featureflags.MarkdownPreview:    true,
		}),
		EnableBackgroundProcessing: false,
	}
}
