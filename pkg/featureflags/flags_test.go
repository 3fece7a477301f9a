package featureflags

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnhanceEnabled_DisabledByDefault(t *testing.T) {
	manager := NewEnvManager("TEST_FEATURE_")
	ctx := context.Background()
	
	// Should be disabled when env var not set
	assert.False(t, manager.IsEnabled(ctx, EnhanceEnabled))
}

func TestEnhanceEnabled_EnabledWhenFlagSet(t *testing.T) {
	// Set environment variable
	os.Setenv("TEST_FEATURE_ENHANCE_ENABLED", "true")
	defer os.Unsetenv("TEST_FEATURE_ENHANCE_ENABLED")
	
	manager := NewEnvManager("TEST_FEATURE_")
	ctx := context.Background()
	
	assert.True(t, manager.IsEnabled(ctx, EnhanceEnabled))
}

func TestEnvManager_MultipleValues(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"true lowercase", "true", true},
		{"TRUE uppercase", "TRUE", true},
		{"1 numeric", "1", true},
		{"enabled", "enabled", true},
		{"ENABLED", "ENABLED", true},
		{"false", "false", false},
		{"0", "0", false},
		{"empty", "", false},
		{"other", "yes", false},
	}
	
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("TEST_FLAG", tt.value)
			defer os.Unsetenv("TEST_FLAG")
			
			manager := NewEnvManager("TEST_")
			ctx := context.Background()
			
			assert.Equal(t, tt.expected, manager.IsEnabled(ctx, "FLAG"))
		})
	}
}

func TestEnvManager_SetEnabled(t *testing.T) {
	manager := NewEnvManager("TEST_")
	ctx := context.Background()
	
	// Initially disabled
	assert.False(t, manager.IsEnabled(ctx, BatchEnabled))
	
	// Enable via SetEnabled
	manager.SetEnabled(BatchEnabled, true)
	assert.True(t, manager.IsEnabled(ctx, BatchEnabled))
	
	// Disable via SetEnabled
	manager.SetEnabled(BatchEnabled, false)
	assert.False(t, manager.IsEnabled(ctx, BatchEnabled))
}

func TestEnvManager_OverrideTakesPrecedence(t *testing.T) {
	// Set env var to true
	os.Setenv("TEST_FEATURE_RESULT_CACHE_ENABLED", "true")
	defer os.Unsetenv("TEST_FEATURE_RESULT_CACHE_ENABLED")
	
	manager := NewEnvManager("TEST_FEATURE_")
	ctx := context.Background()
	
	// Should be true from env
	assert.True(t, manager.IsEnabled(ctx, ResultCacheEnabled))
	
	// Override to false
	manager.SetEnabled(ResultCacheEnabled, false)
	
	// Override should take precedence
	assert.False(t, manager.IsEnabled(ctx, ResultCacheEnabled))
}

func TestStaticManager(t *testing.T) {
	flags := map[FeatureFlag]bool{
		EnhanceEnabled: true,
		BatchEnabled: false,
		MarkdownPreview: true,
	}
	
	manager := NewStaticManager(flags)
	ctx := context.Background()
	
	assert.True(t, manager.IsEnabled(ctx, EnhanceEnabled))
	assert.False(t, manager.IsEnabled(ctx, BatchEnabled))
	assert.True(t, manager.IsEnabled(ctx, MarkdownPreview))
	assert.False(t, manager.IsEnabled(ctx, ResultCacheEnabled)) // Not in initial map
}

func TestStaticManager_SetEnabled(t *testing.T) {
	manager := NewStaticManager(nil)
	ctx := context.Background()
	
	// All disabled by default
	assert.False(t, manager.IsEnabled(ctx, RateLimitEnabled))
	
	// Enable flag
	manager.SetEnabled(RateLimitEnabled, true)
	assert.True(t, manager.IsEnabled(ctx, RateLimitEnabled))
}

func TestGetAllFlags(t *testing.T) {
	flags := map[FeatureFlag]bool{
		EnhanceEnabled:     true,
		BatchEnabled:       false,
		MarkdownPreview:    true,
				RateLimitEnabled:   true,
		ResultCacheEnabled: true,
	}
	
	manager := NewStaticManager(flags)
	allFlags := manager.GetAllFlags()
	
	assert.Equal(t, flags, allFlags)
}

func TestContextIntegration(t *testing.T) {
	manager := NewStaticManager(map[FeatureFlag]bool{
		EnhanceEnabled: true,
	})
	
	ctx := context.Background()
	ctx = WithManager(ctx, manager)
	
	// Using convenience functions
	assert.True(t, IsEnabled(ctx, EnhanceEnabled))
	assert.False(t, IsEnabled(ctx, BatchEnabled))
}

func TestFromContext_DefaultManager(t *testing.T) {
	ctx := context.Background()
	
	// Without manager in context, should return default (all disabled)
	assert.False(t, IsEnabled(ctx, EnhanceEnabled))
	assert.False(t, IsEnabled(ctx, BatchEnabled))
}

func TestIsEnabledForUser(t *testing.T) {
	manager := NewStaticManager(map[FeatureFlag]bool{
		MarkdownPreview: true,
	})
	
	ctx := context.Background()
	
	// For both EnvManager and StaticManager, user-specific is same as global
	assert.True(t, manager.IsEnabledForUser(ctx, MarkdownPreview, "user123"))
	assert.False(t, manager.IsEnabledForUser(ctx, BatchEnabled, "user123"))
}

func TestConcurrentAccess(t *testing.T) {
	manager := NewStaticManager(nil)
	ctx := context.Background()
	
	// Run concurrent reads and writes
	done := make(chan bool)
	
	// Writers
	for i := 0; i < 5; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				manager.SetEnabled(EnhanceEnabled, j%2 == 0)
			}
			done <- true
		}()
	}
	
	// Readers
	for i := 0; i < 5; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_ = manager.IsEnabled(ctx, EnhanceEnabled)
			}
			done <- true
		}()
	}
	
	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestFeatureFlagNames(t *testing.T) {
	assert.Equal(t, FeatureFlag("enhance_enabled"), EnhanceEnabled)
	assert.Equal(t, FeatureFlag("result_cache_enabled"), ResultCacheEnabled)
	assert.Equal(t, FeatureFlag("batch_enabled"), BatchEnabled)
	assert.Equal(t, FeatureFlag("markdown_preview"), MarkdownPreview)
	assert.Equal(t, FeatureFlag("rate_limit_enabled"), RateLimitEnabled)
	assert.Len(t, AllFlags, 5)
}

func TestEnvManagerWithDefaults(t *testing.T) {
	manager := NewEnvManagerWithDefaults("TEST_DEFAULTS_", map[FeatureFlag]bool{
		EnhanceEnabled:  true,
		MarkdownPreview: true,
	})
	ctx := context.Background()

	assert.True(t, manager.IsEnabled(ctx, EnhanceEnabled))
	assert.False(t, manager.IsEnabled(ctx, BatchEnabled))

	os.Setenv("TEST_DEFAULTS_ENHANCE_ENABLED", "false")
	defer os.Unsetenv("TEST_DEFAULTS_ENHANCE_ENABLED")
	assert.False(t, manager.IsEnabled(ctx, EnhanceEnabled), "env var wins over default")

	all := manager.GetAllFlags()
	assert.Len(t, all, len(AllFlags))
	assert.True(t, all[MarkdownPreview])
}
