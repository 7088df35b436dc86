package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Product.MaxAttempts)
	assert.Equal(t, 3*time.Second, cfg.Product.RetryDelay)

	assert.Equal(t, 3, cfg.Reviews.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Reviews.RetryDelay)
	assert.Equal(t, 3, cfg.Reviews.MaxPages)
	assert.Equal(t, 25, cfg.Reviews.SampleLimit)

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 30*time.Second, cfg.Browser.NavigationTimeout)
	assert.Equal(t, 15*time.Second, cfg.Browser.TitleWaitTimeout)

	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PRODUCT_MAX_ATTEMPTS", "5")
	t.Setenv("REVIEWS_MAX_PAGES", "10")
	t.Setenv("REVIEWS_RETRY_DELAY", "500ms")
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("SESSION_USER_AGENTS", "agent-a,agent-b")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Product.MaxAttempts)
	assert.Equal(t, 10, cfg.Reviews.MaxPages)
	assert.Equal(t, 500*time.Millisecond, cfg.Reviews.RetryDelay)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, []string{"agent-a", "agent-b"}, cfg.Session.UserAgents)
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("PRODUCT_MAX_ATTEMPTS", "not-a-number")
	t.Setenv("REVIEWS_RETRY_DELAY", "eventually")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Product.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Reviews.RetryDelay)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:    "zero product attempts",
			mutate:  func(cfg *Config) { cfg.Product.MaxAttempts = 0 },
			wantErr: "PRODUCT_MAX_ATTEMPTS",
		},
		{
			name:    "zero review attempts",
			mutate:  func(cfg *Config) { cfg.Reviews.MaxAttempts = 0 },
			wantErr: "REVIEWS_MAX_ATTEMPTS",
		},
		{
			name:    "zero max pages",
			mutate:  func(cfg *Config) { cfg.Reviews.MaxPages = 0 },
			wantErr: "REVIEWS_MAX_PAGES",
		},
		{
			name:    "zero sample limit",
			mutate:  func(cfg *Config) { cfg.Reviews.SampleLimit = 0 },
			wantErr: "REVIEWS_SAMPLE_LIMIT",
		},
		{
			name: "inverted inter-page delays",
			mutate: func(cfg *Config) {
				cfg.Reviews.InterPageMin = time.Second
				cfg.Reviews.InterPageMax = time.Millisecond
			},
			wantErr: "REVIEWS_INTER_PAGE_MIN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
