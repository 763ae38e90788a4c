package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000*time.Millisecond, cfg.DedupWindow)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"negative dedup window", func(c *Config) { c.DedupWindow = -1 }, true},
		{"negative queue capacity", func(c *Config) { c.QueueDefaultCapacity = -1 }, true},
		{"negative rate limit", func(c *Config) { c.OverrideRateLimit = -1 }, true},
		{"invalid log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"invalid log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"invalid metrics port", func(c *Config) { c.MetricsPort = 99999 }, true},
		{"invalid health port", func(c *Config) { c.HealthPort = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_IsStrictModeResource(t *testing.T) {
	cfg := Default()
	cfg.StrictModeResources = []string{"device-1", "device-2"}

	assert.True(t, cfg.IsStrictModeResource("device-1"))
	assert.False(t, cfg.IsStrictModeResource("device-3"))
}

func TestConfig_Clone(t *testing.T) {
	cfg := Default()
	cfg.StrictModeResources = []string{"device-1"}

	clone := cfg.Clone()
	clone.StrictModeResources[0] = "mutated"

	assert.Equal(t, "device-1", cfg.StrictModeResources[0], "mutating the clone must not affect the original")
}

func TestSafeConfig_GetUpdate(t *testing.T) {
	safe := NewSafeConfig(Default())

	got := safe.Get()
	assert.Equal(t, "info", got.LogLevel)

	updated := got.Clone()
	updated.LogLevel = "debug"
	require.NoError(t, safe.Update(updated))

	assert.Equal(t, "debug", safe.Get().LogLevel)
}

func TestSafeConfig_UpdateRejectsInvalid(t *testing.T) {
	safe := NewSafeConfig(Default())

	bad := Default()
	bad.LogLevel = "nonsense"

	err := safe.Update(bad)
	assert.Error(t, err)
	assert.Equal(t, "info", safe.Get().LogLevel, "rejected update must not mutate state")
}

func TestSafeConfig_UpdateNil(t *testing.T) {
	safe := NewSafeConfig(Default())
	err := safe.Update(nil)
	assert.Error(t, err)
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("MUSICALCONDUCTOR_LOG_LEVEL", "debug")
	t.Setenv("MUSICALCONDUCTOR_QUEUE_CAPACITY", "50")
	t.Setenv("MUSICALCONDUCTOR_STRICT_MODE_RESOURCES", "a,b,c")

	cfg := FromEnv()
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.QueueDefaultCapacity)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.StrictModeResources)
}
