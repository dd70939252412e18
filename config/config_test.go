package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := new(Config)
	require.NoError(t, cfg.Load())
	assert.Equal(t, BackendValkey, cfg.Backend)
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.True(t, cfg.UI)
	assert.False(t, cfg.Auth.IsEnabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EMS_BACKEND", "memory")
	t.Setenv("EMS_SWEEP_INTERVAL", "30s")
	t.Setenv("EMS_BASIC_AUTH_ENABLED", "true")
	t.Setenv("EMS_BASIC_AUTH_USERNAME", "ops")

	cfg := new(Config)
	require.NoError(t, cfg.Load())
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.True(t, cfg.Auth.IsEnabled)
	assert.Equal(t, "ops", cfg.Auth.Username)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("EMS_BACKEND", "supabase")
	cfg := new(Config)
	assert.Error(t, cfg.Load())
}

func TestLoadRejectsNonPositiveIntervals(t *testing.T) {
	t.Setenv("EMS_SWEEP_INTERVAL", "0s")
	cfg := new(Config)
	assert.Error(t, cfg.Load())
}
