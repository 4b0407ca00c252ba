package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "POSTGRES_DSN", "TEMPORAL_DISABLED", "IMAGEGEN_BASE_URL", "IMAGEGEN_TIMEOUT_SECONDS",
		"AUTH_JWT_SECRET", "SUPABASE_URL", "SUPABASE_SERVICE_KEY", "SUPABASE_BUCKET", "SESSION_IDLE_MINUTES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 60*time.Second, cfg.ImageGenTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdle)
	assert.Equal(t, time.Minute, cfg.SessionSweepEvery)
	assert.Equal(t, "design-uploads", cfg.SupabaseBucket)
	assert.False(t, cfg.TemporalDisabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("TEMPORAL_DISABLED", "true")
	t.Setenv("IMAGEGEN_BASE_URL", "https://gen.example.com/")
	t.Setenv("IMAGEGEN_TIMEOUT_SECONDS", "15")
	t.Setenv("SESSION_IDLE_MINUTES", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, "https://gen.example.com", cfg.ImageGenBaseURL)
	assert.Equal(t, 15*time.Second, cfg.ImageGenTimeout)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdle)
}

func TestLoadConfig_Rejects(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SESSION_IDLE_MINUTES", "-1")
	_, err := LoadConfig()
	assert.Error(t, err)

	clearConfigEnv(t)
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	_, err = LoadConfig()
	assert.Error(t, err)
}
