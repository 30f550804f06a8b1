package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PLAN_FREE_LIMIT", "")
	t.Setenv("VIEW_DEDUP_WINDOW", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.PlanFreeLimit)
	assert.Equal(t, 10, cfg.PlanStarterLimit)
	assert.Equal(t, 50, cfg.PlanProfessionalLimit)
	assert.Equal(t, time.Hour, cfg.ViewDedupWindow)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PLAN_STARTER_LIMIT", "12")
	t.Setenv("VIEW_DEDUP_WINDOW", "30m")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, ,10.0.0.2")
	t.Setenv("APP_ENV", "Production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.PlanStarterLimit)
	assert.Equal(t, 30*time.Minute, cfg.ViewDedupWindow)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("BROKEN_INT", "abc")
	t.Setenv("BROKEN_DURATION", "-5m")
	t.Setenv("BROKEN_BOOL", "maybe")

	assert.Equal(t, 7, getEnvInt("BROKEN_INT", 7))
	assert.Equal(t, time.Minute, getEnvDuration("BROKEN_DURATION", time.Minute))
	assert.True(t, getEnvBool("BROKEN_BOOL", true))
}
