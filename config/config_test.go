package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  env: develop
  serviceName: zenlit
  log:
    level: debug
http:
  port: 8080
anonymity:
  nearbyThreshold: 0.01
  interval: 5m
`

func TestLoadWithEnv_OverridesFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testYAML), 0o600))
	t.Chdir(dir)

	t.Setenv("ANONYMITY_NEARBYTHRESHOLD", "0.02")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "zenlit", cfg.Env.ServiceName)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	require.NotNil(t, cfg.Anonymity)
	assert.InDelta(t, 0.02, cfg.Anonymity.NearbyThreshold, 1e-12)
	assert.Equal(t, 5*time.Minute, cfg.Anonymity.Interval)
}

func TestShippedConfig_RunsAreUnboundedAndConcurrent(t *testing.T) {
	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	require.NotNil(t, cfg.Anonymity)
	assert.Zero(t, cfg.Anonymity.RunTimeout)
	assert.False(t, cfg.Anonymity.SerializeRuns)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	assert.Error(t, err)
}

func TestWithAnonymityDefaults(t *testing.T) {
	cfg := withAnonymityDefaults(nil)
	assert.InDelta(t, DefaultNearbyThreshold, cfg.NearbyThreshold, 1e-12)
	assert.Equal(t, DefaultCoarsePrecision, cfg.CoarsePrecision)

	custom := withAnonymityDefaults(&AnonymityConfig{NearbyThreshold: 0.05, CoarsePrecision: 2, LockRows: true})
	assert.InDelta(t, 0.05, custom.NearbyThreshold, 1e-12)
	assert.Equal(t, 2, custom.CoarsePrecision)
	assert.True(t, custom.LockRows)
}
