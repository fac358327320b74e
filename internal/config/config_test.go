package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, int32(32), cfg.Rebalance.DivisionPrecision)
	assert.Equal(t, "rounded", cfg.Rebalance.Distribution)
	assert.Equal(t, int32(8), cfg.Rebalance.DistributionScale)
	assert.False(t, cfg.IsProduction())
}

func TestLoadWithCustomValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_WRITE_TIMEOUT", "30s")
	t.Setenv("REBALANCE_DISTRIBUTION", "largest_remainder")
	t.Setenv("REBALANCE_DIVISION_PRECISION", "64")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "largest_remainder", cfg.Rebalance.Distribution)
	assert.Equal(t, int32(64), cfg.Rebalance.DivisionPrecision)
	assert.True(t, cfg.IsProduction())
}

func TestLogEnvOverridesAppEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=7070\nREBALANCE_DISTRIBUTION_SCALE=4\n"), 0o600))
	chdir(t, dir)
	// make sure the file value is the one picked up
	t.Setenv("SERVER_PORT", "")
	os.Unsetenv("SERVER_PORT")
	t.Setenv("REBALANCE_DISTRIBUTION_SCALE", "")
	os.Unsetenv("REBALANCE_DISTRIBUTION_SCALE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, int32(4), cfg.Rebalance.DistributionScale)
}

func TestValidateErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown env":          {"APP_ENV": "qa"},
		"unknown distribution": {"REBALANCE_DISTRIBUTION": "banker"},
		"zero precision":       {"REBALANCE_DIVISION_PRECISION": "0"},
		"negative scale":       {"REBALANCE_DISTRIBUTION_SCALE": "-1"},
		"zero body limit":      {"MAX_BODY_BYTES": "0"},
		"scale above precision": {
			"REBALANCE_DIVISION_PRECISION": "8",
			"REBALANCE_DISTRIBUTION_SCALE": "9",
		},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
