package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  allowed_origins:
    - "http://localhost:4000"
storage:
  database_path: "ledger.db"
scan:
  default_sensitivity: "high"
  default_days_back: 30
  cache_ttl_seconds: 60
observability:
  logging:
    level: "debug"
    format: "json"
`

	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:4000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "ledger.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "high", cfg.Scan.DefaultSensitivity)
	assert.Equal(t, 30, cfg.Scan.DefaultDaysBack)
	assert.Equal(t, 60, cfg.Scan.CacheTTLSeconds)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
}

func TestLoad_SparseFileGetsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, os.WriteFile(configPath, []byte("storage:\n  database_path: only.db\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "only.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "medium", cfg.Scan.DefaultSensitivity)
	assert.Equal(t, 90, cfg.Scan.DefaultDaysBack)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
}

func TestLoadFromEnv(t *testing.T) {
	os.Setenv("SPENDLENS_DB_PATH", "test.db")
	os.Setenv("SPENDLENS_PORT", "9999")
	os.Setenv("SPENDLENS_SCAN_SENSITIVITY", "low")
	defer func() {
		os.Unsetenv("SPENDLENS_DB_PATH")
		os.Unsetenv("SPENDLENS_PORT")
		os.Unsetenv("SPENDLENS_SCAN_SENSITIVITY")
	}()

	cfg := LoadFromEnv()
	assert.Equal(t, "test.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "low", cfg.Scan.DefaultSensitivity)
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	os.Unsetenv("SPENDLENS_DB_PATH")
	os.Unsetenv("SPENDLENS_PORT")

	cfg := LoadFromEnv()
	assert.Equal(t, "spendlens.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 90, cfg.Scan.DefaultDaysBack)
	assert.Equal(t, 300, cfg.Scan.CacheTTLSeconds)
}

func TestLoadOrEnv_FallbackToEnv(t *testing.T) {
	os.Setenv("SPENDLENS_DB_PATH", "fallback.db")
	defer os.Unsetenv("SPENDLENS_DB_PATH")

	cfg := LoadOrEnvWithPath("nonexistent.yaml")
	assert.Equal(t, "fallback.db", cfg.Storage.DatabasePath)
}

func TestEnvVarExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
storage:
  database_path: "${TEST_SPENDLENS_DB}"
`

	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	os.Setenv("TEST_SPENDLENS_DB", "expanded.db")
	defer os.Unsetenv("TEST_SPENDLENS_DB")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "expanded.db", cfg.Storage.DatabasePath)
}
