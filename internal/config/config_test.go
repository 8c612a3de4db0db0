package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "sim", cfg.Directory.Backend)
	assert.Equal(t, 30*time.Second, cfg.Sim.Timeout)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: debug
  format: json
directory:
  backend: gsuite
sim:
  endpoint: https://sim.example.org/api/v1
  api_key: secret
gsuite:
  domain: example.org
  admin_email: admin@example.org
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "gsuite", cfg.Directory.Backend)
	assert.Equal(t, "https://sim.example.org/api/v1", cfg.Sim.Endpoint)
	assert.Equal(t, "secret", cfg.Sim.APIKey)
	assert.Equal(t, "example.org", cfg.Gsuite.Domain)
	assert.Equal(t, "admin@example.org", cfg.Gsuite.AdminEmail)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SIMAPPS_SIM_ENDPOINT", "https://override.example.org")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.org", cfg.Sim.Endpoint)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: shouting\n"), 0o600))

	_, err := Load(configPath)
	assert.Error(t, err)
}
