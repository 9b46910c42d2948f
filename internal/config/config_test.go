package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyukkyo/demon-tournament/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  address: ":9090"
database:
  path: /tmp/demon.db
match:
  action_timeout: 45s
  energy_policy: permissive
log:
  level: DEBUG
  format: text
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, "/tmp/demon.db", cfg.DatabasePath)
	assert.Equal(t, 45*time.Second, cfg.ActionTimeout)
	assert.Equal(t, 5*time.Second, cfg.CleanupDelay)
	assert.Equal(t, engine.EnergyPermissive, cfg.EnergyPolicy)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParse_EmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestParse_Rejects(t *testing.T) {
	for name, body := range map[string]string{
		"bad duration":   "match:\n  action_timeout: soon\n",
		"zero duration":  "match:\n  scan_interval: 0s\n",
		"bad policy":     "match:\n  energy_policy: lenient\n",
		"bad log format": "log:\n  format: xml\n",
		"not yaml":       "server: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DEMON_DB", "env.db")
	t.Setenv("DEMON_ADDR", ":7000")
	cfg := Defaults()
	cfg.ApplyEnv()
	assert.Equal(t, "env.db", cfg.DatabasePath)
	assert.Equal(t, ":7000", cfg.ServerAddress)
}

func TestApplyEnvPortFallback(t *testing.T) {
	t.Setenv("DEMON_ADDR", "")
	t.Setenv("PORT", "9090")
	cfg := Defaults()
	cfg.ApplyEnv()
	assert.Equal(t, ":9090", cfg.ServerAddress)
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "config.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}
