package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/scoreboard/go/internal/live"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", config.BaseURL)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, live.DefaultConfig(), config.liveConfig())
	assert.NoError(t, config.validate())
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
base_url: https://scores.example.com/api
log_level: debug
live:
  read_timeout: 2m
  max_message_size: 8192
`)

	config, err := loadConfig(path)
	require.NoError(t, err)
	require.NoError(t, config.validate())

	assert.Equal(t, "https://scores.example.com/api", config.BaseURL)
	assert.Equal(t, "debug", config.LogLevel)

	lc := config.liveConfig()
	assert.Equal(t, 2*time.Minute, lc.ReadTimeout)
	assert.Equal(t, int64(8192), lc.MaxMessageSize)
	assert.Equal(t, live.DefaultConfig().HandshakeTimeout, lc.HandshakeTimeout, "unset values keep their defaults")
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = loadConfig(writeConfig(t, "base_url: ["))
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("SCOREBOARD_BASE_URL", "http://feed:9000")
	t.Setenv("SCOREBOARD_LOG_LEVEL", "warn")

	config, err := loadConfig(writeConfig(t, "base_url: http://ignored:1\n"))
	require.NoError(t, err)
	config.applyEnv()

	assert.Equal(t, "http://feed:9000", config.BaseURL)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestConfigValidate(t *testing.T) {
	config := defaultConfig()
	config.BaseURL = "ftp://scores.example.com"
	assert.ErrorContains(t, config.validate(), "invalid base_url")

	config = defaultConfig()
	config.LogLevel = "loud"
	assert.ErrorContains(t, config.validate(), "invalid log_level")
}
