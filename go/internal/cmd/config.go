package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/scoreboard/go/clients/scoreboard_client"
	"github.com/mcdev12/scoreboard/go/internal/live"
)

// Config is the viewer's configuration. Values come from defaults, then the
// YAML file, then SCOREBOARD_* environment variables, then flags.
type Config struct {
	BaseURL        string        `yaml:"base_url"`
	LogLevel       string        `yaml:"log_level"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Live           LiveConfig    `yaml:"live"`
}

type LiveConfig struct {
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	MaxMessageSize   int64         `yaml:"max_message_size"`
}

func defaultConfig() *Config {
	lc := live.DefaultConfig()
	return &Config{
		BaseURL:        scoreboard_client.DefaultBaseURL,
		LogLevel:       "info",
		RequestTimeout: 30 * time.Second,
		Live: LiveConfig{
			HandshakeTimeout: lc.HandshakeTimeout,
			WriteTimeout:     lc.WriteTimeout,
			ReadTimeout:      lc.ReadTimeout,
			MaxMessageSize:   lc.MaxMessageSize,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

func (c *Config) applyEnv() {
	c.BaseURL = getEnv("SCOREBOARD_BASE_URL", c.BaseURL)
	c.LogLevel = getEnv("SCOREBOARD_LOG_LEVEL", c.LogLevel)
}

func (c *Config) validate() error {
	if _, err := scoreboard_client.ChannelURL(c.BaseURL, "0"); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// liveConfig fills unset live settings from live.DefaultConfig.
func (c *Config) liveConfig() live.Config {
	lc := live.DefaultConfig()
	if c.Live.HandshakeTimeout > 0 {
		lc.HandshakeTimeout = c.Live.HandshakeTimeout
	}
	if c.Live.WriteTimeout > 0 {
		lc.WriteTimeout = c.Live.WriteTimeout
	}
	if c.Live.ReadTimeout > 0 {
		lc.ReadTimeout = c.Live.ReadTimeout
	}
	if c.Live.MaxMessageSize > 0 {
		lc.MaxMessageSize = c.Live.MaxMessageSize
	}
	return lc
}
