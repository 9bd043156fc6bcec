package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3310, cfg.Server.Port)
	assert.Equal(t, 100, cfg.Queue.MaxLogs)
	assert.Equal(t, "/dev/usb/lp*", cfg.Devices.Glob)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
  read_timeout: 5s
queue:
  max_logs: 25
logging:
  level: debug
  format: text
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 25, cfg.Queue.MaxLogs)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)

	// Untouched sections keep their defaults.
	assert.Equal(t, "./data/printagent.db", cfg.Database.Path)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a mapping"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadAppliesEnvWithoutFile(t *testing.T) {
	t.Setenv("PRINTAGENT_PORT", "9000")
	t.Setenv("PRINTAGENT_DB_PATH", "/tmp/agent.db")
	t.Setenv("PRINTAGENT_DEVICE_GLOB", "/dev/usb/lp0")
	t.Setenv("PRINTAGENT_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/tmp/agent.db", cfg.Database.Path)
	assert.Equal(t, "/dev/usb/lp0", cfg.Devices.Glob)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
logging:
  level: debug
`), 0644))

	t.Setenv("PRINTAGENT_PORT", "9000")

	cfg, err := Load(path)
	require.NoError(t, err)

	// Env wins over the file; untouched keys keep the file's values.
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadIgnoresBadEnvPort(t *testing.T) {
	t.Setenv("PRINTAGENT_PORT", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3310, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "server port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server port"},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "database path"},
		{"zero max logs", func(c *Config) { c.Queue.MaxLogs = 0 }, "max logs"},
		{"empty glob", func(c *Config) { c.Devices.Glob = "" }, "device glob"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
