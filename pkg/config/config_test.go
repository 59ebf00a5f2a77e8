package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "admin", cfg.Credentials.Username)
	assert.Equal(t, "password", cfg.Credentials.Password)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFileYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
host: 127.0.0.1
port: 9000
credentials:
  username: tester
  password: secret
logging:
  level: debug
  format: json
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "tester", cfg.Credentials.Username)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
}

func TestLoadFromFileJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"port": 8081}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	// Omitted sections keep defaults.
	assert.Equal(t, "admin", cfg.Credentials.Username)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadFromFileEmpty(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")
	_, err := LoadFromFile(path)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoadFromFileBadYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "port: [not a port")
	_, err := LoadFromFile(path)
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestLoadFromFileBadJSON(t *testing.T) {
	path := writeFile(t, "bad.json", "{")
	_, err := LoadFromFile(path)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero port", func(c *Config) { c.Port = 0 }, false},
		{"port too large", func(c *Config) { c.Port = 70000 }, false},
		{"empty username", func(c *Config) { c.Credentials.Username = "" }, false},
		{"empty password", func(c *Config) { c.Credentials.Password = "" }, false},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
