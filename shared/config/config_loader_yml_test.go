package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port    int           `yaml:"port"`
	Host    string        `yaml:"host"`
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

func defaultTestConfig() *testConfig {
	return &testConfig{Port: 8080, Host: "localhost", Enabled: true, TTL: 30 * time.Second}
}

func TestLoadYAMLConfig(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(t *testing.T, name, content string) string {
		t.Helper()
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := LoadYAMLConfig("", defaultTestConfig)
		require.NoError(t, err)
		assert.Equal(t, defaultTestConfig(), cfg)
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadYAMLConfig(filepath.Join(tmpDir, "nope.yml"), defaultTestConfig)
		require.NoError(t, err)
		assert.Equal(t, defaultTestConfig(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := write(t, "full.yml", "port: 9090\nhost: example.com\nenabled: false\nttl: 45s\n")

		cfg, err := LoadYAMLConfig(path, defaultTestConfig)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "example.com", cfg.Host)
		assert.False(t, cfg.Enabled)
		assert.Equal(t, 45*time.Second, cfg.TTL)
	})

	t.Run("partial file keeps other defaults", func(t *testing.T) {
		path := write(t, "partial.yml", "port: 7777\n")

		cfg, err := LoadYAMLConfig(path, defaultTestConfig)
		require.NoError(t, err)
		assert.Equal(t, 7777, cfg.Port)
		assert.Equal(t, "localhost", cfg.Host)
		assert.True(t, cfg.Enabled)
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		path := write(t, "empty.yml", "")

		cfg, err := LoadYAMLConfig(path, defaultTestConfig)
		require.NoError(t, err)
		assert.Equal(t, defaultTestConfig(), cfg)
	})

	t.Run("broken yaml is an error", func(t *testing.T) {
		path := write(t, "broken.yml", "port: \"not a number\"\n")

		cfg, err := LoadYAMLConfig(path, defaultTestConfig)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}
