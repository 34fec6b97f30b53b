package am

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/contractq/errors"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	return cfg
}

// isolate points HOME and the working directory at empty temp dirs
func isolate(t *testing.T) string {
	t.Helper()
	Reset()
	t.Cleanup(Reset)
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	cfg := defaultConfig(t)

	assert.Equal(t, 0.7, cfg.Classifier.LowConfidenceThreshold)
	assert.True(t, cfg.Classifier.SpellCorrection)
	assert.True(t, cfg.Classifier.MultiIntent)
	assert.Equal(t, 6, cfg.Classifier.ContractMinDigits)
	assert.Equal(t, 4, cfg.Classifier.CustomerMinDigits)
	assert.Equal(t, 5, cfg.Classifier.CustomerMaxDigits)

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 1000, cfg.Cache.Capacity)
	assert.Equal(t, 100, cfg.Cache.EvictBatch)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, "contractq.db", cfg.Journal.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"threshold above one", func(c *Config) { c.Classifier.LowConfidenceThreshold = 1.5 }, true},
		{"customer range overlaps contract", func(c *Config) { c.Classifier.CustomerMaxDigits = 6 }, true},
		{"empty customer range", func(c *Config) { c.Classifier.CustomerMinDigits = 5; c.Classifier.CustomerMaxDigits = 4 }, true},
		{"zero ttl with cache enabled", func(c *Config) { c.Cache.TTL = 0 }, true},
		{"zero ttl with cache disabled", func(c *Config) { c.Cache.Enabled = false; c.Cache.TTL = 0 }, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"rate limit without burst", func(c *Config) { c.Server.RateLimitBurst = 0 }, true},
		{"rate limit disabled", func(c *Config) { c.Server.RateLimitPerSecond = 0; c.Server.RateLimitBurst = 0 }, false},
		{"journal without path", func(c *Config) { c.Journal.Enabled = true; c.Journal.Path = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "am.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[classifier]
low_confidence_threshold = 0.6

[cache]
ttl = "30s"
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.Classifier.LowConfidenceThreshold)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 1000, cfg.Cache.Capacity, "unset keys keep defaults")
}

func TestLoadFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "am.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 70000\n"), 0o644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestLoad_ProjectFileAndEnvironment(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "am.toml"), []byte(`
[server]
port = 9090

[journal]
path = "project.db"
`), 0o644))
	t.Setenv("CONTRACTQ_JOURNAL_PATH", "env.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "env.db", cfg.Journal.Path, "environment beats project file")

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, again, "Load caches until Reset")

	assert.Equal(t, SourceProject, ConfigSources["server.port"].Source)
}

func TestIntrospect(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "am.toml"), []byte("[cache]\ncapacity = 50\n"), 0o644))
	t.Setenv("CONTRACTQ_LOG_LEVEL", "debug")

	settings, err := Introspect()
	require.NoError(t, err)

	byKey := make(map[string]SettingInfo, len(settings))
	for _, s := range settings {
		byKey[s.Key] = s
	}
	assert.Equal(t, SourceProject, byKey["cache.capacity"].Source)
	assert.Equal(t, SourceEnvironment, byKey["log.level"].Source)
	assert.Equal(t, "CONTRACTQ_LOG_LEVEL", byKey["log.level"].SourcePath)
	assert.Equal(t, SourceDefault, byKey["cache.ttl"].Source)
}
