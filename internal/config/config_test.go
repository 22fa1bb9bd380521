package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.False(t, cfg.Server.Debug)
	assert.True(t, cfg.Sources.ERR.Enabled)
	assert.True(t, cfg.Sources.Piletilevi.Enabled)
	assert.True(t, cfg.Sources.Kultuurikava.Enabled)
	assert.True(t, cfg.Sources.Wikipedia.Enabled)
	assert.False(t, cfg.Sources.Postimees.Enabled)
	assert.False(t, cfg.Sources.Culture.Enabled)
	assert.False(t, cfg.Feeds.Enabled)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 10, cfg.Aggregate.NewsLimit)
	assert.Equal(t, 5, cfg.Aggregate.EventsLimit)
	assert.Equal(t, 20, cfg.Aggregate.SearchMax)
	assert.Equal(t, 10*time.Second, cfg.Fetch.ParseTimeout())
	assert.Equal(t, time.Hour, cfg.Cache.ParseTTL())
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 8080
sources:
  postimees:
    enabled: true
    limit: 3
  wikipedia:
    enabled: true
    url: http://localhost:9999
    topics: [Laulupidu]
fetch:
  timeout: 2s
aggregate:
  events_limit: 7
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Sources.Postimees.Enabled)
	assert.Equal(t, 3, cfg.Sources.Postimees.Limit)
	assert.Equal(t, "http://localhost:9999", cfg.Sources.Wikipedia.URL)
	assert.Equal(t, []string{"Laulupidu"}, cfg.Sources.Wikipedia.Topics)
	assert.Equal(t, 2*time.Second, cfg.Fetch.ParseTimeout())
	assert.Equal(t, 7, cfg.Aggregate.EventsLimit)
	// untouched keys keep their defaults
	assert.True(t, cfg.Sources.ERR.Enabled)
	assert.Equal(t, 10, cfg.Aggregate.NewsLimit)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("FLASK_DEBUG", "1")
	t.Setenv("ELAULIK_CACHE_PATH", "/tmp/e.db")
	t.Setenv("ELAULIK_CACHE_TTL", "5m")
	t.Setenv("ELAULIK_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.True(t, cfg.Server.Debug)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "/tmp/e.db", cfg.Cache.Path)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ParseTTL())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		t.Setenv("PORT", "viis")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("ttl", func(t *testing.T) {
		t.Setenv("ELAULIK_CACHE_TTL", "tund")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "on"} {
		assert.True(t, truthy(v), v)
	}
	for _, v := range []string{"0", "false", "no", ""} {
		assert.False(t, truthy(v), v)
	}
}
