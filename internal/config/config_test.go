package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a config file with a redis session store
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nhttp-port: \"8080\"\nsession:\n  store: redis\n  ttl: 1h\nredis:\n  host: cache\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: it is loaded
		conf, err := Load(path)

		// Then: file values and defaults are both applied
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, SessionStoreRedis, conf.Session.Store)
		assert.Equal(t, time.Hour, conf.Session.TTL)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.True(t, conf.Terminal.Color)
	})

	t.Run("Falls back to defaults without a file", func(t *testing.T) {
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, SessionStoreMemory, conf.Session.Store)
		assert.Equal(t, 24*time.Hour, conf.Session.TTL)
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "7070")

		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
	})

	t.Run("Rejects an unknown session store", func(t *testing.T) {
		t.Setenv("SESSION_STORE", "etcd")

		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown session store")
	})
}
