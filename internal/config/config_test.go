package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestMustLoad(t *testing.T) {
	t.Run("Defaults fill missing keys", func(t *testing.T) {
		// Given: a config that only sets the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf := MustLoad(path)

		// Then: every other key has its default
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "8080", conf.SocketPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 30*time.Minute, conf.Redis.SessionTTL)
		assert.Equal(t, 6, conf.Engine.Depth)
	})

	t.Run("File values are read", func(t *testing.T) {
		path := writeConfig(t, `
redis:
  host: redis
  port: "6380"
  session-ttl: 5m
engine:
  depth: 3
`)

		conf := MustLoad(path)

		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 5*time.Minute, conf.Redis.SessionTTL)
		assert.Equal(t, 3, conf.Engine.Depth)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a depth set both in the file and in the environment
		path := writeConfig(t, "engine:\n  depth: 3\n")
		t.Setenv("ENGINE_DEPTH", "4")

		// When: loading
		conf := MustLoad(path)

		// Then: the environment wins
		assert.Equal(t, 4, conf.Engine.Depth)
	})

	t.Run("Missing file panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}
