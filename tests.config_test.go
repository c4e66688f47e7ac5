package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const testConfigYAML = `
is_production: true
log_level: warn
ops_endpoints_enable: true
server:
  host: 127.0.0.1
  port: "8080"
  request_timeout: 2s
journal:
  enable: true
  redis:
    host: localhost
    port: "6379"
  boltdb:
    filepath: ./journal.db
`

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	config, err := LoadConfigFile(writeTestFile(t, "config.yml", testConfigYAML))
	require.NoError(t, err)
	assert.True(t, config.IsProduction)
	assert.Equal(t, zapcore.WarnLevel, config.LogLevel)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 2*time.Second, config.Server.RequestTimeout)
	assert.True(t, config.Journal.Enable)
	assert.Equal(t, "./journal.db", config.Journal.BoltDB.FilePath)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoadAndInitConfigs(t *testing.T) {
	configFile := writeTestFile(t, "config.yml", testConfigYAML)

	t.Run("env file and variables override the yaml file", func(t *testing.T) {
		envFile := writeTestFile(t, "config.env", "BKSF_SERVER_PORT=9090\nBKSF_JOURNAL_QUEUE_PREFIX=test:\n")
		// the env file sets the process environment, restore it once done.
		t.Setenv("BKSF_SERVER_PORT", "")
		os.Unsetenv("BKSF_SERVER_PORT")
		t.Setenv("BKSF_JOURNAL_QUEUE_PREFIX", "")
		os.Unsetenv("BKSF_JOURNAL_QUEUE_PREFIX")
		t.Setenv("BKSF_SERVER_HOST", "0.0.0.0")

		config, err := LoadAndInitConfigs(configFile, envFile, "abc123", "v1.0.0", "now")
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0", config.Server.Host)
		assert.Equal(t, "9090", config.Server.Port)
		assert.Equal(t, "test:", config.Journal.QueuePrefix)
		assert.Equal(t, "abc123", config.GitCommit)
		assert.Equal(t, "v1.0.0", config.GitTag)
		assert.Equal(t, "now", config.BuildTime)
	})

	t.Run("missing env file is ignored", func(t *testing.T) {
		config, err := LoadAndInitConfigs(configFile, filepath.Join(t.TempDir(), "none.env"), "", "", "")
		require.NoError(t, err)
		assert.Equal(t, "bookshelf:", config.Journal.QueuePrefix)
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Setenv("BKSF_SERVER_READ_TIMEOUT", "soon")
		_, err := LoadAndInitConfigs(configFile, "", "", "", "")
		assert.Error(t, err)
	})
}

func TestInitConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := &Config{Server: ServerConfig{Host: "localhost", Port: "9000"}}
		require.NoError(t, InitConfig(config, "", "", ""))
		assert.Equal(t, "./logs", config.LogFolder)
		assert.Equal(t, 10, config.LogMaxSize)
		assert.Equal(t, 5*time.Second, config.Server.ReadTimeout)
		assert.Equal(t, 10*time.Second, config.Server.WriteTimeout)
		assert.Equal(t, 5*time.Second, config.Server.RequestTimeout)
		assert.Equal(t, 30*time.Second, config.Server.ShutdownTimeout)
		assert.Equal(t, "books", config.Journal.BoltDB.BucketName)
		assert.Equal(t, 5*time.Second, config.Journal.BoltDB.Timeout)
	})

	testCases := []struct {
		name   string
		config *Config
	}{
		{"missing server port", &Config{Server: ServerConfig{Host: "localhost"}}},
		{"missing redis address", &Config{
			Server:  ServerConfig{Host: "localhost", Port: "9000"},
			Journal: JournalConfig{Enable: true, BoltDB: BoltDBConfig{FilePath: "./j.db"}},
		}},
		{"missing boltdb file", &Config{
			Server:  ServerConfig{Host: "localhost", Port: "9000"},
			Journal: JournalConfig{Enable: true, Redis: RedisConfig{Host: "localhost", Port: "6379"}},
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, InitConfig(tc.config, "", "", ""))
		})
	}
}
