package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults apply when only the environment is read", func(t *testing.T) {
		conf, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.False(t, conf.EngineFirst)
		assert.Equal(t, ExporterNone, conf.Telemetry.Exporter)
	})

	t.Run("Values are read from the yaml file", func(t *testing.T) {
		path := writeConfig(t, `
log-level: debug
http-port: "9090"
engine-first: true
telemetry:
  exporter: stdout
  service-name: ttt
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, conf.Level())
		assert.Equal(t, ":9090", conf.HTTPAddr())
		assert.True(t, conf.EngineFirst)
		assert.Equal(t, ExporterStdout, conf.Telemetry.Exporter)
		assert.Equal(t, "ttt", conf.Telemetry.ServiceName)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"9090\"\n")
		t.Setenv("HTTP_PORT", "7070")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
	})

	t.Run("Unknown exporter is rejected", func(t *testing.T) {
		t.Setenv("OTEL_EXPORTER", "zipkin")

		_, err := Load("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown telemetry exporter")
	})

	t.Run("Missing file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
		assert.Error(t, err)
	})
}

func TestMustLoad_Panics(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")

	assert.Panics(t, func() { MustLoad("") })
}

func TestLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}

	for in, want := range tests {
		conf := &Config{LogLevel: in}
		assert.Equal(t, want, conf.Level(), in)
	}
}
