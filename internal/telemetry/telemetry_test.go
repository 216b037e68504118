package telemetry

import (
	"bytes"
	"context"
	"ctchen222/tictactoe-minimax/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func restoreGlobals(t *testing.T) {
	t.Helper()

	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func TestInitOtel(t *testing.T) {
	t.Run("None installs nothing and shuts down cleanly", func(t *testing.T) {
		shutdown, err := InitOtel(context.Background(), config.Telemetry{Exporter: config.ExporterNone}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("Stdout exports spans to the writer", func(t *testing.T) {
		restoreGlobals(t)
		var buf bytes.Buffer

		shutdown, err := InitOtel(context.Background(), config.Telemetry{
			Exporter:       config.ExporterStdout,
			ServiceName:    "tictactoe-test",
			ServiceVersion: "v0.0.0",
		}, &buf)
		require.NoError(t, err)

		_, span := otel.Tracer("test").Start(context.Background(), "bot.CalculateNextMove")
		span.End()

		require.NoError(t, shutdown(context.Background()))
		assert.Contains(t, buf.String(), "bot.CalculateNextMove")
		assert.Contains(t, buf.String(), "tictactoe-test")
	})

	t.Run("Unknown exporter fails", func(t *testing.T) {
		_, err := InitOtel(context.Background(), config.Telemetry{Exporter: "zipkin"}, &bytes.Buffer{})
		assert.Error(t, err)
	})
}
