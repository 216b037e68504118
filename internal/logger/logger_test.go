package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct {
	slog.Handler
}

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestMultiHandler(t *testing.T) {
	t.Run("Fans out to every enabled handler", func(t *testing.T) {
		var infoBuf, errBuf bytes.Buffer
		h := NewMultiHandler(
			slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
			slog.NewTextHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError}),
		)
		log := slog.New(h)

		log.Info("engine picked a move", "move", 4)

		assert.Contains(t, infoBuf.String(), "move=4")
		assert.Empty(t, errBuf.String())
	})

	t.Run("Attributes and groups reach all handlers", func(t *testing.T) {
		var a, b bytes.Buffer
		log := slog.New(NewMultiHandler(
			slog.NewTextHandler(&a, nil),
			slog.NewTextHandler(&b, nil),
		)).With("game.id", "g1").WithGroup("search")

		log.Info("done", "nodes", 10)

		for _, out := range []string{a.String(), b.String()} {
			assert.Contains(t, out, "game.id=g1")
			assert.Contains(t, out, "search.nodes=10")
		}
	})

	t.Run("Errors from handlers are joined", func(t *testing.T) {
		var buf bytes.Buffer
		h := NewMultiHandler(slog.NewTextHandler(&buf, nil), failingHandler{})

		err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sink down")
		assert.Contains(t, buf.String(), "msg")
	})

	t.Run("Disabled when no handler accepts the level", func(t *testing.T) {
		h := NewMultiHandler(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}))
		assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	})
}

func TestInit(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := Init(Options{Level: slog.LevelInfo, Format: "json", Output: &buf})

	log.Debug("hidden")
	slog.Info("visible", "move", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.EqualValues(t, 2, entry["move"])
}
