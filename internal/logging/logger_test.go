package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/fable/internal/logging"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("Normalizes Error Key And Tags App", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewWithWriter(&buf, slog.LevelInfo)

		logger.Info("run failed", "error", errors.New("boom"))

		out := buf.String()
		assert.Contains(t, out, "err=boom")
		assert.NotContains(t, out, "error=boom")
		assert.Contains(t, out, "app=fable")
	})

	t.Run("Honors Level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewWithWriter(&buf, slog.LevelWarn)

		logger.Debug("hidden")
		logger.Warn("visible")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "visible")
	})
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() {
		logging.NewNop().Error("discarded", "error", errors.New("boom"))
	})
}
