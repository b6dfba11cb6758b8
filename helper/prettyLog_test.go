package helper

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandlerHandle(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()

	levels := []struct {
		level slog.Level
		label string
	}{
		{slog.LevelDebug, "DEBUG:"},
		{slog.LevelInfo, "INFO:"},
		{slog.LevelWarn, "WARN:"},
		{slog.LevelError, "ERROR:"},
	}
	for _, tt := range levels {
		t.Run("Handle "+tt.label+" level log", func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

			record := slog.NewRecord(time.Now(), tt.level, "Loaded catalog", 0)
			err := handler.Handle(ctx, record)
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.label)
			assert.Contains(t, buf.String(), "Loaded catalog")
		})
	}

	t.Run("Handle log with attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "Loaded catalog", 0)
		record.AddAttrs(slog.String("policy", "director"), slog.Int("movies", 3))
		require.NoError(t, handler.Handle(ctx, record))

		output := buf.String()
		assert.Contains(t, output, `"policy":"director"`)
		assert.Contains(t, output, `"movies":3`)
	})

	t.Run("Handle log without attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		record := slog.NewRecord(time.Now(), slog.LevelInfo, "Listening", 0)
		require.NoError(t, handler.Handle(ctx, record))
		assert.True(t, strings.HasSuffix(strings.TrimSpace(buf.String()), "{}"))
	})

	t.Run("Handle log formats timestamp", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		ts := time.Date(2024, 1, 15, 14, 30, 45, 123000000, time.UTC)
		record := slog.NewRecord(ts, slog.LevelInfo, "Timestamp", 0)
		require.NoError(t, handler.Handle(ctx, record))
		assert.True(t, strings.HasPrefix(buf.String(), "[14:30:45.123]"))
	})
}

func TestNewLogger(t *testing.T) {
	color.NoColor = true

	t.Run("Logger filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelWarn)

		logger.Info("Hidden")
		logger.Warn("Duplicate title overwrites earlier record", slog.String("title", "A"))

		output := buf.String()
		assert.NotContains(t, output, "Hidden")
		assert.Contains(t, output, "WARN:")
		assert.Contains(t, output, `"title":"A"`)
	})

	t.Run("Logger enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelDebug)

		assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
		logger.Debug("Computed recommendations")
		assert.Contains(t, buf.String(), "Computed recommendations")
	})
}
