package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelWarn, Output: &buf})

	ctx := context.Background()
	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, errors.New("bad block"), "warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "bad block")
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Format: "json", Output: &buf})

	logger.WithComponent("renderer").
		With("section", "sec-6-3").
		Info(context.Background(), "rendered", "blocks", 4, "dangling")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "rendered", record["msg"])
	assert.Equal(t, "renderer", record["component"])
	assert.Equal(t, "sec-6-3", record["section"])
	assert.Equal(t, float64(4), record["blocks"])
	assert.NotContains(t, record, "dangling")
}

func TestWithDoesNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&LoggerConfig{Level: LevelInfo, Output: &buf})

	_ = base.With("section", "sec-1")
	base.Info(context.Background(), "plain")

	assert.False(t, strings.Contains(buf.String(), "sec-1"))
}

func TestNopDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error(context.Background(), errors.New("x"), "nothing")
	assert.Equal(t, LevelError+1, logger.level)
}

func TestPerfLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelInfo, Output: &buf})

	op := StartOperation(logger, "build")
	op.End(context.Background(), "pages", 3)

	out := buf.String()
	assert.Contains(t, out, "operation=build")
	assert.Contains(t, out, "pages=3")
	assert.Contains(t, out, "duration_ms=")

	buf.Reset()
	StartOperation(logger, "search").EndWithError(context.Background(), errors.New("index closed"))
	out = buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "operation=search")
	assert.Contains(t, out, "index closed")
}
