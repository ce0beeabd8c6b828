package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/transconnection/internal/config"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := newLogger(&config.Config{LogLevel: "warn"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	logger, err := newLogger(&config.Config{LogLevel: "loud"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Nil(t, logger)
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
}
