package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/dasdy/nuhxboard/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandlerAddsPackage(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(logging.ContextHandler{Handler: slog.NewTextHandler(&buf, nil)})

	logger.InfoContext(logging.PackageCtx("frame"), "Skipping element", "id", 3)

	assert.Contains(t, buf.String(), "package=frame")
	assert.Contains(t, buf.String(), "id=3")
}

func TestAppendCtxDoesNotShareAttrs(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(logging.ContextHandler{Handler: slog.NewTextHandler(&buf, nil)})

	base := logging.PackageCtx("web")
	first := logging.AppendCtx(base, slog.String("client", "a"))
	_ = logging.AppendCtx(base, slog.String("client", "b"))

	logger.InfoContext(first, "connected")

	assert.Contains(t, buf.String(), "client=a")
	assert.NotContains(t, buf.String(), "client=b")
}

func TestParseLevel(t *testing.T) {
	level, err := logging.ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = logging.ParseLevel("chatty")
	require.Error(t, err)
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := logging.NewLogger(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
