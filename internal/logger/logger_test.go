package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestDebugSuppressedByDefault(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden %d", 1)
	Info("hidden")
	Warn("hidden")

	assert.Empty(t, buf.String())
}

func TestVerboseOutput(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("debug %s", "msg")
	Info("info msg")
	Warn("warn msg")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] debug msg")
	assert.Contains(t, out, "[INFO] info msg")
	assert.Contains(t, out, "[WARN] warn msg")
	assert.True(t, IsVerbose())
}

func TestErrorAlwaysPrinted(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("export failed: %s", "boom")

	assert.Contains(t, buf.String(), "[ERROR] export failed: boom")
}
