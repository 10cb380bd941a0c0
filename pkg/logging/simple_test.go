package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimpleLogSinkLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewSimpleLogger(&buf, DEBUG, false)

	log.Info("info message")
	log.V(DEBUG).Info("debug message")
	log.V(TRACE).Info("trace message")

	out := buf.String()
	require.Contains(t, out, "[INFO] info message")
	require.Contains(t, out, "[DEBUG] debug message")
	require.NotContains(t, out, "trace message")
}

func TestSimpleLogSinkKeyValues(t *testing.T) {
	var buf bytes.Buffer
	log := NewSimpleLogger(&buf, INFO, false)

	log.Info("decoded", "records", 12, "file", "sample.gpi")

	out := buf.String()
	require.Contains(t, out, "records: 12")
	require.Contains(t, out, "file: sample.gpi")
}

func TestSimpleLogSinkError(t *testing.T) {
	var buf bytes.Buffer
	log := NewSimpleLogger(&buf, INFO, false)

	log.Error(errors.New("boom"), "decode failed", "offset", 42)

	out := buf.String()
	require.Contains(t, out, "[ERROR] decode failed")
	require.Contains(t, out, "offset: 42")
	require.Contains(t, out, "error: boom")
}

func TestSimpleLogSinkName(t *testing.T) {
	var buf bytes.Buffer
	log := NewSimpleLogger(&buf, INFO, false).WithName("parser")

	log.Info("started")
	require.True(t, strings.Contains(buf.String(), "[parser] started"))
}

func TestLoggerWrapper(t *testing.T) {
	var buf bytes.Buffer
	wrapped := NewLogger(NewSimpleLogger(&buf, TRACE, false))

	wrapped.Info("a")
	wrapped.Debug("b")
	wrapped.Trace("c")
	wrapped.Error(errors.New("x"), "d")

	out := buf.String()
	require.Contains(t, out, "[INFO] a")
	require.Contains(t, out, "[DEBUG] b")
	require.Contains(t, out, "[TRACE] c")
	require.Contains(t, out, "[ERROR] d")
}
