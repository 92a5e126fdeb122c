// FILE: crash_test.go
package glint

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCrashHandler replaces process termination for tests.
type stubCrashHandler struct {
	installed bool
	exited    bool
	exitLevel Level
	exitSig   int
	trace     string
}

func (h *stubCrashHandler) Install() { h.installed = true }

func (h *stubCrashHandler) StackTrace() string {
	if h.trace != "" {
		return h.trace
	}
	return "goroutine 1 [running]: stub"
}

func (h *stubCrashHandler) ExitWithDefaultSignalHandler(level Level, signalID int) {
	h.exited = true
	h.exitLevel = level
	h.exitSig = signalID
}

func TestUnixStackTrace(t *testing.T) {
	h := &unixCrashHandler{}
	trace := h.StackTrace()
	assert.Contains(t, trace, "goroutine")
	assert.Contains(t, trace, "TestUnixStackTrace")
}

// TestSignalCapture verifies a received OS signal becomes a fatal record
// carrying the signal number.
func TestSignalCapture(t *testing.T) {
	resetLogging(t)
	stub := &stubCrashHandler{}
	SetCrashHandler(stub)
	t.Cleanup(func() { SetCrashHandler(&unixCrashHandler{}) })

	w, _ := newTestWorker(t)
	captured := installRecordingDispatch(t, w)

	signalCapture(syscall.SIGTERM)

	require.Len(t, *captured, 1)
	fr := (*captured)[0]
	assert.Equal(t, FATAL, fr.Record.Level)
	assert.Equal(t, int(syscall.SIGTERM), fr.SignalID)
	assert.Contains(t, fr.Record.Message(), "SIGTERM")
	assert.Contains(t, fr.Record.Message(), "stub", "the handler's stack trace is appended")
}

func TestSignalName(t *testing.T) {
	assert.Equal(t, "SIGABRT", signalName(int(syscall.SIGABRT)))
	assert.Equal(t, "SIGSEGV", signalName(int(syscall.SIGSEGV)))
	assert.Equal(t, "signal 64", signalName(64))
}
