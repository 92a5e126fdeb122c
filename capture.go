// FILE: capture.go
package glint

import (
	"fmt"
	"runtime"
	"strings"
	"syscall"
)

// Capture is the short-lived producer-side builder for one Record. It is
// created only when the level is enabled, accumulates body text through the
// stream-style appenders or Capturef, and submits the Record when Close runs.
// Close must be deferred so submission happens on every exit path, panics
// included.
type Capture struct {
	record      *Record
	fatalSignal int
	closed      bool
}

// NewCapture starts a capture attributed to the caller's file, line and
// function. Most code should use the level helpers (Info, Warningf, ...)
// instead; this exists for wrappers that build records incrementally.
func NewCapture(level Level) *Capture {
	return captureAt(2, level)
}

func captureAt(skip int, level Level) *Capture {
	if !captureStarted.Load() {
		captureStarted.Store(true)
	}
	file, line, function := callerSite(skip)
	return &Capture{
		record:      newRecord(file, line, function, level),
		fatalSignal: defaultFatalSignal(level),
	}
}

// callerSite resolves file, line and function for the frame skip levels
// above callerSite's caller (0 = the caller itself).
func callerSite(skip int) (string, int, string) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "(unknown)", 0, "(unknown)"
	}
	function := "(unknown)"
	if f := runtime.FuncForPC(pc); f != nil {
		function = funcBase(f.Name())
	}
	return file, line, function
}

// Fatal log captures re-raise SIGABRT; broken contracts carry signal id 0.
func defaultFatalSignal(level Level) int {
	if !IsFatal(level) || level == CONTRACT {
		return 0
	}
	return int(syscall.SIGABRT)
}

// Write implements io.Writer over the record body.
func (c *Capture) Write(p []byte) (int, error) {
	return c.record.Write(p)
}

// Append renders args with fmt.Sprint semantics into the record body.
func (c *Capture) Append(args ...any) *Capture {
	c.record.WriteString(fmt.Sprint(args...))
	return c
}

// Capturef formats printf-style into the record body. Output longer than the
// configured maximum is cut and suffixed with the truncation marker. A format
// whose verbs do not match its arguments keeps the raw format string followed
// by a diagnostic suffix rather than failing.
func (c *Capture) Capturef(format string, args ...any) *Capture {
	out := fmt.Sprintf(format, args...)
	if strings.Contains(out, "%!") {
		out = format + "\n\t[format/argument mismatch while formatting this entry]"
	}
	maxLen := int(maxMessageSize.Load())
	if len(out) > maxLen {
		out = out[:maxLen-len(truncationMarker)] + truncationMarker
	}
	c.record.WriteString(out)
	return c
}

// Close builds and submits the Record. Idempotent; safe on every exit path.
func (c *Capture) Close() {
	if c.closed {
		return
	}
	c.closed = true
	saveRecord(c.record, c.fatalSignal)
}

// Level helpers. Each evaluates Enabled first so disabled levels cost a
// single atomic load and no allocation.

// Debug logs a message at debug level.
func Debug(args ...any) { logDepth(DEBUG, args...) }

// Info logs a message at info level.
func Info(args ...any) { logDepth(INFO, args...) }

// Warning logs a message at warning level.
func Warning(args ...any) { logDepth(WARNING, args...) }

// Error logs a message at error level.
func Error(args ...any) { logDepth(ERROR, args...) }

// Fatal logs a message at fatal level and enters the fatal pipeline.
// It does not return under the default fatal dispatch.
func Fatal(args ...any) { logDepth(FATAL, args...) }

// Debugf logs a printf-style message at debug level.
func Debugf(format string, args ...any) { logfDepth(DEBUG, format, args...) }

// Infof logs a printf-style message at info level.
func Infof(format string, args ...any) { logfDepth(INFO, format, args...) }

// Warningf logs a printf-style message at warning level.
func Warningf(format string, args ...any) { logfDepth(WARNING, format, args...) }

// Errorf logs a printf-style message at error level.
func Errorf(format string, args ...any) { logfDepth(ERROR, format, args...) }

// Fatalf logs a printf-style message at fatal level and enters the fatal
// pipeline.
func Fatalf(format string, args ...any) { logfDepth(FATAL, format, args...) }

// Log writes a message at an arbitrary catalog level.
func Log(level Level, args ...any) { logDepth(level, args...) }

// Logf writes a printf-style message at an arbitrary catalog level.
func Logf(level Level, format string, args ...any) { logfDepth(level, format, args...) }

// LogIf writes a message only when condition holds.
func LogIf(level Level, condition bool, args ...any) {
	if condition {
		logDepth(level, args...)
	}
}

// Verbose logs at info level when verbosity n is enabled.
func Verbose(n int32, args ...any) {
	if V(n) {
		logDepth(INFO, args...)
	}
}

// Verbosef logs printf-style at info level when verbosity n is enabled.
func Verbosef(n int32, format string, args ...any) {
	if V(n) {
		logfDepth(INFO, format, args...)
	}
}

func logDepth(level Level, args ...any) {
	if !level.Enabled() {
		return
	}
	c := captureAt(3, level)
	defer c.Close()
	c.Append(args...)
}

func logfDepth(level Level, format string, args ...any) {
	if !level.Enabled() {
		return
	}
	c := captureAt(3, level)
	defer c.Close()
	c.Capturef(format, args...)
}
