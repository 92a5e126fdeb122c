// FILE: level.go
package glint

import (
	"strings"
	"sync/atomic"
)

// Level is an ordered severity: a numeric value paired with its display text.
// Ordering is total and stable; comparisons against the minimum-level
// threshold use the numeric value only.
type Level struct {
	Value int32
	Text  string
}

// Built-in severity catalog. Users may add levels with higher or
// intermediate values but must not re-order the built-in ones.
var (
	DEBUG   = Level{0, "DEBUG"}
	INFO    = Level{300, "INFO"}
	WARNING = Level{500, "WARNING"}
	ERROR   = Level{700, "ERROR"}
	FATAL   = Level{1000, "FATAL"}

	// CONTRACT marks a broken contract check. Classified fatal.
	CONTRACT = Level{100000, "CONTRACT"}
)

// Any level at or above this value terminates the process after flush.
const fatalCutoff = 1000

var (
	minLevel  atomic.Int32
	verbosity atomic.Int32
)

// IsFatal reports whether a capture at l routes through the fatal pipeline.
func IsFatal(l Level) bool {
	return l.Value >= fatalCutoff
}

// Enabled reports whether a capture at l would currently be accepted.
// Records below the minimum level are dropped here, before any allocation.
// Before initialization only a single capture is accepted (it becomes the
// stashed first-uninitialized record); everything after that is rejected
// until a worker is installed.
func (l Level) Enabled() bool {
	if l.Value < minLevel.Load() {
		return false
	}
	return IsInitialized() || firstUninitEmpty()
}

// SetMinLevel sets the process-wide severity threshold.
func SetMinLevel(l Level) {
	minLevel.Store(l.Value)
}

// MinLevel returns the current threshold value.
func MinLevel() int32 {
	return minLevel.Load()
}

// V reports whether verbose logs at verbosity n are enabled.
func V(n int32) bool {
	return n <= verbosity.Load()
}

// SetVerbosity sets the ceiling for verbose-level conditional logs.
func SetVerbosity(n int32) {
	verbosity.Store(n)
}

// ParseLevel converts a level name to its catalog entry.
func ParseLevel(text string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARNING":
		return WARNING, true
	case "ERROR":
		return ERROR, true
	case "FATAL":
		return FATAL, true
	case "CONTRACT":
		return CONTRACT, true
	default:
		return Level{}, false
	}
}
