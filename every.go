// FILE: every.go
package glint

import (
	"golang.org/x/time/rate"
)

// EveryN is the fixed every-N occurrence counter for one call site: the
// first and then every nth invocation produce a record, the rest are
// counted and dropped. Hold one per site, typically in a package variable.
// Safe for concurrent use.
type EveryN struct {
	level Level
	s     rate.Sometimes
}

// NewEveryN returns a counter admitting every nth log at the given level.
func NewEveryN(level Level, n int) *EveryN {
	return &EveryN{level: level, s: rate.Sometimes{First: 1, Every: n}}
}

// Log writes a record when this occurrence is admitted.
func (e *EveryN) Log(args ...any) {
	e.emit(func(c *Capture) { c.Append(args...) })
}

// Logf writes a printf-style record when this occurrence is admitted.
func (e *EveryN) Logf(format string, args ...any) {
	e.emit(func(c *Capture) { c.Capturef(format, args...) })
}

func (e *EveryN) emit(fill func(*Capture)) {
	if !e.level.Enabled() {
		return
	}
	// The site has to be resolved here: rate.Sometimes runs the admitted
	// callback behind its own frames.
	file, line, function := callerSite(2)
	e.s.Do(func() {
		if !captureStarted.Load() {
			captureStarted.Store(true)
		}
		c := &Capture{
			record:      newRecord(file, line, function, e.level),
			fatalSignal: defaultFatalSignal(e.level),
		}
		defer c.Close()
		fill(c)
	})
}
