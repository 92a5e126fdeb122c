// FILE: compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"

	"github.com/glintlog/glint"
	"github.com/valyala/fasthttp"
)

// FastHTTPAdapter implements fasthttp's Logger over the glint pipeline.
// fasthttp exposes a single Printf; the adapter picks a severity from the
// message content.
type FastHTTPAdapter struct {
	defaultLevel  glint.Level
	levelDetector func(string) (glint.Level, bool)
}

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// NewFastHTTPAdapter creates a fasthttp-compatible logger adapter.
func NewFastHTTPAdapter(opts ...FastHTTPOption) *FastHTTPAdapter {
	a := &FastHTTPAdapter{
		defaultLevel:  glint.INFO,
		levelDetector: DetectLogLevel,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FastHTTPOption customizes adapter behavior.
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level used when detection finds nothing.
func WithDefaultLevel(level glint.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector replaces the content-based level detection.
func WithLevelDetector(detector func(string) (glint.Level, bool)) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface.
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected, ok := a.levelDetector(msg); ok {
			level = detected
		}
	}
	glint.Log(level, "fasthttp: "+msg)
}

// DetectLogLevel guesses a severity from message content.
func DetectLogLevel(msg string) (glint.Level, bool) {
	msgLower := strings.ToLower(msg)

	switch {
	case strings.Contains(msgLower, "error"),
		strings.Contains(msgLower, "failed"),
		strings.Contains(msgLower, "panic"):
		return glint.ERROR, true

	case strings.Contains(msgLower, "warn"),
		strings.Contains(msgLower, "deprecated"):
		return glint.WARNING, true

	case strings.Contains(msgLower, "debug"),
		strings.Contains(msgLower, "trace"):
		return glint.DEBUG, true
	}
	return glint.Level{}, false
}
