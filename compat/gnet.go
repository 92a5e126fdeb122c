// FILE: compat/gnet.go
// Package compat adapts the glint pipeline to the logger interfaces of
// frameworks commonly embedded in the same process, so their internal
// logging flows through the same background worker and sinks.
package compat

import (
	"fmt"

	"github.com/glintlog/glint"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

// GnetAdapter implements gnet's logging.Logger over the glint pipeline.
type GnetAdapter struct {
	fatalHandler func(msg string)
}

var _ logging.Logger = (*GnetAdapter)(nil)

// NewGnetAdapter creates a gnet-compatible logger adapter.
func NewGnetAdapter(opts ...GnetOption) *GnetAdapter {
	a := &GnetAdapter{
		// gnet expects Fatalf to not return; the fatal pipeline flushes
		// every sink and aborts, which matches.
		fatalHandler: func(msg string) {
			glint.Fatal(msg)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GnetOption customizes adapter behavior.
type GnetOption func(*GnetAdapter)

// WithFatalHandler replaces the behavior of Fatalf.
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting.
func (a *GnetAdapter) Debugf(format string, args ...any) {
	glint.Debugf("gnet: "+format, args...)
}

// Infof logs at info level with printf-style formatting.
func (a *GnetAdapter) Infof(format string, args ...any) {
	glint.Infof("gnet: "+format, args...)
}

// Warnf logs at warning level with printf-style formatting.
func (a *GnetAdapter) Warnf(format string, args ...any) {
	glint.Warningf("gnet: "+format, args...)
}

// Errorf logs at error level with printf-style formatting.
func (a *GnetAdapter) Errorf(format string, args ...any) {
	glint.Errorf("gnet: "+format, args...)
}

// Fatalf passes the formatted message to the fatal handler. The default
// handler logs it at FATAL level; a handler set with WithFatalHandler
// replaces that, and nothing is logged unless it logs itself.
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	a.fatalHandler("gnet: " + fmt.Sprintf(format, args...))
}
