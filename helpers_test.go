// FILE: helpers_test.go
package glint

import (
	"sync"
	"testing"
)

// memorySink records everything it receives, for assertions.
type memorySink struct {
	mu      sync.Mutex
	records []*Record
}

func (s *memorySink) Receive(r *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

func (s *memorySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *memorySink) bodies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.records))
	for i, r := range s.records {
		out[i] = r.Message()
	}
	return out
}

func (s *memorySink) at(i int) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[i]
}

// resetLogging clears every process-wide slot so tests can initialize from a
// clean state. Tests in this package must not run in parallel.
func resetLogging(t *testing.T) {
	t.Helper()
	shutDownLogging()
	firstUninitSetOnce = sync.Once{}
	firstUninitSaveOnce = sync.Once{}
	firstUninitRecord.Store(nil)
	fatalRecursion.Store(0)
	firstStackTrace.Store(nil)
	SetFatalExitHandler(nil)
	SetFatalPreLoggingHook(func() {})
	minLevel.Store(0)
	verbosity.Store(0)
	currentCfg.Store(DefaultConfig())
	t.Cleanup(shutDownLogging)
}

// newTestWorker builds a worker with one memory sink and installs it.
func newTestWorker(t *testing.T) (*Worker, *memorySink) {
	t.Helper()
	w := NewWorker()
	s := &memorySink{}
	AddSink(w, s)
	Initialize(w)
	t.Cleanup(w.Close)
	return w, s
}
